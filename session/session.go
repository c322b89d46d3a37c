// Package session keeps the authenticated user id in a signed cookie.
// The cookie holds a single claim; there is no server-side session store.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key under which RequireSession stores the user id.
const UserIDKey = "user_id"

var errNoUser = errors.New("session carries no user id")

// Claims is the signed session payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Config holds session cookie parameters.
type Config struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager issues, reads and clears session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

// Start binds userID to the client's session.
func (m *Manager) Start(c *gin.Context, userID string) error {
	token, err := m.sign(userID)
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.ttl.Seconds()))
	return nil
}

// CurrentUserID returns the bound user id if the cookie is present and valid.
func (m *Manager) CurrentUserID(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(m.cookieName)
	if err != nil || raw == "" {
		return "", false
	}
	userID, err := m.parse(raw)
	if err != nil {
		return "", false
	}
	return userID, true
}

// End clears the binding.
func (m *Manager) End(c *gin.Context) {
	m.setCookie(c, "", -1)
}

// RequireSession rejects requests without a valid session before any
// handler runs.
func (m *Manager) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := m.CurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the id stored by RequireSession.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}

func (m *Manager) sign(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (m *Manager) parse(raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse session: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("session is invalid")
	}
	if claims.UserID == "" {
		return "", errNoUser
	}
	return claims.UserID, nil
}
