package httpHandler

import (
	"net/http"

	"recipe-server/logger"
	"recipe-server/session"
	"recipe-server/usecases"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	useCase  *usecases.AuthUseCase
	sessions *session.Manager
	logger   *logger.Logger
}

func NewAuthHandler(useCase *usecases.AuthUseCase, sessions *session.Manager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		useCase:  useCase,
		sessions: sessions,
		logger:   log,
	}
}

type SignupRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, "Invalid request body")
		return
	}

	user, err := h.useCase.Signup(c.Request.Context(), usecases.SignupInput{
		Username: req.Username,
		Password: req.Password,
		ImageURL: req.ImageURL,
		Bio:      req.Bio,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user.PublicView())
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		unauthorized(c)
		return
	}

	user, err := h.useCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user.PublicView())
}

// CheckSession handles GET /check_session
func (h *AuthHandler) CheckSession(c *gin.Context) {
	user, err := h.useCase.CurrentUser(c.Request.Context(), session.UserID(c))
	if err != nil {
		// the account is gone; drop the stale cookie
		h.sessions.End(c)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user.PublicView())
}

// Logout handles DELETE /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.End(c)
	c.Status(http.StatusNoContent)
}
