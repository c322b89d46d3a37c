package handlers

import (
	"net/http"
	"net/url"
	"slices"

	"recipe-server/logger"
	"recipe-server/session"
	"recipe-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FeedHandler streams newly created recipes to logged-in clients.
type FeedHandler struct {
	mgr      *ws.Manager
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewFeedHandler accepts upgrades from the page's own origin or from one of
// allowedOrigins. The feed always rides on the session cookie, so "*" does
// not open it to foreign origins.
func NewFeedHandler(mgr *ws.Manager, allowedOrigins []string, log *logger.Logger) *FeedHandler {
	return &FeedHandler{
		mgr:    mgr,
		logger: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r, allowedOrigins)
			},
		},
	}
}

func originAllowed(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(allowed, origin) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// HandleFeed upgrades to websocket and keeps the connection registered
// until the client goes away.
// GET /recipes/feed
func (h *FeedHandler) HandleFeed(c *gin.Context) {
	userID := session.UserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	id := h.mgr.Register(userID, conn)
	h.logger.Info("feed subscriber connected", "connection_id", id, "user_id", userID)
	defer func() {
		h.mgr.Unregister(id)
		h.logger.Info("feed subscriber disconnected", "connection_id", id, "user_id", userID)
	}()

	// Clients only listen; reading drives ping/close handling.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("feed read ended", "connection_id", id, "error", err)
			}
			return
		}
	}
}
