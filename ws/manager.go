package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"recipe-server/entities"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many recipes may queue for one subscriber before it
	// is considered too slow and dropped.
	sendBuffer = 16
)

type subscriber struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// Manager keeps track of websocket connections subscribed to the recipe feed.
// Every connection has its own writer goroutine, so a stalled client never
// holds up publishers.
type Manager struct {
	mu          sync.Mutex
	connections map[string]*subscriber // connectionID -> subscriber
	logger      *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		connections: make(map[string]*subscriber),
		logger:      logger,
	}
}

// Register adds a connection for userID and returns its connection id.
func (m *Manager) Register(userID string, conn *websocket.Conn) string {
	id := uuid.NewString()
	sub := &subscriber{userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}

	m.mu.Lock()
	m.connections[id] = sub
	m.mu.Unlock()

	go m.writeLoop(id, sub)
	return id
}

func (m *Manager) writeLoop(id string, sub *subscriber) {
	for payload := range sub.send {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			m.logger.Warn("dropping feed subscriber", "connection_id", id, "user_id", sub.userID, "error", err)
			m.Unregister(id)
			return
		}
	}
}

// Unregister closes and removes a connection.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	sub, ok := m.connections[id]
	if ok {
		m.remove(id, sub)
	}
	m.mu.Unlock()
}

// remove must be called with m.mu held.
func (m *Manager) remove(id string, sub *subscriber) {
	delete(m.connections, id)
	close(sub.send)
	_ = sub.conn.Close()
}

// Publish queues a recipe for every subscriber. Subscribers whose queue is
// full are dropped.
func (m *Manager) Publish(view entities.RecipeView) {
	payload, err := json.Marshal(view)
	if err != nil {
		m.logger.Error("failed to encode recipe for feed", "recipe_id", view.ID, "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sub := range m.connections {
		select {
		case sub.send <- payload:
		default:
			m.logger.Warn("dropping slow feed subscriber", "connection_id", id, "user_id", sub.userID)
			m.remove(id, sub)
		}
	}
}

// Count returns the number of live subscribers.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.connections)
}

// Close disconnects every subscriber.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sub := range m.connections {
		_ = sub.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		m.remove(id, sub)
	}
}
