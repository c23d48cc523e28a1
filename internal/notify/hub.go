package notify

import (
	"sync"

	"github.com/gorilla/websocket"

	"inspection-service/internal/logging"
)

const maxHubConnections = 64

// Hub fans display entries out to connected websocket clients. Connections
// that fail a write are dropped on the spot.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	logger *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool), logger: logger}
}

// Add attaches a client connection.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) >= maxHubConnections {
		h.logger.Warnf("Max feed connections reached, rejecting client")
		conn.Close()
		return
	}
	h.conns[conn] = true
	h.logger.Infof("Feed client attached (total: %d)", len(h.conns))
}

// Remove detaches a client connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		delete(h.conns, conn)
		h.logger.Infof("Feed client detached (remaining: %d)", len(h.conns))
	}
}

// Broadcast writes the message to every attached client.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Errorf("Failed to push feed entry to client: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
