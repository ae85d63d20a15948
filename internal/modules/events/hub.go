package events

import (
	"sync"

	"rentora/internal/domain"

	"github.com/gorilla/websocket"
)

// connection pairs a websocket with its write lock. gorilla/websocket allows
// one concurrent writer per connection; sync workers publish from many
// goroutines, so every write goes through send.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *connection) send(event domain.SyncAuditEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(event)
}

// Hub fans audit events out to connected dashboard clients. One connection
// per user; a newer connection replaces the old one.
type Hub struct {
	connections map[int64]*connection
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old != nil {
		_ = old.ws.Close()
	}

	h.connections[userID] = &connection{ws: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.connections[userID]; exists && c != nil {
		_ = c.ws.Close()
		delete(h.connections, userID)
	}
}

// drop removes the connection only if the user has not reconnected since the
// caller snapshotted it.
func (h *Hub) drop(userID int64, c *connection) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cur, exists := h.connections[userID]; exists && cur == c {
		_ = cur.ws.Close()
		delete(h.connections, userID)
	}
}

// Publish sends the event to every connection. Dead connections are dropped
// on write failure; a slow or absent listener never blocks the sync path.
func (h *Hub) Publish(event domain.SyncAuditEvent) {
	h.mutex.RLock()
	conns := make(map[int64]*connection, len(h.connections))
	for id, c := range h.connections {
		conns[id] = c
	}
	h.mutex.RUnlock()

	for userID, c := range conns {
		if c == nil {
			continue
		}
		if err := c.send(event); err != nil {
			h.drop(userID, c)
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.connections {
		if c != nil {
			_ = c.ws.Close()
		}
		delete(h.connections, userID)
	}
}
