package realtime

import (
	"sync"
)

// Conn is the hub's view of a dashboard socket. *Connection satisfies it;
// tests substitute fakes.
type Conn interface {
	SessionID() string
	Start()
	Send(payload []byte) error
	Close(code int, reason string)
}

// SessionID implements Conn.
func (c *Connection) SessionID() string { return c.ID }

// Hub tracks every connected dashboard browser and fans events out to all of
// them. There are no rooms and no per-user identity: every dashboard sees
// every event.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]Conn
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]Conn)}
}

// Attach registers a connection and starts its write loop.
func (h *Hub) Attach(conn Conn) {
	h.mu.Lock()
	h.sessions[conn.SessionID()] = conn
	h.mu.Unlock()

	conn.Start()
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn Conn) {
	h.mu.Lock()
	delete(h.sessions, conn.SessionID())
	h.mu.Unlock()
}

// Broadcast writes payload to every attached session and reports how many
// accepted it. Failed sends are not retried; the connection's own close
// handling removes dead sockets on their next read error.
func (h *Hub) Broadcast(payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, conn := range h.sessions {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// Count reports the number of attached sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]Conn, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]Conn)
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}
