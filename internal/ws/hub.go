// Package ws streams location pings to connected admin consoles.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Conn represents a console connection (abstracted for testability).
type Conn struct {
	ID   string
	Send chan []byte
}

// NewConn creates a connection with a buffered send channel.
func NewConn() *Conn {
	return &Conn{ID: uuid.New().String(), Send: make(chan []byte, 256)}
}

// Message is the payload sent over WebSocket.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans location events out to every connected console. There is a
// single feed; all admins see the same stream.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*Conn
	logger *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]*Conn),
		logger: logger,
	}
}

// Register adds a connection to the feed.
func (h *Hub) Register(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID] = conn
}

// Unregister removes a connection from the feed.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connID)
}

// Publish sends an event to all connected consoles. A slow consumer drops
// the message rather than blocking the publisher.
func (h *Hub) Publish(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		h.logger.Error("ws marshal error", "error", err, "event", event)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.conns {
		select {
		case conn.Send <- payload:
		default:
			h.logger.Warn("ws send buffer full", "connID", conn.ID)
		}
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Shutdown closes all connections gracefully.
func (h *Hub) Shutdown(_ context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.conns {
		close(conn.Send)
		delete(h.conns, id)
	}
}
