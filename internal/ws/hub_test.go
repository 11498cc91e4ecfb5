package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHubPublish(t *testing.T) {
	t.Run("delivers to all connections", func(t *testing.T) {
		hub := newTestHub()
		a, b := NewConn(), NewConn()
		hub.Register(a)
		hub.Register(b)

		hub.Publish("location.pinged", map[string]string{"player_name": "Maartje"})

		for _, conn := range []*Conn{a, b} {
			select {
			case payload := <-conn.Send:
				var msg Message
				require.NoError(t, json.Unmarshal(payload, &msg))
				assert.Equal(t, "location.pinged", msg.Event)
			default:
				t.Fatal("expected a message")
			}
		}
	})

	t.Run("unregistered connection receives nothing", func(t *testing.T) {
		hub := newTestHub()
		conn := NewConn()
		hub.Register(conn)
		hub.Unregister(conn.ID)

		hub.Publish("location.pinged", nil)
		assert.Empty(t, conn.Send)
		assert.Equal(t, 0, hub.ConnectionCount())
	})

	t.Run("slow consumer drops instead of blocking", func(t *testing.T) {
		hub := newTestHub()
		conn := &Conn{ID: "slow", Send: make(chan []byte)} // unbuffered, never read
		hub.Register(conn)

		done := make(chan struct{})
		go func() {
			hub.Publish("location.pinged", nil)
			close(done)
		}()
		<-done
	})
}

func TestHubShutdown(t *testing.T) {
	hub := newTestHub()
	conn := NewConn()
	hub.Register(conn)

	hub.Shutdown(context.Background())

	_, open := <-conn.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ConnectionCount())
}
