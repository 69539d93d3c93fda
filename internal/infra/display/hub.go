package display

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// Hub is a browser display: every published message is pushed to the
// connected WebSocket clients, and the latest one is replayed to clients
// that connect later. A client whose queue is full is disconnected so a
// stalled browser never holds up Publish.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    string
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan string
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	c := h.register(conn)
	if c == nil {
		return
	}

	h.logger.Debug("display client connected", "remote_addr", r.RemoteAddr)

	go h.writeLoop(c)
	go h.readLoop(c)
}

// register adds conn and queues the current message for it. It returns nil
// once the hub is closed.
func (h *Hub) register(conn *websocket.Conn) *client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		conn.Close()
		return nil
	}

	c := &client{conn: conn, send: make(chan string, sendBuffer)}
	h.clients[c] = struct{}{}
	if h.last != "" {
		c.send <- h.last
	}
	return c
}

// writeLoop is the only writer of c.conn.
func (h *Hub) writeLoop(c *client) {
	for text := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
			h.logger.Debug("dropping display client", "error", err)
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()
			return
		}
	}
}

// readLoop drains control frames until the client goes away.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.drop(c)
	h.mu.Unlock()
}

func (h *Hub) Publish(_ context.Context, text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = text
	for c := range h.clients {
		select {
		case c.send <- text:
		default:
			h.logger.Warn("display client too slow, disconnecting", "remote_addr", c.conn.RemoteAddr())
			h.drop(c)
		}
	}
	return nil
}

// Last returns the message currently shown.
func (h *Hub) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.drop(c)
	}
	return nil
}

// drop must be called with h.mu held.
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	c.conn.Close()
}
