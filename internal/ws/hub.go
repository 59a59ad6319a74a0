// Package ws pushes task change events to connected clients, one feed
// per owner. The feed is write-only; inbound frames are discarded.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"tasktrack/internal/logger"
	"tasktrack/internal/service"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
	sendBuffer = 16
)

type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Client]struct{}
}

var _ service.Notifier = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Client]struct{})}
}

// TaskEvent fans the event out to the owner's subscribers. Slow clients
// get dropped rather than blocking the request path.
func (h *Hub) TaskEvent(owner string, ev service.TaskEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.subs[owner] {
		select {
		case c.send <- payload:
		default:
			delete(h.subs[owner], c)
			close(c.send)
		}
	}
}

func (h *Hub) Subscribers(owner string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[owner])
}

func (h *Hub) register(owner string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[owner] == nil {
		h.subs[owner] = make(map[*Client]struct{})
	}
	h.subs[owner][c] = struct{}{}
}

func (h *Hub) unregister(owner string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[owner][c]; ok {
		delete(h.subs[owner], c)
		close(c.send)
	}
	if len(h.subs[owner]) == 0 {
		delete(h.subs, owner)
	}
}

type Client struct {
	owner string
	conn  *websocket.Conn
	send  chan []byte
}

// Serve runs the connection until the peer goes away. It blocks, so the
// HTTP handler should call it as the last thing it does.
func (h *Hub) Serve(owner string, conn *websocket.Conn) {
	c := &Client{owner: owner, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(owner, c)

	go c.writePump()
	c.readPump()
	h.unregister(owner, c)
}

func (c *Client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("ws write failed", "owner", c.owner, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
