// Package websocket - WebSocket Gamification Feed
// Pushes award notifications (XP, level ups, streaks, badges) to each user's
// connected clients in real time.
package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"learnhub/pkg/logger"
	"learnhub/pkg/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// Hub tracks every connected client per user id. A user may hold several
// connections (tabs, devices); events fan out to all of them. Implements the
// core Notifier interface.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool // user_id -> connections
}

// NewHub creates an empty feed hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]bool)}
}

// Notify delivers one event to every connection the user has open. Slow
// consumers get dropped rather than blocking the award path.
func (h *Hub) Notify(userID string, event models.GamificationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- event:
		default:
			// Full buffer means a dead or stalled connection.
			go client.close()
		}
	}
	logger.WebSocket(userID, event.Type)
}

// Register attaches a new connection for a user and starts its pumps.
func (h *Hub) Register(userID string, conn *websocket.Conn) *Client {
	client := &Client{
		hub:    h,
		conn:   conn,
		userID: userID,
		send:   make(chan models.GamificationEvent, sendBuffer),
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()

	logger.WebSocket(userID, "connected")
	return client
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if conns[client] {
			delete(conns, client)
			close(client.send)
		}
		if len(conns) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

// ConnectionCount reports open connections, for the health endpoint.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}
	return total
}

// Client is one WebSocket connection subscribed to its user's feed.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	userID    string
	send      chan models.GamificationEvent
	closeOnce sync.Once
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
		logger.WebSocket(c.userID, "disconnected")
	})
}

// readPump drains incoming frames. The feed is one-way; clients only send
// pongs and close frames, anything else is discarded.
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump serializes events onto the wire and keeps the connection alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
