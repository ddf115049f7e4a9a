package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"flightlist-service/internal/usecase"
	"flightlist-service/pkg/logger"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSnapshot    MessageType = "snapshot"
	MessageTypeScrollToTop MessageType = "scroll_to_top"
	MessageTypeError       MessageType = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

// Message represents a WebSocket message pushed to presentation clients
type Message struct {
	Type      MessageType              `json:"type"`
	SessionID string                   `json:"sessionId"`
	Snapshot  *usecase.SessionSnapshot `json:"snapshot,omitempty"`
	Message   string                   `json:"message,omitempty"`
	Timestamp int64                    `json:"timestamp"`
}

// ActionMessage is an action sent by a client, over HTTP or the socket
type ActionMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client is one WebSocket connection observing a session
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string

	mu          sync.Mutex
	send        chan []byte
	closed      bool
	lastVersion uint64
}

// Hub manages WebSocket connections per session
type Hub struct {
	clients  map[string]map[*Client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	actions  usecase.ActionRouter
	logger   logger.Logger
}

// NewHub creates a new Hub. Actions received on a socket are routed through actions.
func NewHub(actions usecase.ActionRouter, allowedOrigin string, logger logger.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
		actions: actions,
		logger:  logger,
	}
}

// Serve upgrades the request and streams session events until the socket closes
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, session *usecase.FlightListSession) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "sessionID", session.ID(), "error", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		sessionID: session.ID(),
		send:      make(chan []byte, sendBuffer),
	}
	h.register(client)
	h.logger.Debug("WebSocket client connected",
		"sessionID", client.sessionID,
		"clients", h.GetClientCount(client.sessionID))
	remove := session.Observe(client)
	client.OnSnapshot(session.Snapshot())

	go client.writePump()
	client.readPump(session)

	remove()
	h.unregister(client)
}

// CloseSession disconnects every client of a session
func (h *Hub) CloseSession(sessionID string) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[sessionID]))
	for c := range h.clients[sessionID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.conn.Close()
	}
}

// GetClientCount returns the number of clients watching a session
func (h *Hub) GetClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.sessionID] == nil {
		h.clients[c.sessionID] = make(map[*Client]bool)
	}
	h.clients[c.sessionID][c] = true
	h.logger.Debug("WebSocket client registered", "sessionID", c.sessionID, "total", len(h.clients[c.sessionID]))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.clients[c.sessionID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.clients, c.sessionID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// OnSnapshot queues a snapshot unless a newer one was already queued
func (c *Client) OnSnapshot(snapshot usecase.SessionSnapshot) {
	c.push(Message{Type: MessageTypeSnapshot, Snapshot: &snapshot}, snapshot.Version)
}

// OnScrollToTop tells the client to scroll its list to the first row
func (c *Client) OnScrollToTop() {
	c.push(Message{Type: MessageTypeScrollToTop}, 0)
}

// OnError forwards a session error
func (c *Client) OnError(err error) {
	c.push(Message{Type: MessageTypeError, Message: err.Error()}, 0)
}

// push queues msg. A non-zero version older than the last queued snapshot is dropped.
func (c *Client) push(msg Message, version uint64) {
	msg.SessionID = c.sessionID
	msg.Timestamp = time.Now().UnixMilli()
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.logger.Error("Failed to marshal WebSocket message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if version > 0 {
		if version < c.lastVersion {
			return
		}
		c.lastVersion = version
	}
	select {
	case c.send <- data:
	default:
		// slow consumer
		c.hub.logger.Warn("WebSocket send buffer full, dropping client", "sessionID", c.sessionID)
		c.closed = true
		close(c.send)
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump dispatches actions received from the client
func (c *Client) readPump(session *usecase.FlightListSession) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		session.Touch()
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ActionMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("WebSocket read error", "sessionID", c.sessionID, "error", err)
			}
			return
		}
		if err := usecase.DispatchAction(context.Background(), c.hub.actions, session, msg.Type, msg.Payload); err != nil {
			c.OnError(err)
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
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
