package server

import (
	"net/http"
	"sync"
	"time"

	"VinylFM/logger"
	"VinylFM/model"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// EventType names a broadcast event on the activity feed.
type EventType string

const (
	EvtRecordAdded   EventType = "record_added"
	EvtSessionLogged EventType = "session_logged"
)

// ActivityEvent is one message pushed to connected browsers so the gallery
// updates without a manual refresh.
type ActivityEvent struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin enforcement is left to the CORS layer; the feed carries
	// no sensitive data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan ActivityEvent
}

// Hub fans activity events out to every connected websocket client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// ServeWS upgrades the request and registers the connection on the feed.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", logger.ErrorField(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan ActivityEvent, 16),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	logger.Info("activity client connected", logger.String("client_id", c.id))

	go h.writeLoop(c)
	go h.readLoop(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// readLoop drains the connection; clients send nothing meaningful, the loop
// only exists to detect closes.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Debug("activity client disconnected", logger.String("client_id", c.id))
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	for event := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteJSON(event); err != nil {
			logger.Debug("activity write failed",
				logger.String("client_id", c.id), logger.ErrorField(err))
			return
		}
	}
}

func (h *Hub) broadcast(event ActivityEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- event:
		default:
			// Slow client; drop the event rather than block the save path.
		}
	}
}

// BroadcastRecordAdded announces a new inventory record.
func (h *Hub) BroadcastRecordAdded(record *model.Record) {
	if h == nil {
		return
	}
	h.broadcast(ActivityEvent{
		Type:      EvtRecordAdded,
		Payload:   record,
		Timestamp: time.Now().Unix(),
	})
}

// BroadcastSessionLogged announces a new listening session.
func (h *Hub) BroadcastSessionLogged(session *model.ListeningSession) {
	if h == nil {
		return
	}
	h.broadcast(ActivityEvent{
		Type:      EvtSessionLogged,
		Payload:   session,
		Timestamp: time.Now().Unix(),
	})
}
