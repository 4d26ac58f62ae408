package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

// connection represents a single WebSocket client
type connection struct {
	userID int64
	role   string
	conn   *websocket.Conn
	send   chan []byte
}

// Hub manages all active WebSocket connections and routes notification
// events to users, roles, or everyone. A user may hold several
// connections (one per device).
type Hub struct {
	mu     sync.RWMutex
	conns  map[*connection]struct{}
	byUser map[int64]map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[*connection]struct{}),
		byUser: make(map[int64]map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
	set, ok := h.byUser[c.userID]
	if !ok {
		set = make(map[*connection]struct{})
		h.byUser[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; !ok {
		return
	}
	delete(h.conns, c)
	if set, ok := h.byUser[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.userID)
		}
	}
	close(c.send)
}

// SendToUser delivers an event to every connection of one user.
// Returns true if at least one connection accepted it.
func (h *Hub) SendToUser(userID int64, event string, payload any) bool {
	data, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	for c := range h.byUser[userID] {
		select {
		case c.send <- data:
			delivered = true
		default:
			// Client too slow — skip
		}
	}
	return delivered
}

// SendToRole delivers an event to every connected user holding the role.
func (h *Hub) SendToRole(role string, event string, payload any) {
	data, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		if c.role != role {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// Broadcast delivers an event to everyone connected.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ConnectedUsers reports how many distinct users are online.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser)
}

// ServeWS registers a new connection and starts read/write loops.
// Blocks until the connection drops.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64, role string) {
	c := &connection{
		userID: userID,
		role:   role,
		conn:   conn,
		send:   make(chan []byte, 256),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var frame Frame
		if err := json.Unmarshal(msg, &frame); err != nil {
			continue
		}

		switch frame.Event {
		case EventPing:
			// Application-level liveness signal; refreshes the read
			// deadline implicitly and gets a timestamped pong back.
			pong, err := json.Marshal(Frame{
				Event: EventPong,
				Data:  map[string]int64{"timestamp": time.Now().UnixMilli()},
			})
			if err != nil {
				continue
			}
			select {
			case c.send <- pong:
			default:
			}
		}
	}
}

func (h *Hub) writePump(c *connection) {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
