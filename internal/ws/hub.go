package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket connection with user context. A
// connection is scoped to at most one open conversation at a time; opening
// another replaces the previous scope.
type Client struct {
	UserID uint
	Role   string
	Send   chan []byte
	Hub    *Hub // set on Register so Close() can unregister

	mu     sync.Mutex
	closed bool
	scope  uint // counterpart of the open conversation; 0 = none
}

// OpenConversation scopes the connection to counterpartID, tearing down the
// previous scope.
func (c *Client) OpenConversation(counterpartID uint) {
	c.mu.Lock()
	c.scope = counterpartID
	c.mu.Unlock()
}

func (c *Client) scopedTo(counterpartID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope == counterpartID
}

func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.Send)
	c.mu.Unlock()
	if c.Hub != nil {
		c.Hub.unregister(c)
	}
}

// Hub maintains the set of active clients keyed by user.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	// userID -> clients (one user can have multiple connections)
	byUser map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		byUser:  make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Hub = h
	h.clients[c] = struct{}{}
	if h.byUser[c.UserID] == nil {
		h.byUser[c.UserID] = make(map[*Client]struct{})
	}
	h.byUser[c.UserID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if m := h.byUser[c.UserID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byUser, c.UserID)
		}
	}
}

// DeliverMessage pushes payload to the receiver's connections whose open
// conversation is the sender. Connections scoped elsewhere drop the event;
// the sender's own connections are never echoed.
func (h *Hub) DeliverMessage(receiverID, senderID uint, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	m := h.byUser[receiverID]
	if m == nil {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		if !c.scopedTo(senderID) {
			continue
		}
		select {
		case c.Send <- data:
		default:
		}
	}
}

// IsOnline reports whether the user has at least one live connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID]) > 0
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
