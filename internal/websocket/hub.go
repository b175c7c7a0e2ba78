package websocket

import (
	"encoding/json"
	"sync"

	"github.com/paikari/paikariworld-backend/pkg/logger"
)

// Hub tracks the open cart subscriptions per guest session and fans
// cart snapshots out to them. A session may hold several connections
// (multiple tabs); every tab sees the same cart.
type Hub struct {
	// SessionID -> open connections for that guest
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *sessionMessage

	mu sync.RWMutex
}

type sessionMessage struct {
	SessionID string
	Payload   []byte
}

// Client is one subscribed connection.
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan *sessionMessage, 256),
	}
}

// Run processes registrations and broadcasts. Call once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			logger.Debug("Cart subscription opened", map[string]interface{}{
				"session_id": client.SessionID,
				"tabs":       len(h.clients[client.SessionID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.SessionID]; ok {
				removed := false
				remaining := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						remaining = append(remaining, c)
					} else {
						removed = true
					}
				}
				if len(remaining) == 0 {
					delete(h.clients, client.SessionID)
				} else {
					h.clients[client.SessionID] = remaining
				}
				// A client can be unregistered twice: once by the
				// broadcast drop path and again by its read pump.
				// Only the pass that actually removed it may close
				// the send channel.
				if removed {
					close(client.Send)
				}
			}
			h.mu.Unlock()
			logger.Debug("Cart subscription closed", map[string]interface{}{
				"session_id": client.SessionID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[message.SessionID] {
				select {
				case client.Send <- message.Payload:
				default:
					// Send buffer full; drop the connection rather
					// than block the hub.
					go h.Unregister(client)
					logger.Warn("Cart subscriber send buffer full, disconnecting", map[string]interface{}{
						"session_id": message.SessionID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastToSession pushes a payload to every connection of one guest
// session. Delivery is best-effort; a full broadcast queue drops the
// message without affecting the mutation that produced it.
func (h *Hub) BroadcastToSession(sessionID string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal cart snapshot", err, nil)
		return err
	}

	select {
	case h.broadcast <- &sessionMessage{SessionID: sessionID, Payload: data}:
	default:
		logger.Warn("Broadcast channel full, cart snapshot dropped", map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return nil
}

// IsSessionOnline reports whether a session has open subscriptions.
func (h *Hub) IsSessionOnline(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[sessionID]
	return ok
}
