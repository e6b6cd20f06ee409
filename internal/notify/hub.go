package notify

import (
	"encoding/json"
	"sync"

	"livedocs/internal/document/model"
	"livedocs/pkg/logger"
)

const (
	// NotificationType carries a model.Notification payload.
	NotificationType = "NOTIFICATION"
)

// Message is the wire envelope pushed to connected clients.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans in-app notifications out to a user's open websocket connections.
// Connections are grouped by the user's email; a user with several tabs open
// holds several clients under the same key.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	mu      sync.Mutex
	clients map[string]map[*Client]bool // email -> connections
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.clients[client.Email] == nil {
				h.clients[client.Email] = make(map[*Client]bool)
			}
			h.clients[client.Email][client] = true
			h.mu.Unlock()
			logger.Sugar.Infof("Notification channel opened for %s", client.Email)

		case client := <-h.Unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.Email]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.Send)
					if len(conns) == 0 {
						delete(h.clients, client.Email)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// Push delivers a notification to every open connection of the target user.
// Users without an open connection are skipped; the persisted inbox is the
// durable copy.
func (h *Hub) Push(n model.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling notification %s: %v", n.ID, err)
		return
	}
	data, err := json.Marshal(Message{Type: NotificationType, Payload: payload})
	if err != nil {
		logger.Sugar.Errorf("Error marshalling push message: %v", err)
		return
	}

	h.mu.Lock()
	conns := make([]*Client, 0, len(h.clients[n.TargetEmail]))
	for client := range h.clients[n.TargetEmail] {
		conns = append(conns, client)
	}
	h.mu.Unlock()

	// Send outside the lock; a full buffer means the client is lagging and
	// the message is dropped for that connection only.
	for _, client := range conns {
		select {
		case client.Send <- data:
		default:
			logger.Sugar.Warnf("Send buffer full for %s, dropping push", client.Email)
		}
	}
}
