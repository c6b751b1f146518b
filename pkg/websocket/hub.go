package websocket

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/pkg/metrics"
)

// Hub tracks connected clients by user and fans messages out to them.
type Hub struct {
	clients     map[*Client]struct{}
	userClients map[uuid.UUID][]*Client
	register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]struct{}),
		userClients: make(map[uuid.UUID][]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Run processes registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.mu.Unlock()
			metrics.WebsocketClients.Inc()
			h.logger.Debug("websocket client registered", zap.String("userID", client.UserID.String()))
		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	metrics.WebsocketClients.Dec()

	clients := h.userClients[client.UserID]
	for i, c := range clients {
		if c == client {
			clients = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(clients) == 0 {
		delete(h.userClients, client.UserID)
	} else {
		h.userClients[client.UserID] = clients
	}
	h.logger.Debug("websocket client removed", zap.String("userID", client.UserID.String()))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		h.removeLocked(client)
	}
}

func encode(messageType string, payload interface{}) ([]byte, error) {
	return json.Marshal(Envelope{Type: messageType, Payload: payload, Timestamp: time.Now().UTC()})
}

// SendToUser delivers to every connection of userID. Slow clients drop the message.
func (h *Hub) SendToUser(userID uuid.UUID, messageType string, payload interface{}) error {
	message, err := encode(messageType, payload)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.userClients[userID] {
		h.trySend(client, message)
	}
	return nil
}

// Broadcast delivers to every connected client except the listed users.
func (h *Hub) Broadcast(messageType string, payload interface{}, except ...uuid.UUID) error {
	message, err := encode(messageType, payload)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if slices.Contains(except, client.UserID) {
			continue
		}
		h.trySend(client, message)
	}
	return nil
}

func (h *Hub) trySend(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.logger.Warn("websocket send buffer full, dropping message", zap.String("userID", client.UserID.String()))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
