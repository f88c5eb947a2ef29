package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventPaymentStatusChanged EventType = "payment.status_changed"
)

// PaymentEvent is the payload streamed to checkout pages waiting on a
// payment to settle.
type PaymentEvent struct {
	Event         EventType `json:"event"`
	PaymentID     string    `json:"paymentId"`
	RaffleID      *string   `json:"raffleId,omitempty"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount"`
	FailureReason *string   `json:"failureReason,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Client represents one connected SSE subscriber. A subscriber watches a
// single payment, or every payment when PaymentID is empty (admin stream).
type Client struct {
	ID        string
	PaymentID string
	Events    chan []byte
}

// Hub manages SSE client connections and broadcasts.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a subscriber for one payment (or all, when paymentID is
// empty) and returns it for streaming.
func (h *Hub) Register(clientID, paymentID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:        clientID,
		PaymentID: paymentID,
		Events:    make(chan []byte, 64),
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client disconnected")
	}
}

// Broadcast sends an event to every subscriber of its payment.
// Non-blocking: drops message if client buffer is full.
func (h *Hub) Broadcast(event *PaymentEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.PaymentID != "" && c.PaymentID != event.PaymentID {
			continue
		}
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("SSE client buffer full, dropping event")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
