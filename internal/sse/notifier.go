package sse

import (
	"time"

	"github.com/rifamarket/rifa_api/internal/models"
)

// HubNotifier publishes payment status changes through the SSE Hub. It
// satisfies the payment service's notifier interface.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyPaymentStatus(p *models.Payment) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(paymentToEvent(EventPaymentStatusChanged, p))
}

func paymentToEvent(eventType EventType, p *models.Payment) *PaymentEvent {
	return &PaymentEvent{
		Event:         eventType,
		PaymentID:     p.PaymentID,
		RaffleID:      p.RaffleRef,
		Status:        string(p.Status),
		Amount:        p.Amount.String(),
		FailureReason: p.FailureReason,
		Timestamp:     time.Now(),
	}
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (n *NopNotifier) NotifyPaymentStatus(p *models.Payment) {}
