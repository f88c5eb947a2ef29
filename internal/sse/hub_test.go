package sse

import (
	"encoding/json"
	"testing"

	"github.com/rifamarket/rifa_api/internal/models"
)

func TestHubBroadcastFiltersByPayment(t *testing.T) {
	hub := NewHub()
	mine := hub.Register("c1", "pay-1")
	other := hub.Register("c2", "pay-2")
	all := hub.Register("c3", "")

	hub.Broadcast(&PaymentEvent{
		Event:     EventPaymentStatusChanged,
		PaymentID: "pay-1",
		Status:    string(models.PaymentCompleted),
	})

	select {
	case data := <-mine.Events:
		var ev PaymentEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		if ev.PaymentID != "pay-1" || ev.Status != "completed" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
		t.Fatal("subscriber of pay-1 received no event")
	}

	select {
	case <-other.Events:
		t.Fatal("subscriber of pay-2 must not receive pay-1 events")
	default:
	}

	select {
	case <-all.Events:
	default:
		t.Fatal("wildcard subscriber received no event")
	}
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	client := hub.Register("c1", "pay-1")
	hub.Unregister("c1")

	if _, ok := <-client.Events; ok {
		t.Fatal("events channel still open after unregister")
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	// Broadcasting with no subscribers must not panic.
	hub.Broadcast(&PaymentEvent{PaymentID: "pay-1"})
}
