package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

type stubGateway struct {
	method string
}

func (s *stubGateway) Method() string { return s.method }

func (s *stubGateway) CreateCheckout(ctx context.Context, payment *models.Payment, title string) (*GatewaySession, error) {
	return &GatewaySession{SessionID: "sess-" + s.method}, nil
}

func (s *stubGateway) CheckPayment(ctx context.Context, payment *models.Payment) (*GatewayOutcome, error) {
	return &GatewayOutcome{}, nil
}

func TestGatewayRouterDispatch(t *testing.T) {
	router := NewGatewayRouter()
	router.Register(&stubGateway{method: models.MethodStripe})
	router.Register(&stubGateway{method: models.MethodMercadoPago})

	for _, method := range []string{models.MethodStripe, models.MethodMercadoPago} {
		client, err := router.Get(method)
		if err != nil {
			t.Fatalf("Get(%q) returned error: %v", method, err)
		}
		if client.Method() != method {
			t.Fatalf("Get(%q) returned gateway for %q", method, client.Method())
		}
	}

	if len(router.Methods()) != 2 {
		t.Fatalf("Methods() = %v, want 2 entries", router.Methods())
	}
}

func TestGatewayRouterUnknownMethod(t *testing.T) {
	router := NewGatewayRouter()
	router.Register(&stubGateway{method: models.MethodStripe})

	if _, err := router.Get("paypal"); !errors.Is(err, utils.ErrUnknownGateway) {
		t.Fatalf("Get(paypal) error = %v, want ErrUnknownGateway", err)
	}
}
