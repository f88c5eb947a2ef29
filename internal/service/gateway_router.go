package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// GatewaySession is a hosted checkout session created at a payment gateway.
type GatewaySession struct {
	SessionID   string
	CheckoutURL string
	ExpiresAt   time.Time
}

// GatewayOutcome is the reconciled state of a payment at the gateway.
type GatewayOutcome struct {
	// Resolved is false while the gateway still reports the payment as open.
	Resolved bool
	// Paid is meaningful only when Resolved.
	Paid bool
	// ExternalTransactionID identifies the gateway-side transaction.
	ExternalTransactionID string
	// FailureReason carries the gateway's detail for unpaid outcomes.
	FailureReason string
}

// GatewayClient abstracts one payment gateway behind the checkout flow.
type GatewayClient interface {
	// Method returns the payment method tag this gateway serves.
	Method() string
	// CreateCheckout opens a hosted checkout session for a pending payment.
	CreateCheckout(ctx context.Context, payment *models.Payment, title string) (*GatewaySession, error)
	// CheckPayment reconciles a pending payment against the gateway's records.
	CheckPayment(ctx context.Context, payment *models.Payment) (*GatewayOutcome, error)
}

// GatewayRouter dispatches checkout operations to the registered gateway
// for a payment method tag.
type GatewayRouter struct {
	clients map[string]GatewayClient
}

// NewGatewayRouter creates an empty router.
func NewGatewayRouter() *GatewayRouter {
	return &GatewayRouter{clients: make(map[string]GatewayClient)}
}

// Register adds a gateway client under its method tag.
func (r *GatewayRouter) Register(client GatewayClient) {
	r.clients[client.Method()] = client
	log.Info().Str("method", client.Method()).Msg("payment gateway registered")
}

// Get returns the client for a method tag.
func (r *GatewayRouter) Get(method string) (GatewayClient, error) {
	client, ok := r.clients[method]
	if !ok {
		return nil, utils.ErrUnknownGateway
	}
	return client, nil
}

// Methods lists the registered method tags.
func (r *GatewayRouter) Methods() []string {
	methods := make([]string, 0, len(r.clients))
	for m := range r.clients {
		methods = append(methods, m)
	}
	return methods
}
