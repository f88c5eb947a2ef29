package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/pkg/stripe"
)

// StripeGateway adapts the Stripe checkout API to the GatewayClient interface.
type StripeGateway struct {
	client     *stripe.Client
	currency   string
	successURL string
	cancelURL  string
}

func NewStripeGateway(client *stripe.Client, currency, successURL, cancelURL string) *StripeGateway {
	return &StripeGateway{
		client:     client,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (g *StripeGateway) Method() string {
	return models.MethodStripe
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, payment *models.Payment, title string) (*GatewaySession, error) {
	// Amount is the exact total, so the per-ticket price divides evenly.
	unit := int64(payment.Amount) / int64(payment.TicketQuantity)
	session, err := g.client.CreateCheckoutSession(ctx, stripe.CheckoutSessionParams{
		AmountCents:       unit,
		Currency:          g.currency,
		ProductName:       title,
		Quantity:          payment.TicketQuantity,
		ClientReferenceID: payment.PaymentID,
		SuccessURL:        g.successURL,
		CancelURL:         g.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &GatewaySession{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		ExpiresAt:   time.Unix(session.ExpiresAt, 0),
	}, nil
}

func (g *StripeGateway) CheckPayment(ctx context.Context, payment *models.Payment) (*GatewayOutcome, error) {
	if payment.GatewaySessionID == nil {
		return &GatewayOutcome{}, nil
	}
	session, err := g.client.GetCheckoutSession(ctx, *payment.GatewaySessionID)
	if err != nil {
		return nil, fmt.Errorf("stripe session lookup: %w", err)
	}
	outcome := &GatewayOutcome{ExternalTransactionID: session.PaymentIntent}
	switch session.Status {
	case "complete":
		outcome.Resolved = true
		outcome.Paid = session.PaymentStatus == "paid"
		if !outcome.Paid {
			outcome.FailureReason = "session completed without payment"
		}
	case "expired":
		outcome.Resolved = true
		outcome.FailureReason = "checkout session expired"
	}
	return outcome, nil
}
