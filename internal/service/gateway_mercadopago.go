package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/pkg/mercadopago"
)

// MercadoPagoGateway adapts the Mercado Pago preference API to the
// GatewayClient interface.
type MercadoPagoGateway struct {
	client     *mercadopago.Client
	currency   string
	successURL string
	failureURL string
	sessionTTL time.Duration
}

func NewMercadoPagoGateway(client *mercadopago.Client, currency, successURL, failureURL string, sessionTTL time.Duration) *MercadoPagoGateway {
	return &MercadoPagoGateway{
		client:     client,
		currency:   currency,
		successURL: successURL,
		failureURL: failureURL,
		sessionTTL: sessionTTL,
	}
}

func (g *MercadoPagoGateway) Method() string {
	return models.MethodMercadoPago
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, payment *models.Payment, title string) (*GatewaySession, error) {
	unit := int64(payment.Amount) / int64(payment.TicketQuantity)
	pref, err := g.client.CreatePreference(ctx, &mercadopago.PreferenceRequest{
		Items: []mercadopago.PreferenceItem{{
			Title:      title,
			Quantity:   payment.TicketQuantity,
			UnitPrice:  float64(unit) / 100,
			CurrencyID: g.currency,
		}},
		ExternalReference: payment.PaymentID,
		BackURLs: &mercadopago.BackURLs{
			Success: g.successURL,
			Pending: g.successURL,
			Failure: g.failureURL,
		},
		AutoReturn: "approved",
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}
	return &GatewaySession{
		SessionID:   pref.ID,
		CheckoutURL: pref.InitPoint,
		ExpiresAt:   time.Now().Add(g.sessionTTL),
	}, nil
}

// CheckPayment reconciles by external reference: a preference id has no
// payment state of its own, the payment search does.
func (g *MercadoPagoGateway) CheckPayment(ctx context.Context, payment *models.Payment) (*GatewayOutcome, error) {
	info, err := g.client.SearchPaymentByReference(ctx, payment.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("mercadopago payment search: %w", err)
	}
	if info == nil {
		return &GatewayOutcome{}, nil
	}
	outcome := &GatewayOutcome{ExternalTransactionID: strconv.FormatInt(info.ID, 10)}
	switch info.Status {
	case mercadopago.StatusApproved:
		outcome.Resolved = true
		outcome.Paid = true
	case mercadopago.StatusRejected, mercadopago.StatusCancelled:
		outcome.Resolved = true
		outcome.FailureReason = info.StatusDetail
	}
	return outcome, nil
}
