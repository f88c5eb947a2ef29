package handler

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/pkg/mercadopago"
	"github.com/rifamarket/rifa_api/pkg/stripe"
)

// paymentFinalizer is the slice of the payment service webhooks drive.
type paymentFinalizer interface {
	Confirm(ctx context.Context, paymentID, method, externalTransactionID string) (*models.Payment, error)
	Fail(ctx context.Context, paymentID, reason string) (*models.Payment, error)
}

// mercadoPagoAPI resolves webhook notifications to payment records.
type mercadoPagoAPI interface {
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.PaymentInfo, error)
}

// WebhookHandler receives gateway callbacks and drives payments to their
// terminal state through the same idempotent path as client confirmations.
type WebhookHandler struct {
	payments          paymentFinalizer
	mercadopago       mercadoPagoAPI
	stripeSecret      string
	mercadopagoSecret string
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(payments paymentFinalizer, mpClient mercadoPagoAPI, stripeSecret, mercadopagoSecret string) *WebhookHandler {
	return &WebhookHandler{
		payments:          payments,
		mercadopago:       mpClient,
		stripeSecret:      stripeSecret,
		mercadopagoSecret: mercadopagoSecret,
	}
}

// HandleStripe handles POST /webhook/stripe
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid body"})
		return
	}

	event, err := stripe.ConstructEvent(body, c.GetHeader("Stripe-Signature"), h.stripeSecret)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected Stripe webhook")
		c.JSON(400, gin.H{"error": "Invalid signature"})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		c.JSON(400, gin.H{"error": "Invalid event object"})
		return
	}
	if session.ClientReferenceID == "" {
		log.Warn().Str("event_id", event.ID).Msg("Stripe event without client reference, ignoring")
		c.JSON(200, gin.H{"received": true})
		return
	}

	ctx := c.Request.Context()
	switch event.Type {
	case stripe.EventCheckoutSessionCompleted, stripe.EventCheckoutSessionAsyncPaymentSucceed:
		_, err = h.payments.Confirm(ctx, session.ClientReferenceID, models.MethodStripe, session.PaymentIntent)
	case stripe.EventCheckoutSessionExpired:
		_, err = h.payments.Fail(ctx, session.ClientReferenceID, "checkout session expired")
	case stripe.EventCheckoutSessionAsyncPaymentFailed:
		_, err = h.payments.Fail(ctx, session.ClientReferenceID, "asynchronous payment failed")
	default:
		log.Debug().Str("type", event.Type).Msg("Ignoring unhandled Stripe event type")
		c.JSON(200, gin.H{"received": true})
		return
	}

	if err != nil {
		// A non-2xx makes Stripe redeliver; transitions are idempotent so
		// retries are safe.
		log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to process Stripe webhook")
		c.JSON(500, gin.H{"error": "Processing failed"})
		return
	}

	c.JSON(200, gin.H{"received": true})
}

// HandleMercadoPago handles POST /webhook/mercadopago
func (h *WebhookHandler) HandleMercadoPago(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid body"})
		return
	}

	var notification mercadopago.WebhookNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}
	if notification.Type != "payment" || notification.Data.ID == "" {
		c.JSON(200, gin.H{"received": true})
		return
	}

	if !mercadopago.VerifyWebhookSignature(
		c.GetHeader("x-signature"),
		c.GetHeader("x-request-id"),
		notification.Data.ID,
		h.mercadopagoSecret,
	) {
		log.Warn().Str("data_id", notification.Data.ID).Msg("Rejected Mercado Pago webhook")
		c.JSON(400, gin.H{"error": "Invalid signature"})
		return
	}

	// The notification carries only the gateway payment id; fetch the full
	// record to learn the status and our payment reference.
	ctx := c.Request.Context()
	info, err := h.mercadopago.GetPayment(ctx, notification.Data.ID)
	if err != nil {
		log.Error().Err(err).Str("data_id", notification.Data.ID).Msg("Failed to fetch Mercado Pago payment")
		c.JSON(500, gin.H{"error": "Processing failed"})
		return
	}
	if info.ExternalReference == "" {
		c.JSON(200, gin.H{"received": true})
		return
	}

	switch info.Status {
	case mercadopago.StatusApproved:
		_, err = h.payments.Confirm(ctx, info.ExternalReference, models.MethodMercadoPago, notification.Data.ID)
	case mercadopago.StatusRejected, mercadopago.StatusCancelled:
		reason := info.StatusDetail
		if reason == "" {
			reason = "payment " + info.Status
		}
		_, err = h.payments.Fail(ctx, info.ExternalReference, reason)
	default:
		// in_process / pending: wait for the next notification.
		c.JSON(200, gin.H{"received": true})
		return
	}

	if err != nil {
		log.Error().Err(err).Str("data_id", notification.Data.ID).Msg("Failed to process Mercado Pago webhook")
		c.JSON(500, gin.H{"error": "Processing failed"})
		return
	}

	c.JSON(200, gin.H{"received": true})
}
