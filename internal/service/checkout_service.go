package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/cache"
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/repository"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// CheckoutOutcome is the post-checkout read model: the payment's final
// state plus the raffle context when the raffle still exists.
type CheckoutOutcome struct {
	Payment *models.Payment      `json:"payment"`
	Raffle  *models.RaffleDetail `json:"raffle,omitempty"`
	Tickets []models.Ticket      `json:"tickets,omitempty"`
}

// CheckoutService drives hosted gateway sessions for pending payments and
// resolves checkout outcomes.
type CheckoutService struct {
	payments      *PaymentService
	raffles       *repository.RaffleRepository
	router        *GatewayRouter
	checkoutCache *cache.CheckoutCache
}

func NewCheckoutService(payments *PaymentService, raffles *repository.RaffleRepository, router *GatewayRouter, checkoutCache *cache.CheckoutCache) *CheckoutService {
	return &CheckoutService{
		payments:      payments,
		raffles:       raffles,
		router:        router,
		checkoutCache: checkoutCache,
	}
}

// Start opens or reuses a hosted checkout session for a pending payment.
// Re-entering checkout while a cached session is still valid returns the
// same session instead of creating a duplicate at the gateway.
func (s *CheckoutService) Start(ctx context.Context, paymentID string, userID int, method string) (*cache.CheckoutSession, error) {
	payment, err := s.payments.Get(paymentID, userID, false)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentPending {
		return nil, utils.ErrInvalidPaymentStatus
	}

	if cached, err := s.checkoutCache.Get(ctx, paymentID, method); err == nil && cached != nil {
		if cached.ExpiresAt.After(time.Now()) {
			log.Debug().Str("payment_id", paymentID).Str("method", method).Msg("reusing cached checkout session")
			return cached, nil
		}
	}

	gateway, err := s.router.Get(method)
	if err != nil {
		return nil, err
	}

	title := "raffle tickets"
	if payment.RaffleID != nil {
		if raffle, err := s.raffles.GetByID(*payment.RaffleID); err == nil {
			title = raffle.Title
		}
	}

	gws, err := gateway.CreateCheckout(ctx, payment, title)
	if err != nil {
		return nil, err
	}

	// Guarded on pending so a confirm landing mid-checkout is never
	// overwritten back to pending.
	payment.Method = &method
	payment.GatewaySessionID = &gws.SessionID
	if err := s.payments.payments.UpdateStatusFrom(payment, models.PaymentPending); err != nil {
		return nil, err
	}

	session := &cache.CheckoutSession{
		PaymentID:   paymentID,
		Method:      method,
		SessionID:   gws.SessionID,
		CheckoutURL: gws.CheckoutURL,
		ExpiresAt:   gws.ExpiresAt,
		CachedAt:    time.Now(),
	}
	if err := s.checkoutCache.Set(ctx, session); err != nil {
		log.Warn().Err(err).Str("payment_id", paymentID).Msg("failed to cache checkout session")
	}

	log.Info().
		Str("payment_id", paymentID).
		Str("method", method).
		Str("session_id", gws.SessionID).
		Msg("checkout session created")

	return session, nil
}

// Outcome resolves the post-checkout state for a payment. The raffle block
// is included only when the payment references a raffle that still exists;
// callers never fail just because the context went away.
func (s *CheckoutService) Outcome(ctx context.Context, paymentID string, userID int, isAdmin bool) (*CheckoutOutcome, error) {
	payment, err := s.payments.Get(paymentID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	outcome := &CheckoutOutcome{Payment: payment}

	if payment.RaffleID != nil {
		raffle, err := s.raffles.GetByID(*payment.RaffleID)
		if err == nil {
			outcome.Raffle = models.NewRaffleDetail(raffle, nil, nil)
		} else {
			log.Debug().Err(err).Str("payment_id", paymentID).Msg("raffle context unavailable for outcome")
		}
	}

	if payment.Status == models.PaymentCompleted {
		if tickets, err := s.payments.payments.TicketsByPayment(payment.ID); err == nil {
			outcome.Tickets = tickets
		}
	}

	return outcome, nil
}
