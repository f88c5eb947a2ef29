package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/repository"
	"github.com/rifamarket/rifa_api/internal/service"
)

// StatusCheckWorker reconciles pending payments whose webhook never arrived.
// It re-checks stale pending payments against their gateway and finalizes
// them through the same idempotent payment service path as the webhooks.
type StatusCheckWorker struct {
	paymentRepo *repository.PaymentRepository
	payments    *service.PaymentService
	router      *service.GatewayRouter
	interval    time.Duration
	staleAfter  time.Duration // How long a pending payment waits before re-checking
	maxAge      time.Duration // Max age before an unresolved payment is cancelled
}

// NewStatusCheckWorker constructs a StatusCheckWorker.
func NewStatusCheckWorker(
	paymentRepo *repository.PaymentRepository,
	payments *service.PaymentService,
	router *service.GatewayRouter,
	interval time.Duration,
	staleAfter time.Duration,
	maxAge time.Duration,
) *StatusCheckWorker {
	return &StatusCheckWorker{
		paymentRepo: paymentRepo,
		payments:    payments,
		router:      router,
		interval:    interval,
		staleAfter:  staleAfter,
		maxAge:      maxAge,
	}
}

// Start begins the periodic reconciliation loop until context is canceled.
func (w *StatusCheckWorker) Start(ctx context.Context) {
	log.Info().
		Dur("interval", w.interval).
		Dur("stale_after", w.staleAfter).
		Dur("max_age", w.maxAge).
		Msg("Starting status check worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Status check worker stopped")
			return
		}
	}
}

func (w *StatusCheckWorker) run(ctx context.Context) {
	stale, err := w.paymentRepo.GetStalePending(w.staleAfter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get stale pending payments")
		return
	}
	if len(stale) == 0 {
		return
	}

	log.Info().Int("count", len(stale)).Msg("Re-checking stale pending payments")

	for i := range stale {
		select {
		case <-ctx.Done():
			return
		default:
			w.checkPayment(ctx, &stale[i])
		}
	}
}

func (w *StatusCheckWorker) checkPayment(ctx context.Context, p *models.Payment) {
	age := time.Since(p.CreatedAt)

	// Too old with no resolution: abandon it. Tickets are only allocated on
	// confirmation, so nothing needs releasing.
	if age > w.maxAge {
		log.Warn().
			Str("payment_id", p.PaymentID).
			Dur("age", age).
			Msg("Payment too old, cancelling")
		if _, err := w.payments.Cancel(ctx, p.PaymentID, "payment timeout - no gateway resolution"); err != nil {
			log.Error().Err(err).Str("payment_id", p.PaymentID).Msg("Failed to cancel timed-out payment")
		}
		return
	}

	// A payment that never entered checkout has no gateway record to ask.
	if p.Method == nil || p.GatewaySessionID == nil {
		return
	}

	gateway, err := w.router.Get(*p.Method)
	if err != nil {
		log.Error().Err(err).Str("payment_id", p.PaymentID).Str("method", *p.Method).Msg("No gateway registered for payment")
		return
	}

	log.Info().
		Str("payment_id", p.PaymentID).
		Str("method", *p.Method).
		Dur("age", age).
		Msg("Re-checking payment with gateway")

	outcome, err := gateway.CheckPayment(ctx, p)
	if err != nil {
		log.Warn().
			Err(err).
			Str("payment_id", p.PaymentID).
			Msg("Network error checking payment status, will retry later")
		return // Don't fail, will retry on next run
	}

	if !outcome.Resolved {
		return
	}

	if outcome.Paid {
		if _, err := w.payments.Confirm(ctx, p.PaymentID, *p.Method, outcome.ExternalTransactionID); err != nil {
			log.Error().Err(err).Str("payment_id", p.PaymentID).Msg("Failed to confirm reconciled payment")
		}
		return
	}

	reason := outcome.FailureReason
	if reason == "" {
		reason = "gateway reported payment as not completed"
	}
	if _, err := w.payments.Fail(ctx, p.PaymentID, reason); err != nil {
		log.Error().Err(err).Str("payment_id", p.PaymentID).Msg("Failed to fail reconciled payment")
	}
}
