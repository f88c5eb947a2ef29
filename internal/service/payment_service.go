package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/cache"
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// PaymentNotifier receives payment status changes for live delivery.
type PaymentNotifier interface {
	NotifyPaymentStatus(payment *models.Payment)
}

// paymentStore is the slice of the payment repository the lifecycle needs.
type paymentStore interface {
	Create(p *models.Payment) error
	UpdateStatusFrom(p *models.Payment, from models.PaymentStatus) error
	GetByPaymentID(paymentID string) (*models.Payment, error)
	CompleteWithTickets(p *models.Payment) error
	TicketsByPayment(paymentID int) ([]models.Ticket, error)
	ListByUser(userID, page, limit int) ([]models.Payment, int, error)
	List(status models.PaymentStatus, page, limit int) ([]models.Payment, int, error)
	Stats() ([]models.PaymentStats, error)
}

// raffleReader resolves the raffle a payment is opened against.
type raffleReader interface {
	GetByRaffleID(raffleID string) (*models.Raffle, error)
}

// PaymentService owns the payment lifecycle: creation against an active
// raffle, terminal transitions, and ticket allocation on completion.
type PaymentService struct {
	payments      paymentStore
	raffles       raffleReader
	checkoutCache *cache.CheckoutCache
	notifier      PaymentNotifier
	currency      string
}

func NewPaymentService(payments paymentStore, raffles raffleReader, checkoutCache *cache.CheckoutCache, currency string) *PaymentService {
	return &PaymentService{
		payments:      payments,
		raffles:       raffles,
		checkoutCache: checkoutCache,
		currency:      currency,
	}
}

// SetNotifier attaches the live status publisher. Wired after construction
// because the hub starts with the HTTP layer.
func (s *PaymentService) SetNotifier(n PaymentNotifier) {
	s.notifier = n
}

// Create opens a pending payment for raffle tickets. The amount is always
// recomputed server-side as quantity times the raffle's product value; a
// client-submitted amount that disagrees is rejected, never silently
// corrected.
func (s *PaymentService) Create(ctx context.Context, userID int, raffleID string, quantity int, clientAmount string) (*models.Payment, error) {
	raffle, err := s.raffles.GetByRaffleID(raffleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrRaffleNotFound
		}
		return nil, err
	}

	if err := ValidateQuantity(quantity, raffle); err != nil {
		return nil, err
	}

	amount := raffle.ProductValue.MulInt(quantity)
	if clientAmount != "" {
		submitted, err := models.ParseMoney(clientAmount)
		if err != nil || submitted != amount {
			return nil, utils.ErrAmountMismatch
		}
	}

	payment := &models.Payment{
		PaymentID:      uuid.New().String(),
		UserID:         userID,
		RaffleID:       &raffle.ID,
		RaffleRef:      &raffle.RaffleID,
		Amount:         amount,
		Currency:       s.currency,
		Status:         models.PaymentPending,
		TicketQuantity: quantity,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}
	payment.CreatedAt = time.Now()

	log.Info().
		Str("payment_id", payment.PaymentID).
		Str("raffle_id", raffle.RaffleID).
		Int("quantity", quantity).
		Str("amount", amount.String()).
		Msg("payment created")

	return payment, nil
}

// Confirm moves a pending payment to completed and allocates its tickets in
// the same transaction. Confirming an already completed payment returns it
// unchanged; confirming any other terminal state is rejected. If the raffle
// filled up since creation the payment is failed instead and
// utils.ErrRaffleSoldOut is returned.
func (s *PaymentService) Confirm(ctx context.Context, paymentID, method, externalTransactionID string) (*models.Payment, error) {
	payment, err := s.getByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentCompleted {
		return payment, nil
	}
	if !models.CanTransitionPayment(payment.Status, models.PaymentCompleted) {
		return nil, utils.ErrInvalidPaymentStatus
	}

	now := time.Now()
	payment.Status = models.PaymentCompleted
	payment.CompletedAt = &now
	if method != "" {
		payment.Method = &method
	}
	if externalTransactionID != "" {
		payment.ExternalTransactionID = &externalTransactionID
	}

	if err := s.payments.CompleteWithTickets(payment); err != nil {
		switch {
		case errors.Is(err, utils.ErrRaffleSoldOut):
			if _, failErr := s.Fail(ctx, paymentID, "raffle sold out before confirmation"); failErr != nil {
				log.Error().Err(failErr).Str("payment_id", paymentID).Msg("failed to mark sold-out payment as failed")
			}
			return nil, utils.ErrRaffleSoldOut
		case errors.Is(err, utils.ErrInvalidPaymentStatus):
			// Another writer finished the transition first. A duplicate
			// confirm lands here and still honors the idempotence contract.
			return s.settleRace(paymentID, models.PaymentCompleted)
		}
		return nil, err
	}

	s.afterTransition(ctx, payment)
	log.Info().
		Str("payment_id", payment.PaymentID).
		Int("quantity", payment.TicketQuantity).
		Msg("payment completed, tickets allocated")

	return payment, nil
}

// Fail moves a pending payment to failed. Failing an already failed payment
// returns it unchanged; any other terminal state is rejected.
func (s *PaymentService) Fail(ctx context.Context, paymentID, reason string) (*models.Payment, error) {
	return s.terminate(ctx, paymentID, models.PaymentFailed, reason)
}

// Cancel abandons a pending payment. Used by the reconciliation worker for
// payments past their maximum age.
func (s *PaymentService) Cancel(ctx context.Context, paymentID, reason string) (*models.Payment, error) {
	return s.terminate(ctx, paymentID, models.PaymentCancelled, reason)
}

func (s *PaymentService) terminate(ctx context.Context, paymentID string, target models.PaymentStatus, reason string) (*models.Payment, error) {
	payment, err := s.getByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == target {
		return payment, nil
	}
	if !models.CanTransitionPayment(payment.Status, target) {
		return nil, utils.ErrInvalidPaymentStatus
	}

	from := payment.Status
	now := time.Now()
	payment.Status = target
	payment.FailedAt = &now
	if reason != "" {
		payment.FailureReason = &reason
	}
	if err := s.payments.UpdateStatusFrom(payment, from); err != nil {
		if errors.Is(err, utils.ErrInvalidPaymentStatus) {
			return s.settleRace(paymentID, target)
		}
		return nil, err
	}

	s.afterTransition(ctx, payment)
	log.Info().
		Str("payment_id", payment.PaymentID).
		Str("status", string(target)).
		Str("reason", reason).
		Msg("payment closed")

	return payment, nil
}

// Refund moves a completed payment to refunded. Allocated tickets stay with
// the payment for audit; the raffle counter is not rolled back.
func (s *PaymentService) Refund(ctx context.Context, paymentID, reason string) (*models.Payment, error) {
	payment, err := s.getByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentRefunded {
		return payment, nil
	}
	if !models.CanTransitionPayment(payment.Status, models.PaymentRefunded) {
		return nil, utils.ErrInvalidPaymentStatus
	}

	from := payment.Status
	payment.Status = models.PaymentRefunded
	if reason != "" {
		payment.FailureReason = &reason
	}
	if err := s.payments.UpdateStatusFrom(payment, from); err != nil {
		if errors.Is(err, utils.ErrInvalidPaymentStatus) {
			return s.settleRace(paymentID, models.PaymentRefunded)
		}
		return nil, err
	}

	s.afterTransition(ctx, payment)
	log.Info().Str("payment_id", payment.PaymentID).Msg("payment refunded")

	return payment, nil
}

// Get returns a payment scoped to its owner. Admins see every payment;
// other callers get not-found rather than a permission hint.
func (s *PaymentService) Get(paymentID string, userID int, isAdmin bool) (*models.Payment, error) {
	payment, err := s.getByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && payment.UserID != userID {
		return nil, utils.ErrPaymentNotFound
	}
	return payment, nil
}

// Tickets returns the ticket numbers allocated to a payment, owner-scoped.
func (s *PaymentService) Tickets(paymentID string, userID int, isAdmin bool) ([]models.Ticket, error) {
	payment, err := s.Get(paymentID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	return s.payments.TicketsByPayment(payment.ID)
}

// ListByUser returns a user's payments, newest first.
func (s *PaymentService) ListByUser(userID, page, limit int) ([]models.Payment, int, error) {
	return s.payments.ListByUser(userID, page, limit)
}

// List returns payments across all users, optionally filtered by status.
func (s *PaymentService) List(status models.PaymentStatus, page, limit int) ([]models.Payment, int, error) {
	return s.payments.List(status, page, limit)
}

// Stats aggregates payment counts and totals by status.
func (s *PaymentService) Stats() ([]models.PaymentStats, error) {
	return s.payments.Stats()
}

// settleRace re-reads a payment after a guarded update found the row already
// moved on. If the concurrent writer applied the same target the duplicate
// is a no-op and the settled record is returned; a crossing transition is
// rejected.
func (s *PaymentService) settleRace(paymentID string, target models.PaymentStatus) (*models.Payment, error) {
	current, err := s.getByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}
	if current.Status == target {
		return current, nil
	}
	return nil, utils.ErrInvalidPaymentStatus
}

func (s *PaymentService) getByPaymentID(paymentID string) (*models.Payment, error) {
	payment, err := s.payments.GetByPaymentID(paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// afterTransition drops the cached checkout session and pushes the new
// status to live subscribers.
func (s *PaymentService) afterTransition(ctx context.Context, payment *models.Payment) {
	if s.checkoutCache != nil {
		if err := s.checkoutCache.Delete(ctx, payment.PaymentID); err != nil {
			log.Warn().Err(err).Str("payment_id", payment.PaymentID).Msg("failed to drop checkout session cache")
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyPaymentStatus(payment)
	}
}
