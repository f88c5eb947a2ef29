package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// fakePaymentStore keeps payments in memory and applies the same
// status-guarded writes the SQL layer does.
type fakePaymentStore struct {
	payments      map[string]models.Payment
	nextID        int
	completeHook  func(p *models.Payment) error
	completeCalls int
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: map[string]models.Payment{}}
}

func (f *fakePaymentStore) seed(p models.Payment) {
	f.nextID++
	p.ID = f.nextID
	f.payments[p.PaymentID] = p
}

func (f *fakePaymentStore) Create(p *models.Payment) error {
	f.nextID++
	p.ID = f.nextID
	f.payments[p.PaymentID] = *p
	return nil
}

func (f *fakePaymentStore) UpdateStatusFrom(p *models.Payment, from models.PaymentStatus) error {
	cur, ok := f.payments[p.PaymentID]
	if !ok || cur.Status != from {
		return utils.ErrInvalidPaymentStatus
	}
	f.payments[p.PaymentID] = *p
	return nil
}

func (f *fakePaymentStore) GetByPaymentID(paymentID string) (*models.Payment, error) {
	p, ok := f.payments[paymentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (f *fakePaymentStore) CompleteWithTickets(p *models.Payment) error {
	f.completeCalls++
	if f.completeHook != nil {
		if err := f.completeHook(p); err != nil {
			return err
		}
	}
	cur, ok := f.payments[p.PaymentID]
	if !ok || cur.Status != models.PaymentPending {
		return utils.ErrInvalidPaymentStatus
	}
	f.payments[p.PaymentID] = *p
	return nil
}

func (f *fakePaymentStore) TicketsByPayment(paymentID int) ([]models.Ticket, error) {
	return nil, nil
}

func (f *fakePaymentStore) ListByUser(userID, page, limit int) ([]models.Payment, int, error) {
	return nil, 0, nil
}

func (f *fakePaymentStore) List(status models.PaymentStatus, page, limit int) ([]models.Payment, int, error) {
	return nil, 0, nil
}

func (f *fakePaymentStore) Stats() ([]models.PaymentStats, error) {
	return nil, nil
}

type fakeRaffleReader struct {
	raffle *models.Raffle
}

func (f *fakeRaffleReader) GetByRaffleID(raffleID string) (*models.Raffle, error) {
	if f.raffle == nil || f.raffle.RaffleID != raffleID {
		return nil, sql.ErrNoRows
	}
	r := *f.raffle
	return &r, nil
}

func activeRaffle() *models.Raffle {
	return &models.Raffle{
		ID:           1,
		RaffleID:     "r1",
		Title:        "Console giveaway",
		ProductValue: 1999,
		TotalTickets: 100,
		SoldTickets:  97,
		Status:       models.RaffleActive,
	}
}

func newTestPaymentService(store *fakePaymentStore, raffle *models.Raffle) *PaymentService {
	return NewPaymentService(store, &fakeRaffleReader{raffle: raffle}, nil, "EUR")
}

func seedPending(store *fakePaymentStore) string {
	raffleID := 1
	ref := "r1"
	store.seed(models.Payment{
		PaymentID:      "pay-1",
		UserID:         7,
		RaffleID:       &raffleID,
		RaffleRef:      &ref,
		Amount:         5997,
		Currency:       "EUR",
		Status:         models.PaymentPending,
		TicketQuantity: 3,
	})
	return "pay-1"
}

func TestCreateRecomputesAmount(t *testing.T) {
	store := newFakePaymentStore()
	svc := newTestPaymentService(store, activeRaffle())

	payment, err := svc.Create(context.Background(), 7, "r1", 3, "")
	if err != nil {
		t.Fatal(err)
	}
	if payment.Amount != 5997 {
		t.Fatalf("amount = %d cents, want 5997 (3 x 19.99)", payment.Amount)
	}
	if payment.Status != models.PaymentPending {
		t.Fatalf("status = %s, want pending", payment.Status)
	}
}

func TestCreateRejectsMismatchedAmount(t *testing.T) {
	store := newFakePaymentStore()
	svc := newTestPaymentService(store, activeRaffle())

	if _, err := svc.Create(context.Background(), 7, "r1", 3, "60.00"); !errors.Is(err, utils.ErrAmountMismatch) {
		t.Fatalf("err = %v, want AMOUNT_MISMATCH", err)
	}
	if len(store.payments) != 0 {
		t.Fatal("nothing may be persisted on a rejected amount")
	}
}

func TestCreateAcceptsMatchingAmount(t *testing.T) {
	store := newFakePaymentStore()
	svc := newTestPaymentService(store, activeRaffle())

	payment, err := svc.Create(context.Background(), 7, "r1", 3, "59.97")
	if err != nil {
		t.Fatal(err)
	}
	if payment.Amount != 5997 {
		t.Fatalf("amount = %d, want 5997", payment.Amount)
	}
}

func TestConfirmCompletedPaymentIsIdempotent(t *testing.T) {
	store := newFakePaymentStore()
	txID := "stripe_123"
	store.seed(models.Payment{
		PaymentID:             "pay-1",
		UserID:                7,
		Status:                models.PaymentCompleted,
		ExternalTransactionID: &txID,
	})
	svc := newTestPaymentService(store, nil)

	payment, err := svc.Confirm(context.Background(), "pay-1", "stripe", "stripe_456")
	if err != nil {
		t.Fatal(err)
	}
	if payment.Status != models.PaymentCompleted {
		t.Fatalf("status = %s, want completed", payment.Status)
	}
	if payment.ExternalTransactionID == nil || *payment.ExternalTransactionID != "stripe_123" {
		t.Fatal("duplicate confirm must return the record unchanged")
	}
	if store.completeCalls != 0 {
		t.Fatalf("ticket allocation ran %d times on a duplicate confirm", store.completeCalls)
	}
}

func TestConfirmFailedPaymentRejected(t *testing.T) {
	store := newFakePaymentStore()
	store.seed(models.Payment{PaymentID: "pay-1", UserID: 7, Status: models.PaymentFailed})
	svc := newTestPaymentService(store, nil)

	if _, err := svc.Confirm(context.Background(), "pay-1", "stripe", "tx"); !errors.Is(err, utils.ErrInvalidPaymentStatus) {
		t.Fatalf("err = %v, want INVALID_PAYMENT_STATUS", err)
	}
	if store.payments["pay-1"].Status != models.PaymentFailed {
		t.Fatal("crossing confirm must change nothing")
	}
}

func TestFailFailedPaymentIsIdempotent(t *testing.T) {
	store := newFakePaymentStore()
	reason := "card declined"
	store.seed(models.Payment{PaymentID: "pay-1", UserID: 7, Status: models.PaymentFailed, FailureReason: &reason})
	svc := newTestPaymentService(store, nil)

	payment, err := svc.Fail(context.Background(), "pay-1", "another reason")
	if err != nil {
		t.Fatal(err)
	}
	if payment.FailureReason == nil || *payment.FailureReason != "card declined" {
		t.Fatal("duplicate fail must return the record unchanged")
	}
}

func TestFailCompletedPaymentRejected(t *testing.T) {
	store := newFakePaymentStore()
	store.seed(models.Payment{PaymentID: "pay-1", UserID: 7, Status: models.PaymentCompleted})
	svc := newTestPaymentService(store, nil)

	if _, err := svc.Fail(context.Background(), "pay-1", "late callback"); !errors.Is(err, utils.ErrInvalidPaymentStatus) {
		t.Fatalf("err = %v, want INVALID_PAYMENT_STATUS", err)
	}
	if store.payments["pay-1"].Status != models.PaymentCompleted {
		t.Fatal("crossing fail must change nothing")
	}
}

func TestConfirmLostRaceSettlesOnWinner(t *testing.T) {
	store := newFakePaymentStore()
	paymentID := seedPending(store)
	// The guarded write loses: another confirm committed between the read
	// and the allocation.
	store.completeHook = func(p *models.Payment) error {
		winner := store.payments[paymentID]
		winner.Status = models.PaymentCompleted
		store.payments[paymentID] = winner
		return utils.ErrInvalidPaymentStatus
	}
	svc := newTestPaymentService(store, activeRaffle())

	payment, err := svc.Confirm(context.Background(), paymentID, "stripe", "tx")
	if err != nil {
		t.Fatalf("duplicate confirm after a lost race must settle, got %v", err)
	}
	if payment.Status != models.PaymentCompleted {
		t.Fatalf("status = %s, want completed", payment.Status)
	}
	if store.completeCalls != 1 {
		t.Fatalf("ticket allocation attempted %d times, want 1", store.completeCalls)
	}
}

func TestConfirmSoldOutFailsPayment(t *testing.T) {
	store := newFakePaymentStore()
	paymentID := seedPending(store)
	store.completeHook = func(p *models.Payment) error {
		return utils.ErrRaffleSoldOut
	}
	svc := newTestPaymentService(store, activeRaffle())

	if _, err := svc.Confirm(context.Background(), paymentID, "stripe", "tx"); !errors.Is(err, utils.ErrRaffleSoldOut) {
		t.Fatalf("err = %v, want RAFFLE_SOLD_OUT", err)
	}
	stored := store.payments[paymentID]
	if stored.Status != models.PaymentFailed {
		t.Fatalf("status = %s, want failed", stored.Status)
	}
	if stored.FailureReason == nil || *stored.FailureReason == "" {
		t.Fatal("sold-out failure must record a reason")
	}
}
