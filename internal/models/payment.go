package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment method tags as reported by checkout.
const (
	MethodStripe      = "stripe"
	MethodMercadoPago = "mercadopago"
)

// paymentTransitions is the full set of legal status moves. Payments are
// monotonic: once terminal, only completed may move on (to refunded).
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentCompleted: {PaymentRefunded},
}

// CanTransitionPayment reports whether moving from one payment status to
// another is allowed.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further client-driven
// transition from the checkout flow (refund is an admin operation).
func (s PaymentStatus) IsTerminal() bool {
	return s != PaymentPending
}

// Payment captures one purchase attempt for raffle tickets.
type Payment struct {
	ID                    int           `db:"id" json:"-"`
	PaymentID             string        `db:"payment_id" json:"id"`
	UserID                int           `db:"user_id" json:"-"`
	RaffleID              *int          `db:"raffle_id" json:"-"`
	RaffleRef             *string       `db:"raffle_ref" json:"raffleId,omitempty"`
	Amount                Money         `db:"amount" json:"amount"`
	Currency              string        `db:"currency" json:"currency"`
	Status                PaymentStatus `db:"status" json:"status"`
	Method                *string       `db:"method" json:"paymentMethod,omitempty"`
	TicketQuantity        int           `db:"ticket_quantity" json:"ticketQuantity"`
	ExternalTransactionID *string       `db:"external_transaction_id" json:"externalTransactionId,omitempty"`
	GatewaySessionID      *string       `db:"gateway_session_id" json:"-"`
	FailureReason         *string       `db:"failure_reason" json:"failureReason,omitempty"`
	CreatedAt             time.Time     `db:"created_at" json:"createdAt"`
	CompletedAt           *time.Time    `db:"completed_at" json:"completedAt,omitempty"`
	FailedAt              *time.Time    `db:"failed_at" json:"failedAt,omitempty"`
	UpdatedAt             time.Time     `db:"updated_at" json:"-"`
}

// Ticket is one numbered unit of participation, assigned on completion.
type Ticket struct {
	ID        int       `db:"id" json:"-"`
	RaffleID  int       `db:"raffle_id" json:"-"`
	PaymentID int       `db:"payment_id" json:"-"`
	UserID    int       `db:"user_id" json:"-"`
	Number    int       `db:"number" json:"number"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// PaymentStats aggregates payment counts and amounts by status.
type PaymentStats struct {
	Status      PaymentStatus `db:"status" json:"status"`
	Count       int           `db:"count" json:"count"`
	TotalAmount Money         `db:"total_amount" json:"totalAmount"`
}
