package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// PaymentRepository handles data access for payments and their tickets.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// selectPayment joins the owning raffle so responses carry its public id.
const selectPayment = `
    SELECT p.*, r.raffle_id AS raffle_ref
    FROM payments p
    LEFT JOIN raffles r ON r.id = p.raffle_id`

// Create inserts a new payment row.
func (r *PaymentRepository) Create(p *models.Payment) error {
	const q = `
        INSERT INTO payments (
            payment_id, user_id, raffle_id, amount, currency, status, method,
            ticket_quantity, external_transaction_id, gateway_session_id,
            failure_reason, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
        RETURNING id`
	return r.db.QueryRow(q,
		p.PaymentID, p.UserID, p.RaffleID, p.Amount, p.Currency, p.Status, p.Method,
		p.TicketQuantity, p.ExternalTransactionID, p.GatewaySessionID, p.FailureReason,
	).Scan(&p.ID)
}

// UpdateStatusFrom persists a payment's mutable fields, but only while the
// stored row is still in the expected prior status. With the client, the
// webhook handler and the reconciliation worker all driving transitions,
// the guard in SQL is what keeps a duplicate callback from re-applying a
// transition another writer already made. Returns
// utils.ErrInvalidPaymentStatus when the row moved on.
func (r *PaymentRepository) UpdateStatusFrom(p *models.Payment, from models.PaymentStatus) error {
	const q = `
        UPDATE payments SET
            status = $2,
            method = $3,
            external_transaction_id = $4,
            gateway_session_id = $5,
            failure_reason = $6,
            completed_at = $7,
            failed_at = $8,
            updated_at = NOW()
        WHERE payment_id = $1 AND status = $9`
	res, err := r.db.Exec(q,
		p.PaymentID, p.Status, p.Method, p.ExternalTransactionID,
		p.GatewaySessionID, p.FailureReason, p.CompletedAt, p.FailedAt, from,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrInvalidPaymentStatus
	}
	return nil
}

// GetByPaymentID returns a payment by its public identifier.
func (r *PaymentRepository) GetByPaymentID(paymentID string) (*models.Payment, error) {
	q := selectPayment + ` WHERE p.payment_id = $1 LIMIT 1`
	var p models.Payment
	if err := r.db.Get(&p, q, paymentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// GetByGatewaySessionID returns a payment by the gateway checkout session it
// was last attached to.
func (r *PaymentRepository) GetByGatewaySessionID(sessionID string) (*models.Payment, error) {
	q := selectPayment + ` WHERE p.gateway_session_id = $1 LIMIT 1`
	var p models.Payment
	if err := r.db.Get(&p, q, sessionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// ListByUser returns a user's payments, newest first.
func (r *PaymentRepository) ListByUser(userID, page, limit int) ([]models.Payment, int, error) {
	const qCount = `SELECT COUNT(*) FROM payments WHERE user_id = $1`
	var total int
	if err := r.db.Get(&total, qCount, userID); err != nil {
		return nil, 0, err
	}

	q := selectPayment + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	var list []models.Payment
	if err := r.db.Select(&list, q, userID, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// List returns payments filtered by optional status, newest first.
func (r *PaymentRepository) List(status models.PaymentStatus, page, limit int) ([]models.Payment, int, error) {
	where := ""
	countArgs := []interface{}{}
	if status != "" {
		where = ` WHERE p.status = $1`
		countArgs = append(countArgs, status)
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM payments p`+where, countArgs...); err != nil {
		return nil, 0, err
	}

	q := selectPayment + where + fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`, len(countArgs)+1, len(countArgs)+2)
	args := append(countArgs, limit, (page-1)*limit)
	var list []models.Payment
	if err := r.db.Select(&list, q, args...); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetStalePending returns pending payments untouched for longer than
// staleAfter, oldest first. Used by the status check worker.
func (r *PaymentRepository) GetStalePending(staleAfter time.Duration) ([]models.Payment, error) {
	q := selectPayment + `
        WHERE p.status = 'pending' AND p.updated_at < $1
        ORDER BY p.created_at ASC
        LIMIT 100`
	var list []models.Payment
	if err := r.db.Select(&list, q, time.Now().Add(-staleAfter)); err != nil {
		return nil, err
	}
	return list, nil
}

// Stats aggregates payment counts and amounts grouped by status.
func (r *PaymentRepository) Stats() ([]models.PaymentStats, error) {
	const q = `
        SELECT status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount
        FROM payments
        GROUP BY status
        ORDER BY status`
	var stats []models.PaymentStats
	if err := r.db.Select(&stats, q); err != nil {
		return nil, err
	}
	return stats, nil
}

// CompleteWithTickets finalizes a confirmed payment in one transaction:
// it flips the payment from pending to completed, increments the raffle's
// sold counter guarded by total_tickets, assigns the next sequential ticket
// numbers to the payment, and flips the raffle to sold_out when it fills.
// The payment row goes first so that of two racing confirms only one
// reaches the counter bump; the loser gets utils.ErrInvalidPaymentStatus.
// Returns utils.ErrRaffleSoldOut when the raffle cannot satisfy the
// quantity anymore.
func (r *PaymentRepository) CompleteWithTickets(p *models.Payment) error {
	if p.RaffleID == nil {
		return utils.ErrRaffleNotFound
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qPayment = `
        UPDATE payments SET
            status = $2,
            method = $3,
            external_transaction_id = $4,
            failure_reason = NULL,
            completed_at = $5,
            updated_at = NOW()
        WHERE payment_id = $1 AND status = 'pending'`
	res, err := tx.Exec(qPayment, p.PaymentID, p.Status, p.Method, p.ExternalTransactionID, p.CompletedAt)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return utils.ErrInvalidPaymentStatus
	}

	// Conditional counter bump: fails when availability is gone.
	const qReserve = `
        UPDATE raffles
        SET sold_tickets = sold_tickets + $2, updated_at = NOW()
        WHERE id = $1 AND sold_tickets + $2 <= total_tickets AND status IN ('active', 'paused')
        RETURNING sold_tickets, total_tickets`
	var sold, total int
	if err := tx.QueryRow(qReserve, *p.RaffleID, p.TicketQuantity).Scan(&sold, &total); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrRaffleSoldOut
		}
		return err
	}

	// Assign the sequential numbers just reserved.
	const qTickets = `
        INSERT INTO tickets (raffle_id, payment_id, user_id, number, created_at)
        SELECT $1, $2, $3, n, NOW() FROM generate_series($4::int, $5::int) AS n`
	first := sold - p.TicketQuantity + 1
	if _, err := tx.Exec(qTickets, *p.RaffleID, p.ID, p.UserID, first, sold); err != nil {
		return err
	}

	if sold == total {
		const qSoldOut = `UPDATE raffles SET status = 'sold_out', updated_at = NOW() WHERE id = $1 AND status = 'active'`
		if _, err := tx.Exec(qSoldOut, *p.RaffleID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// TicketsByPayment returns the ticket numbers assigned to a payment.
func (r *PaymentRepository) TicketsByPayment(paymentID int) ([]models.Ticket, error) {
	const q = `SELECT * FROM tickets WHERE payment_id = $1 ORDER BY number ASC`
	var tickets []models.Ticket
	if err := r.db.Select(&tickets, q, paymentID); err != nil {
		return nil, err
	}
	return tickets, nil
}
