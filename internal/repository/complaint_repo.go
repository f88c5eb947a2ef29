package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/rifamarket/rifa_api/internal/models"
)

// ComplaintRepository handles data access for user complaints.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository creates a new ComplaintRepository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create inserts a new complaint row.
func (r *ComplaintRepository) Create(c *models.Complaint) error {
	const q = `
        INSERT INTO complaints (
            complaint_id, user_id, shop_ref, raffle_ref, payment_ref,
            type, subject, description, status, response_deadline, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
        RETURNING id`
	return r.db.QueryRow(q,
		c.ComplaintID, c.UserID, c.ShopRef, c.RaffleRef, c.PaymentRef,
		c.Type, c.Subject, c.Description, c.Status, c.ResponseDeadline,
	).Scan(&c.ID)
}

// GetByComplaintID returns a complaint by its public identifier.
func (r *ComplaintRepository) GetByComplaintID(complaintID string) (*models.Complaint, error) {
	const q = `SELECT * FROM complaints WHERE complaint_id = $1 LIMIT 1`
	var c models.Complaint
	if err := r.db.Get(&c, q, complaintID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &c, nil
}

// ListByUser returns a user's complaints, newest first.
func (r *ComplaintRepository) ListByUser(userID, page, limit int) ([]models.Complaint, int, error) {
	const qCount = `SELECT COUNT(*) FROM complaints WHERE user_id = $1`
	var total int
	if err := r.db.Get(&total, qCount, userID); err != nil {
		return nil, 0, err
	}

	const q = `SELECT * FROM complaints WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var list []models.Complaint
	if err := r.db.Select(&list, q, userID, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByStatus returns complaints in a given status for admin review, oldest first.
func (r *ComplaintRepository) ListByStatus(status models.ComplaintStatus, page, limit int) ([]models.Complaint, int, error) {
	const qCount = `SELECT COUNT(*) FROM complaints WHERE status = $1`
	var total int
	if err := r.db.Get(&total, qCount, status); err != nil {
		return nil, 0, err
	}

	const q = `SELECT * FROM complaints WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	var list []models.Complaint
	if err := r.db.Select(&list, q, status, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateStatus sets the complaint status and optional response text.
func (r *ComplaintRepository) UpdateStatus(id int, status models.ComplaintStatus, response *string) error {
	const q = `UPDATE complaints SET status = $2, response = COALESCE($3, response), updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, status, response)
	return err
}
