package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/rifamarket/rifa_api/internal/models"
)

// RaffleRepository handles data access for raffles.
type RaffleRepository struct {
	db *sqlx.DB
}

// NewRaffleRepository creates a new RaffleRepository.
func NewRaffleRepository(db *sqlx.DB) *RaffleRepository {
	return &RaffleRepository{db: db}
}

// Create inserts a new raffle row.
func (r *RaffleRepository) Create(rf *models.Raffle) error {
	const q = `
        INSERT INTO raffles (raffle_id, shop_id, product_id, title, product_value, total_tickets, sold_tickets, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING id`
	return r.db.QueryRow(q,
		rf.RaffleID, rf.ShopID, rf.ProductID, rf.Title, rf.ProductValue,
		rf.TotalTickets, rf.SoldTickets, rf.Status,
	).Scan(&rf.ID)
}

// GetByRaffleID returns a raffle by its public identifier.
func (r *RaffleRepository) GetByRaffleID(raffleID string) (*models.Raffle, error) {
	const q = `SELECT * FROM raffles WHERE raffle_id = $1 LIMIT 1`
	var rf models.Raffle
	if err := r.db.Get(&rf, q, raffleID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &rf, nil
}

// GetByID returns a raffle by internal id.
func (r *RaffleRepository) GetByID(id int) (*models.Raffle, error) {
	const q = `SELECT * FROM raffles WHERE id = $1 LIMIT 1`
	var rf models.Raffle
	if err := r.db.Get(&rf, q, id); err != nil {
		return nil, err
	}
	return &rf, nil
}

// ListByStatus returns raffles in the given status with pagination, newest first.
func (r *RaffleRepository) ListByStatus(status models.RaffleStatus, page, limit int) ([]models.Raffle, int, error) {
	const qCount = `SELECT COUNT(*) FROM raffles WHERE status = $1`
	var total int
	if err := r.db.Get(&total, qCount, status); err != nil {
		return nil, 0, err
	}

	const q = `SELECT * FROM raffles WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var list []models.Raffle
	if err := r.db.Select(&list, q, status, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByShop returns all raffles owned by a shop, newest first.
func (r *RaffleRepository) ListByShop(shopID int) ([]models.Raffle, error) {
	const q = `SELECT * FROM raffles WHERE shop_id = $1 ORDER BY created_at DESC`
	var list []models.Raffle
	if err := r.db.Select(&list, q, shopID); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus sets the raffle status.
func (r *RaffleRepository) UpdateStatus(id int, status models.RaffleStatus) error {
	const q = `UPDATE raffles SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, status)
	return err
}

// DrawWinner picks one ticket uniformly at random and records it on the
// raffle in the same transaction. Returns sql.ErrNoRows when no tickets
// were ever sold.
func (r *RaffleRepository) DrawWinner(raffleID int) (*models.Ticket, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qDraw = `SELECT * FROM tickets WHERE raffle_id = $1 ORDER BY random() LIMIT 1`
	var ticket models.Ticket
	if err := tx.Get(&ticket, qDraw, raffleID); err != nil {
		return nil, err
	}

	const qRecord = `UPDATE raffles SET winning_ticket_id = $2, updated_at = NOW() WHERE id = $1`
	if _, err := tx.Exec(qRecord, raffleID, ticket.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetProductSummary returns the nested product view for a raffle.
func (r *RaffleRepository) GetProductSummary(productID int) (*models.ProductSummary, error) {
	const q = `SELECT product_id, name, value, image_url FROM products WHERE id = $1 LIMIT 1`
	var p models.ProductSummary
	if err := r.db.Get(&p, q, productID); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetShopSummary returns the nested shop view for a raffle.
func (r *RaffleRepository) GetShopSummary(shopID int) (*models.ShopSummary, error) {
	const q = `SELECT shop_id, name FROM shops WHERE id = $1 LIMIT 1`
	var s models.ShopSummary
	if err := r.db.Get(&s, q, shopID); err != nil {
		return nil, err
	}
	return &s, nil
}
