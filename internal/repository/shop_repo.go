package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/rifamarket/rifa_api/internal/models"
)

// ShopRepository handles data access for seller shops.
type ShopRepository struct {
	db *sqlx.DB
}

// NewShopRepository creates a new ShopRepository.
func NewShopRepository(db *sqlx.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// Create inserts a new shop row.
func (r *ShopRepository) Create(s *models.Shop) error {
	const q = `
        INSERT INTO shops (shop_id, name, email, description, api_key, verification_status, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id`
	return r.db.QueryRow(q, s.ShopID, s.Name, s.Email, s.Description, s.APIKey, s.VerificationStatus, s.IsActive).Scan(&s.ID)
}

// GetByAPIKey returns a shop by its API key.
func (r *ShopRepository) GetByAPIKey(apiKey string) (*models.Shop, error) {
	const q = `SELECT * FROM shops WHERE api_key = $1 LIMIT 1`
	var s models.Shop
	if err := r.db.Get(&s, q, apiKey); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &s, nil
}

// GetByShopID returns a shop by its public identifier.
func (r *ShopRepository) GetByShopID(shopID string) (*models.Shop, error) {
	const q = `SELECT * FROM shops WHERE shop_id = $1 LIMIT 1`
	var s models.Shop
	if err := r.db.Get(&s, q, shopID); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID returns a shop by internal id.
func (r *ShopRepository) GetByID(id int) (*models.Shop, error) {
	const q = `SELECT * FROM shops WHERE id = $1 LIMIT 1`
	var s models.Shop
	if err := r.db.Get(&s, q, id); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all shops, newest first.
func (r *ShopRepository) List(page, limit int) ([]models.Shop, int, error) {
	const qCount = `SELECT COUNT(*) FROM shops`
	var total int
	if err := r.db.Get(&total, qCount); err != nil {
		return nil, 0, err
	}

	const q = `SELECT * FROM shops ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	var list []models.Shop
	if err := r.db.Select(&list, q, limit, (page-1)*limit); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateVerificationStatus sets the verification status of a shop.
func (r *ShopRepository) UpdateVerificationStatus(id int, status models.VerificationStatus) error {
	const q = `UPDATE shops SET verification_status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, status)
	return err
}

// UpdateAPIKey replaces the shop's API key.
func (r *ShopRepository) UpdateAPIKey(id int, apiKey string) error {
	const q = `UPDATE shops SET api_key = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, apiKey)
	return err
}

// CountActiveRaffles returns the number of active raffles owned by a shop.
func (r *ShopRepository) CountActiveRaffles(id int) (int, error) {
	const q = `SELECT COUNT(*) FROM raffles WHERE shop_id = $1 AND status = 'active'`
	var n int
	if err := r.db.Get(&n, q, id); err != nil {
		return 0, err
	}
	return n, nil
}
