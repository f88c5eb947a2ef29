package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/rifamarket/rifa_api/internal/models"
)

// ProductRepository handles data access for shop products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product row.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products (product_id, shop_id, name, description, value, image_url, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id`
	return r.db.QueryRow(q, p.ProductID, p.ShopID, p.Name, p.Description, p.Value, p.ImageURL, p.IsActive).Scan(&p.ID)
}

// GetByProductID returns a product by its public identifier.
func (r *ProductRepository) GetByProductID(productID string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, productID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// GetByID returns a product by internal id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByShop returns all products owned by a shop, newest first.
func (r *ProductRepository) ListByShop(shopID int) ([]models.Product, error) {
	const q = `SELECT * FROM products WHERE shop_id = $1 ORDER BY created_at DESC`
	var list []models.Product
	if err := r.db.Select(&list, q, shopID); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateImageURL stores the uploaded image location for a product.
func (r *ProductRepository) UpdateImageURL(id int, url string) error {
	const q = `UPDATE products SET image_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(q, id, url)
	return err
}
