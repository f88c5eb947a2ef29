package models

import "time"

// Product is a prize listed by a shop. Its value sets the per-ticket price
// of raffles drawn on it.
type Product struct {
	ID          int       `db:"id" json:"-"`
	ProductID   string    `db:"product_id" json:"id"`
	ShopID      int       `db:"shop_id" json:"-"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Value       Money     `db:"value" json:"value"`
	ImageURL    *string   `db:"image_url" json:"imageUrl,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// ProductSummary is the nested product view embedded in raffle responses.
type ProductSummary struct {
	ProductID string  `db:"product_id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Value     Money   `db:"value" json:"value"`
	ImageURL  *string `db:"image_url" json:"imageUrl,omitempty"`
}
