package models

import "time"

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

// Shop is a seller entity owning products and raffles. Shops authenticate
// against the management API with a generated key.
type Shop struct {
	ID                 int                `db:"id" json:"-"`
	ShopID             string             `db:"shop_id" json:"id"`
	Name               string             `db:"name" json:"name"`
	Email              string             `db:"email" json:"email"`
	Description        *string            `db:"description" json:"description,omitempty"`
	APIKey             string             `db:"api_key" json:"-"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verificationStatus"`
	IsActive           bool               `db:"is_active" json:"isActive"`
	CreatedAt          time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time          `db:"updated_at" json:"-"`
}

// ShopSummary is the nested shop view embedded in raffle responses.
type ShopSummary struct {
	ShopID string `db:"shop_id" json:"id"`
	Name   string `db:"name" json:"name"`
}

// DirectoryEntry is the shop projection stored in the MongoDB directory
// collection, read by the public listing.
type DirectoryEntry struct {
	ShopID             string    `bson:"shopId" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Description        string    `bson:"description,omitempty" json:"description,omitempty"`
	VerificationStatus string    `bson:"verificationStatus" json:"verificationStatus"`
	ActiveRaffles      int       `bson:"activeRaffles" json:"activeRaffles"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}
