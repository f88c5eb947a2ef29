package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/rifamarket/rifa_api/internal/models"
)

// UserRepository handles data access for marketplace accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row.
func (r *UserRepository) Create(u *models.User) error {
	const q = `
        INSERT INTO users (user_id, email, password_hash, name, role, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id`
	return r.db.QueryRow(q, u.UserID, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive).Scan(&u.ID)
}

// GetByEmail returns a user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT * FROM users WHERE email = $1 LIMIT 1`
	var u models.User
	if err := r.db.Get(&u, q, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by internal id.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	const q = `SELECT * FROM users WHERE id = $1 LIMIT 1`
	var u models.User
	if err := r.db.Get(&u, q, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsEmail reports whether an account with the email already exists.
func (r *UserRepository) ExistsEmail(email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := r.db.Get(&exists, q, email); err != nil {
		return false, err
	}
	return exists, nil
}
