package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/repository"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// AuthService handles user accounts and shop API-key authentication.
type AuthService struct {
	users *repository.UserRepository
	shops *repository.ShopRepository
}

func NewAuthService(users *repository.UserRepository, shops *repository.ShopRepository) *AuthService {
	return &AuthService{users: users, shops: shops}
}

// Register creates a user account and returns it with a session token.
func (s *AuthService) Register(email, password, name string) (*models.User, string, error) {
	taken, err := s.users.ExistsEmail(email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", utils.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("user_id", user.UserID).Msg("user registered")
	return user, token, nil
}

// Login authenticates a user by email and password and returns a session
// token carrying the account's role.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", utils.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser returns a user by internal id.
func (s *AuthService) GetUser(id int) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// ValidateShopKey resolves a shop management API key to its shop. Inactive
// shops authenticate like unknown keys.
func (s *AuthService) ValidateShopKey(apiKey string) (*models.Shop, error) {
	shop, err := s.shops.GetByAPIKey(apiKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrInvalidShop
		}
		return nil, err
	}
	if !shop.IsActive {
		return nil, utils.ErrInvalidShop
	}
	return shop, nil
}
