package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/repository"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// ShopService owns shop onboarding, verification, and the public directory
// read model. Postgres holds the authoritative shop rows; the directory
// projection in MongoDB is rewritten on every verification change.
type ShopService struct {
	shops     *repository.ShopRepository
	directory *repository.DirectoryRepository
}

func NewShopService(shops *repository.ShopRepository, directory *repository.DirectoryRepository) *ShopService {
	return &ShopService{shops: shops, directory: directory}
}

// Register onboards a shop and returns it with its freshly generated
// management API key. The key is only ever shown at registration and
// rotation.
func (s *ShopService) Register(name, email string, description *string) (*models.Shop, string, error) {
	apiKey, err := utils.GenerateShopKey()
	if err != nil {
		return nil, "", err
	}

	shop := &models.Shop{
		ShopID:             uuid.New().String(),
		Name:               name,
		Email:              email,
		Description:        description,
		APIKey:             apiKey,
		VerificationStatus: models.VerificationUnverified,
		IsActive:           true,
	}
	if err := s.shops.Create(shop); err != nil {
		return nil, "", err
	}

	log.Info().Str("shop_id", shop.ShopID).Msg("shop registered")
	return shop, apiKey, nil
}

// RotateKey replaces a shop's management API key.
func (s *ShopService) RotateKey(shopID string) (string, error) {
	shop, err := s.getByShopID(shopID)
	if err != nil {
		return "", err
	}
	apiKey, err := utils.GenerateShopKey()
	if err != nil {
		return "", err
	}
	if err := s.shops.UpdateAPIKey(shop.ID, apiKey); err != nil {
		return "", err
	}
	log.Info().Str("shop_id", shopID).Msg("shop api key rotated")
	return apiKey, nil
}

// Get returns a shop by public id.
func (s *ShopService) Get(shopID string) (*models.Shop, error) {
	return s.getByShopID(shopID)
}

// List returns shops for the admin overview.
func (s *ShopService) List(page, limit int) ([]models.Shop, int, error) {
	return s.shops.List(page, limit)
}

// SetVerification updates a shop's verification status and projects the
// change into the public directory. Verified shops are listed; any other
// status removes the entry.
func (s *ShopService) SetVerification(ctx context.Context, shopID string, status models.VerificationStatus) (*models.Shop, error) {
	shop, err := s.getByShopID(shopID)
	if err != nil {
		return nil, err
	}
	if err := s.shops.UpdateVerificationStatus(shop.ID, status); err != nil {
		return nil, err
	}
	shop.VerificationStatus = status

	if err := s.project(ctx, shop); err != nil {
		// The Postgres row is authoritative; a stale directory entry is
		// repaired on the next verification change.
		log.Error().Err(err).Str("shop_id", shopID).Msg("failed to project shop into directory")
	}

	log.Info().
		Str("shop_id", shopID).
		Str("verification_status", string(status)).
		Msg("shop verification updated")

	return shop, nil
}

// RefreshDirectoryEntry re-projects a shop after its raffle lineup changes,
// picking up the current active raffle count.
func (s *ShopService) RefreshDirectoryEntry(ctx context.Context, id int) error {
	shop, err := s.shops.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrShopNotFound
		}
		return err
	}
	return s.project(ctx, shop)
}

// Directory returns the public listing of verified shops.
func (s *ShopService) Directory(ctx context.Context, page, limit int) ([]*models.DirectoryEntry, int64, error) {
	entries, err := s.directory.FindVerified(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.directory.CountVerified(ctx)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// DirectoryEntry returns one public directory entry.
func (s *ShopService) DirectoryEntry(ctx context.Context, shopID string) (*models.DirectoryEntry, error) {
	entry, err := s.directory.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, utils.ErrShopNotFound
	}
	return entry, nil
}

func (s *ShopService) project(ctx context.Context, shop *models.Shop) error {
	if shop.VerificationStatus != models.VerificationVerified {
		return s.directory.Remove(ctx, shop.ShopID)
	}

	activeRaffles, err := s.shops.CountActiveRaffles(shop.ID)
	if err != nil {
		return err
	}

	entry := &models.DirectoryEntry{
		ShopID:             shop.ShopID,
		Name:               shop.Name,
		VerificationStatus: string(shop.VerificationStatus),
		ActiveRaffles:      activeRaffles,
		UpdatedAt:          time.Now(),
	}
	if shop.Description != nil {
		entry.Description = *shop.Description
	}
	return s.directory.Upsert(ctx, entry)
}

func (s *ShopService) getByShopID(shopID string) (*models.Shop, error) {
	shop, err := s.shops.GetByShopID(shopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrShopNotFound
		}
		return nil, err
	}
	return shop, nil
}
