package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/repository"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// directoryRefresher re-projects a shop's public directory entry after its
// raffle lineup changes.
type directoryRefresher interface {
	RefreshDirectoryEntry(ctx context.Context, shopID int) error
}

// RaffleService owns the raffle lifecycle and the public raffle read model.
type RaffleService struct {
	raffles   *repository.RaffleRepository
	products  *repository.ProductRepository
	directory directoryRefresher
}

func NewRaffleService(raffles *repository.RaffleRepository, products *repository.ProductRepository, directory directoryRefresher) *RaffleService {
	return &RaffleService{raffles: raffles, products: products, directory: directory}
}

// Create opens a draft raffle for one of the shop's products. The product
// value is snapshotted onto the raffle as the per-ticket price, so later
// catalog edits do not move an announced prize.
func (s *RaffleService) Create(shopID int, productID, title string, totalTickets int) (*models.Raffle, error) {
	product, err := s.products.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	if product.ShopID != shopID {
		return nil, utils.ErrProductNotFound
	}

	if totalTickets < 1 {
		return nil, utils.ErrInvalidQuantity
	}

	raffle := &models.Raffle{
		RaffleID:     uuid.New().String(),
		ShopID:       shopID,
		ProductID:    product.ID,
		Title:        title,
		ProductValue: product.Value,
		TotalTickets: totalTickets,
		Status:       models.RaffleDraft,
	}
	if err := s.raffles.Create(raffle); err != nil {
		return nil, err
	}

	log.Info().
		Str("raffle_id", raffle.RaffleID).
		Str("product_id", productID).
		Int("total_tickets", totalTickets).
		Msg("raffle created")

	return raffle, nil
}

// Get returns the public detail view. Raffles that never went live are not
// publicly addressable.
func (s *RaffleService) Get(raffleID string) (*models.RaffleDetail, error) {
	raffle, err := s.getByRaffleID(raffleID)
	if err != nil {
		return nil, err
	}
	switch raffle.Status {
	case models.RaffleDraft, models.RafflePendingApproval, models.RaffleRejected:
		return nil, utils.ErrRaffleNotFound
	}
	return s.detail(raffle), nil
}

// GetForShop returns a raffle in any status, scoped to its owning shop.
func (s *RaffleService) GetForShop(raffleID string, shopID int) (*models.RaffleDetail, error) {
	raffle, err := s.getOwned(raffleID, shopID)
	if err != nil {
		return nil, err
	}
	return s.detail(raffle), nil
}

// ListActive returns purchasable raffles for the public listing.
func (s *RaffleService) ListActive(page, limit int) ([]models.Raffle, int, error) {
	return s.raffles.ListByStatus(models.RaffleActive, page, limit)
}

// ListByShop returns all of a shop's raffles regardless of status.
func (s *RaffleService) ListByShop(shopID int) ([]models.Raffle, error) {
	return s.raffles.ListByShop(shopID)
}

// Submit moves a draft into the approval queue.
func (s *RaffleService) Submit(raffleID string, shopID int) (*models.Raffle, error) {
	return s.transitionOwned(raffleID, shopID, models.RafflePendingApproval)
}

// Pause suspends ticket sales on an active raffle.
func (s *RaffleService) Pause(raffleID string, shopID int) (*models.Raffle, error) {
	return s.transitionOwned(raffleID, shopID, models.RafflePaused)
}

// Resume reopens ticket sales on a paused raffle.
func (s *RaffleService) Resume(raffleID string, shopID int) (*models.Raffle, error) {
	return s.transitionOwned(raffleID, shopID, models.RaffleActive)
}

// Cancel withdraws a raffle from any non-terminal state.
func (s *RaffleService) Cancel(raffleID string, shopID int) (*models.Raffle, error) {
	return s.transitionOwned(raffleID, shopID, models.RaffleCancelled)
}

// Finish closes an active or sold-out raffle and draws the winning ticket.
// A raffle that sold nothing finishes without a winner.
func (s *RaffleService) Finish(raffleID string, shopID int) (*models.Raffle, error) {
	raffle, err := s.getOwned(raffleID, shopID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionRaffle(raffle.Status, models.RaffleFinished) {
		return nil, utils.ErrInvalidRaffleStatus
	}

	ticket, err := s.raffles.DrawWinner(raffle.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if ticket != nil {
		raffle.WinningTicketID = &ticket.ID
		log.Info().
			Str("raffle_id", raffle.RaffleID).
			Int("ticket_number", ticket.Number).
			Msg("winning ticket drawn")
	}

	if err := s.raffles.UpdateStatus(raffle.ID, models.RaffleFinished); err != nil {
		return nil, err
	}
	raffle.Status = models.RaffleFinished
	s.refreshDirectory(raffle.ShopID)
	return raffle, nil
}

// Approve activates a pending raffle. Admin only.
func (s *RaffleService) Approve(raffleID string) (*models.Raffle, error) {
	return s.transition(raffleID, models.RaffleActive)
}

// Reject declines a pending raffle. Admin only.
func (s *RaffleService) Reject(raffleID string) (*models.Raffle, error) {
	return s.transition(raffleID, models.RaffleRejected)
}

// ListPendingApproval returns the admin approval queue.
func (s *RaffleService) ListPendingApproval(page, limit int) ([]models.Raffle, int, error) {
	return s.raffles.ListByStatus(models.RafflePendingApproval, page, limit)
}

func (s *RaffleService) transitionOwned(raffleID string, shopID int, target models.RaffleStatus) (*models.Raffle, error) {
	raffle, err := s.getOwned(raffleID, shopID)
	if err != nil {
		return nil, err
	}
	return s.apply(raffle, target)
}

func (s *RaffleService) transition(raffleID string, target models.RaffleStatus) (*models.Raffle, error) {
	raffle, err := s.getByRaffleID(raffleID)
	if err != nil {
		return nil, err
	}
	return s.apply(raffle, target)
}

func (s *RaffleService) apply(raffle *models.Raffle, target models.RaffleStatus) (*models.Raffle, error) {
	if !models.CanTransitionRaffle(raffle.Status, target) {
		return nil, utils.ErrInvalidRaffleStatus
	}
	if err := s.raffles.UpdateStatus(raffle.ID, target); err != nil {
		return nil, err
	}
	log.Info().
		Str("raffle_id", raffle.RaffleID).
		Str("from", string(raffle.Status)).
		Str("to", string(target)).
		Msg("raffle status changed")
	raffle.Status = target
	s.refreshDirectory(raffle.ShopID)
	return raffle, nil
}

// refreshDirectory keeps the shop's public active raffle count current.
// Best effort: the directory projection repairs itself on the next change.
func (s *RaffleService) refreshDirectory(shopID int) {
	if s.directory == nil {
		return
	}
	if err := s.directory.RefreshDirectoryEntry(context.Background(), shopID); err != nil {
		log.Warn().Err(err).Int("shop_id", shopID).Msg("failed to refresh shop directory entry")
	}
}

func (s *RaffleService) getOwned(raffleID string, shopID int) (*models.Raffle, error) {
	raffle, err := s.getByRaffleID(raffleID)
	if err != nil {
		return nil, err
	}
	if raffle.ShopID != shopID {
		return nil, utils.ErrRaffleNotFound
	}
	return raffle, nil
}

func (s *RaffleService) getByRaffleID(raffleID string) (*models.Raffle, error) {
	raffle, err := s.raffles.GetByRaffleID(raffleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrRaffleNotFound
		}
		return nil, err
	}
	return raffle, nil
}

// detail assembles the read model; missing nested rows degrade to nil
// blocks rather than failing the read.
func (s *RaffleService) detail(raffle *models.Raffle) *models.RaffleDetail {
	product, err := s.raffles.GetProductSummary(raffle.ProductID)
	if err != nil {
		product = nil
	}
	shop, err := s.raffles.GetShopSummary(raffle.ShopID)
	if err != nil {
		shop = nil
	}
	return models.NewRaffleDetail(raffle, product, shop)
}
