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

// ImageStore persists product images and returns their public URL.
type ImageStore interface {
	UploadProductImage(ctx context.Context, shopID, productID string, contentType string, body []byte) (string, error)
}

// ProductService owns the shop product catalog.
type ProductService struct {
	products *repository.ProductRepository
	shops    *repository.ShopRepository
	images   ImageStore
}

func NewProductService(products *repository.ProductRepository, shops *repository.ShopRepository, images ImageStore) *ProductService {
	return &ProductService{products: products, shops: shops, images: images}
}

// Create registers a product under a shop. The value is the prize's worth
// in the marketplace currency.
func (s *ProductService) Create(shopID int, name string, description *string, value string) (*models.Product, error) {
	amount, err := models.ParseMoney(value)
	if err != nil || amount <= 0 {
		return nil, utils.ErrAmountMismatch
	}

	product := &models.Product{
		ProductID:   uuid.New().String(),
		ShopID:      shopID,
		Name:        name,
		Description: description,
		Value:       amount,
		IsActive:    true,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}

	log.Info().Str("product_id", product.ProductID).Msg("product created")
	return product, nil
}

// Get returns a product scoped to its owning shop.
func (s *ProductService) Get(productID string, shopID int) (*models.Product, error) {
	product, err := s.getByProductID(productID)
	if err != nil {
		return nil, err
	}
	if product.ShopID != shopID {
		return nil, utils.ErrProductNotFound
	}
	return product, nil
}

// ListByShop returns a shop's catalog.
func (s *ProductService) ListByShop(shopID int) ([]models.Product, error) {
	return s.products.ListByShop(shopID)
}

// AttachImage uploads an image for a product and records its URL.
func (s *ProductService) AttachImage(ctx context.Context, productID string, shopID int, contentType string, body []byte) (*models.Product, error) {
	product, err := s.Get(productID, shopID)
	if err != nil {
		return nil, err
	}

	shop, err := s.shops.GetByID(shopID)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadProductImage(ctx, shop.ShopID, product.ProductID, contentType, body)
	if err != nil {
		return nil, err
	}

	if err := s.products.UpdateImageURL(product.ID, url); err != nil {
		return nil, err
	}
	product.ImageURL = &url

	log.Info().Str("product_id", productID).Str("url", url).Msg("product image attached")
	return product, nil
}

func (s *ProductService) getByProductID(productID string) (*models.Product, error) {
	product, err := s.products.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
