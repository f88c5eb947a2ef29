package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// ShopHandler handles the public shop directory and the admin shop
// management endpoints.
type ShopHandler struct {
	shops *service.ShopService
}

// NewShopHandler constructs a ShopHandler.
func NewShopHandler(shops *service.ShopService) *ShopHandler {
	return &ShopHandler{shops: shops}
}

// RegisterShopRequest is the body of POST /v1/admin/shops.
type RegisterShopRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Description *string `json:"description"`
}

// SetVerificationRequest is the body of POST /v1/admin/shops/:shopId/verification.
type SetVerificationRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListDirectory handles GET /v1/shops
func (h *ShopHandler) ListDirectory(c *gin.Context) {
	page, limit := pagination(c)
	entries, total, err := h.shops.Directory(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Shops retrieved", entries, page, limit, int(total))
}

// GetDirectoryEntry handles GET /v1/shops/:shopId
func (h *ShopHandler) GetDirectoryEntry(c *gin.Context) {
	entry, err := h.shops.DirectoryEntry(c.Request.Context(), c.Param("shopId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Shop retrieved", entry)
}

// GetOwnShop handles GET /v1/shop/profile
func (h *ShopHandler) GetOwnShop(c *gin.Context) {
	shop := middleware.GetShop(c)
	if shop == nil {
		utils.Error(c, 401, "INVALID_SHOP", "Unauthorized")
		return
	}
	utils.Success(c, 200, "Shop retrieved", shop)
}

// RegisterShop handles POST /v1/admin/shops
func (h *ShopHandler) RegisterShop(c *gin.Context) {
	var req RegisterShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "name and email are required")
		return
	}

	shop, apiKey, err := h.shops.Register(req.Name, req.Email, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// The key is only returned here and on rotation.
	utils.Success(c, 201, "Shop registered", gin.H{
		"shop":   shop,
		"apiKey": apiKey,
	})
}

// ListShops handles GET /v1/admin/shops
func (h *ShopHandler) ListShops(c *gin.Context) {
	page, limit := pagination(c)
	shops, total, err := h.shops.List(page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Shops retrieved", shops, page, limit, total)
}

// SetVerification handles POST /v1/admin/shops/:shopId/verification
func (h *ShopHandler) SetVerification(c *gin.Context) {
	var req SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "status is required")
		return
	}

	status := models.VerificationStatus(req.Status)
	switch status {
	case models.VerificationUnverified, models.VerificationPending, models.VerificationVerified, models.VerificationRejected:
	default:
		utils.Error(c, 400, "INVALID_STATUS", "Unknown verification status")
		return
	}

	shop, err := h.shops.SetVerification(c.Request.Context(), c.Param("shopId"), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Verification updated", shop)
}

// RotateShopKey handles POST /v1/admin/shops/:shopId/rotate-key
func (h *ShopHandler) RotateShopKey(c *gin.Context) {
	apiKey, err := h.shops.RotateKey(c.Param("shopId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "API key rotated", gin.H{"apiKey": apiKey})
}
