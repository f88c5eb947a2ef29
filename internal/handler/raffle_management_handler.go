package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// RaffleManagementHandler handles the shop and admin raffle lifecycle
// endpoints.
type RaffleManagementHandler struct {
	raffles *service.RaffleService
}

// NewRaffleManagementHandler constructs a RaffleManagementHandler.
func NewRaffleManagementHandler(raffles *service.RaffleService) *RaffleManagementHandler {
	return &RaffleManagementHandler{raffles: raffles}
}

// CreateRaffleRequest is the body of POST /v1/shop/raffles.
type CreateRaffleRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	Title        string `json:"title" binding:"required"`
	TotalTickets int    `json:"totalTickets" binding:"required"`
}

// CreateRaffle handles POST /v1/shop/raffles
func (h *RaffleManagementHandler) CreateRaffle(c *gin.Context) {
	var req CreateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}

	raffle, err := h.raffles.Create(middleware.GetShopID(c), req.ProductID, req.Title, req.TotalTickets)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 201, "Raffle created", raffle)
}

// ListShopRaffles handles GET /v1/shop/raffles
func (h *RaffleManagementHandler) ListShopRaffles(c *gin.Context) {
	raffles, err := h.raffles.ListByShop(middleware.GetShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Raffles retrieved", raffles)
}

// GetShopRaffle handles GET /v1/shop/raffles/:raffleId
func (h *RaffleManagementHandler) GetShopRaffle(c *gin.Context) {
	detail, err := h.raffles.GetForShop(c.Param("raffleId"), middleware.GetShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Raffle retrieved", detail)
}

// SubmitRaffle handles POST /v1/shop/raffles/:raffleId/submit
func (h *RaffleManagementHandler) SubmitRaffle(c *gin.Context) {
	h.shopTransition(c, h.raffles.Submit, "Raffle submitted for approval")
}

// PauseRaffle handles POST /v1/shop/raffles/:raffleId/pause
func (h *RaffleManagementHandler) PauseRaffle(c *gin.Context) {
	h.shopTransition(c, h.raffles.Pause, "Raffle paused")
}

// ResumeRaffle handles POST /v1/shop/raffles/:raffleId/resume
func (h *RaffleManagementHandler) ResumeRaffle(c *gin.Context) {
	h.shopTransition(c, h.raffles.Resume, "Raffle resumed")
}

// FinishRaffle handles POST /v1/shop/raffles/:raffleId/finish
func (h *RaffleManagementHandler) FinishRaffle(c *gin.Context) {
	h.shopTransition(c, h.raffles.Finish, "Raffle finished")
}

// CancelRaffle handles POST /v1/shop/raffles/:raffleId/cancel
func (h *RaffleManagementHandler) CancelRaffle(c *gin.Context) {
	h.shopTransition(c, h.raffles.Cancel, "Raffle cancelled")
}

func (h *RaffleManagementHandler) shopTransition(c *gin.Context, op func(string, int) (*models.Raffle, error), message string) {
	raffle, err := op(c.Param("raffleId"), middleware.GetShopID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, message, raffle)
}

// ListPendingRaffles handles GET /v1/admin/raffles/pending
func (h *RaffleManagementHandler) ListPendingRaffles(c *gin.Context) {
	page, limit := pagination(c)
	raffles, total, err := h.raffles.ListPendingApproval(page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Pending raffles retrieved", raffles, page, limit, total)
}

// ApproveRaffle handles POST /v1/admin/raffles/:raffleId/approve
func (h *RaffleManagementHandler) ApproveRaffle(c *gin.Context) {
	raffle, err := h.raffles.Approve(c.Param("raffleId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Raffle approved", raffle)
}

// RejectRaffle handles POST /v1/admin/raffles/:raffleId/reject
func (h *RaffleManagementHandler) RejectRaffle(c *gin.Context) {
	raffle, err := h.raffles.Reject(c.Param("raffleId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Raffle rejected", raffle)
}
