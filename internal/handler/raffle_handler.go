package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// RaffleHandler handles the public raffle endpoints.
type RaffleHandler struct {
	raffles *service.RaffleService
}

// NewRaffleHandler constructs a RaffleHandler.
func NewRaffleHandler(raffles *service.RaffleService) *RaffleHandler {
	return &RaffleHandler{raffles: raffles}
}

// ListRaffles handles GET /v1/raffles
func (h *RaffleHandler) ListRaffles(c *gin.Context) {
	page, limit := pagination(c)
	raffles, total, err := h.raffles.ListActive(page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Raffles retrieved", raffles, page, limit, total)
}

// GetRaffle handles GET /v1/raffles/:raffleId
func (h *RaffleHandler) GetRaffle(c *gin.Context) {
	detail, err := h.raffles.Get(c.Param("raffleId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Raffle retrieved", detail)
}
