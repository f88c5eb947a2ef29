package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/cache"
	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// checkoutService is the slice of the checkout service this handler needs.
type checkoutService interface {
	Start(ctx context.Context, paymentID string, userID int, method string) (*cache.CheckoutSession, error)
	Outcome(ctx context.Context, paymentID string, userID int, isAdmin bool) (*service.CheckoutOutcome, error)
}

// CheckoutHandler drives hosted checkout sessions and outcome reads.
type CheckoutHandler struct {
	checkout checkoutService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(checkout checkoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// StartCheckoutRequest is the body of POST /v1/checkout.
type StartCheckoutRequest struct {
	PaymentID     string `json:"paymentId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// StartCheckout handles POST /v1/checkout
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var req StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "paymentId and paymentMethod are required")
		return
	}

	session, err := h.checkout.Start(c.Request.Context(), req.PaymentID, middleware.GetUserID(c), req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Checkout session ready", session)
}

// GetOutcome handles GET /v1/checkout/outcome?paymentId=...
func (h *CheckoutHandler) GetOutcome(c *gin.Context) {
	paymentID := c.Query("paymentId")
	if paymentID == "" {
		respondServiceError(c, utils.ErrMissingPaymentID)
		return
	}

	outcome, err := h.checkout.Outcome(c.Request.Context(), paymentID, middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Checkout outcome retrieved", outcome)
}
