package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// paymentService is the slice of the payment service the user-facing
// endpoints need.
type paymentService interface {
	Create(ctx context.Context, userID int, raffleID string, quantity int, clientAmount string) (*models.Payment, error)
	Confirm(ctx context.Context, paymentID, method, externalTransactionID string) (*models.Payment, error)
	Fail(ctx context.Context, paymentID, reason string) (*models.Payment, error)
	Get(paymentID string, userID int, isAdmin bool) (*models.Payment, error)
	Tickets(paymentID string, userID int, isAdmin bool) ([]models.Ticket, error)
	ListByUser(userID, page, limit int) ([]models.Payment, int, error)
}

// PaymentHandler handles the user-facing payment endpoints.
type PaymentHandler struct {
	payments paymentService
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(payments paymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreatePaymentRequest is the body of POST /v1/payments. The amount is
// optional; when present it must match the server-computed total exactly.
type CreatePaymentRequest struct {
	RaffleID string `json:"raffleId" binding:"required"`
	Quantity int    `json:"ticketQuantity" binding:"required"`
	Amount   string `json:"amount"`
}

// ConfirmPaymentRequest is the body of POST /v1/payments/confirm.
type ConfirmPaymentRequest struct {
	PaymentID             string `json:"paymentId" binding:"required"`
	PaymentMethod         string `json:"paymentMethod"`
	ExternalTransactionID string `json:"externalTransactionId"`
}

// FailPaymentRequest is the body of POST /v1/payments/:paymentId/fail.
type FailPaymentRequest struct {
	Reason string `json:"failureReason"`
}

// CreatePayment handles POST /v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}

	userID := middleware.GetUserID(c)
	payment, err := h.payments.Create(c.Request.Context(), userID, req.RaffleID, req.Quantity, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 201, "Payment created", payment)
}

// ConfirmPayment handles POST /v1/payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_PAYMENT_ID", "paymentId is required")
		return
	}

	// Owner check before the transition: another user's payment id reads
	// as not-found, exactly like GET.
	if _, err := h.payments.Get(req.PaymentID, middleware.GetUserID(c), middleware.IsAdmin(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	payment, err := h.payments.Confirm(c.Request.Context(), req.PaymentID, req.PaymentMethod, req.ExternalTransactionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Payment confirmed", payment)
}

// FailPayment handles POST /v1/payments/:paymentId/fail
func (h *PaymentHandler) FailPayment(c *gin.Context) {
	var req FailPaymentRequest
	_ = c.ShouldBindJSON(&req) // reason is optional

	paymentID := c.Param("paymentId")
	if _, err := h.payments.Get(paymentID, middleware.GetUserID(c), middleware.IsAdmin(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	payment, err := h.payments.Fail(c.Request.Context(), paymentID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Payment marked as failed", payment)
}

// GetPayment handles GET /v1/payments/:paymentId
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.payments.Get(c.Param("paymentId"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Payment retrieved", payment)
}

// GetPaymentTickets handles GET /v1/payments/:paymentId/tickets
func (h *PaymentHandler) GetPaymentTickets(c *gin.Context) {
	tickets, err := h.payments.Tickets(c.Param("paymentId"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Tickets retrieved", tickets)
}

// ListPayments handles GET /v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, limit := pagination(c)
	payments, total, err := h.payments.ListByUser(middleware.GetUserID(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Payments retrieved", payments, page, limit, total)
}
