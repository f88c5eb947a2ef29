package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// AdminPaymentHandler handles the admin payment oversight endpoints.
type AdminPaymentHandler struct {
	payments *service.PaymentService
}

// NewAdminPaymentHandler constructs an AdminPaymentHandler.
func NewAdminPaymentHandler(payments *service.PaymentService) *AdminPaymentHandler {
	return &AdminPaymentHandler{payments: payments}
}

// RefundRequest is the body of POST /v1/admin/payments/:paymentId/refund.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// ListPayments handles GET /v1/admin/payments?status=...
func (h *AdminPaymentHandler) ListPayments(c *gin.Context) {
	status := models.PaymentStatus(c.Query("status"))
	page, limit := pagination(c)

	payments, total, err := h.payments.List(status, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Payments retrieved", payments, page, limit, total)
}

// GetStats handles GET /v1/admin/payments/stats
func (h *AdminPaymentHandler) GetStats(c *gin.Context) {
	stats, err := h.payments.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Payment statistics retrieved", stats)
}

// RefundPayment handles POST /v1/admin/payments/:paymentId/refund
func (h *AdminPaymentHandler) RefundPayment(c *gin.Context) {
	var req RefundRequest
	_ = c.ShouldBindJSON(&req)

	payment, err := h.payments.Refund(c.Request.Context(), c.Param("paymentId"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Payment refunded", payment)
}
