package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/middleware"
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// ComplaintHandler handles the dispute endpoints.
type ComplaintHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintHandler constructs a ComplaintHandler.
func NewComplaintHandler(complaints *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// CreateComplaintRequest is the body of POST /v1/complaints.
type CreateComplaintRequest struct {
	Type        string  `json:"type" binding:"required"`
	Subject     string  `json:"subject" binding:"required"`
	Description string  `json:"description" binding:"required"`
	ShopID      *string `json:"shopId"`
	RaffleID    *string `json:"raffleId"`
	PaymentID   *string `json:"paymentId"`
}

// DecideComplaintRequest carries the admin's written response.
type DecideComplaintRequest struct {
	Response string `json:"response"`
}

// CreateComplaint handles POST /v1/complaints
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "Invalid request body")
		return
	}

	complaint, err := h.complaints.Create(middleware.GetUserID(c), service.CreateComplaintInput{
		Type:        models.ComplaintType(req.Type),
		Subject:     req.Subject,
		Description: req.Description,
		ShopRef:     req.ShopID,
		RaffleRef:   req.RaffleID,
		PaymentRef:  req.PaymentID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 201, "Complaint filed", complaint)
}

// ListComplaints handles GET /v1/complaints
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	page, limit := pagination(c)
	complaints, total, err := h.complaints.ListByUser(middleware.GetUserID(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Complaints retrieved", complaints, page, limit, total)
}

// GetComplaint handles GET /v1/complaints/:complaintId
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	complaint, err := h.complaints.Get(c.Param("complaintId"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Complaint retrieved", complaint)
}

// CancelComplaint handles POST /v1/complaints/:complaintId/cancel
func (h *ComplaintHandler) CancelComplaint(c *gin.Context) {
	complaint, err := h.complaints.CancelByUser(c.Param("complaintId"), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Complaint cancelled", complaint)
}

// ListComplaintQueue handles GET /v1/admin/complaints?status=...
func (h *ComplaintHandler) ListComplaintQueue(c *gin.Context) {
	status := models.ComplaintStatus(c.DefaultQuery("status", string(models.ComplaintPending)))
	page, limit := pagination(c)
	complaints, total, err := h.complaints.ListByStatus(status, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Complaints retrieved", complaints, page, limit, total)
}

// ReviewComplaint handles POST /v1/admin/complaints/:complaintId/review
func (h *ComplaintHandler) ReviewComplaint(c *gin.Context) {
	complaint, err := h.complaints.Review(c.Param("complaintId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Complaint under review", complaint)
}

// ResolveComplaint handles POST /v1/admin/complaints/:complaintId/resolve
func (h *ComplaintHandler) ResolveComplaint(c *gin.Context) {
	var req DecideComplaintRequest
	_ = c.ShouldBindJSON(&req)

	complaint, err := h.complaints.Resolve(c.Param("complaintId"), req.Response)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Complaint resolved", complaint)
}

// RejectComplaint handles POST /v1/admin/complaints/:complaintId/reject
func (h *ComplaintHandler) RejectComplaint(c *gin.Context) {
	var req DecideComplaintRequest
	_ = c.ShouldBindJSON(&req)

	complaint, err := h.complaints.Reject(c.Param("complaintId"), req.Response)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, 200, "Complaint rejected", complaint)
}
