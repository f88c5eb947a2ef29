package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/repository"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// responseDeadline is how long a shop has to answer before the complaint is
// flagged overdue to reviewers.
const responseDeadline = 7 * 24 * time.Hour

// ComplaintService owns the dispute workflow.
type ComplaintService struct {
	complaints *repository.ComplaintRepository
}

func NewComplaintService(complaints *repository.ComplaintRepository) *ComplaintService {
	return &ComplaintService{complaints: complaints}
}

// CreateComplaintInput carries the user-submitted grievance.
type CreateComplaintInput struct {
	Type        models.ComplaintType
	Subject     string
	Description string
	ShopRef     *string
	RaffleRef   *string
	PaymentRef  *string
}

// Create files a complaint for a user.
func (s *ComplaintService) Create(userID int, in CreateComplaintInput) (*models.Complaint, error) {
	if !models.ValidComplaintType(in.Type) {
		return nil, utils.ErrInvalidComplaintType
	}

	now := time.Now()
	complaint := &models.Complaint{
		ComplaintID:      uuid.New().String(),
		UserID:           userID,
		ShopRef:          in.ShopRef,
		RaffleRef:        in.RaffleRef,
		PaymentRef:       in.PaymentRef,
		Type:             in.Type,
		Subject:          in.Subject,
		Description:      in.Description,
		Status:           models.ComplaintPending,
		ResponseDeadline: now.Add(responseDeadline),
	}
	if err := s.complaints.Create(complaint); err != nil {
		return nil, err
	}

	log.Info().
		Str("complaint_id", complaint.ComplaintID).
		Str("type", string(in.Type)).
		Msg("complaint filed")

	return complaint, nil
}

// Get returns a complaint scoped to its owner; admins see everything.
func (s *ComplaintService) Get(complaintID string, userID int, isAdmin bool) (*models.Complaint, error) {
	complaint, err := s.getByComplaintID(complaintID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && complaint.UserID != userID {
		return nil, utils.ErrComplaintNotFound
	}
	return complaint, nil
}

// ListByUser returns a user's complaints, newest first.
func (s *ComplaintService) ListByUser(userID, page, limit int) ([]models.Complaint, int, error) {
	return s.complaints.ListByUser(userID, page, limit)
}

// ListByStatus returns complaints in a status for the admin queue.
func (s *ComplaintService) ListByStatus(status models.ComplaintStatus, page, limit int) ([]models.Complaint, int, error) {
	return s.complaints.ListByStatus(status, page, limit)
}

// CancelByUser lets the filing user withdraw a complaint that has not been
// decided yet.
func (s *ComplaintService) CancelByUser(complaintID string, userID int) (*models.Complaint, error) {
	complaint, err := s.Get(complaintID, userID, false)
	if err != nil {
		return nil, err
	}
	return s.apply(complaint, models.ComplaintCancelled, nil)
}

// Review moves a pending complaint into active review. Admin only.
func (s *ComplaintService) Review(complaintID string) (*models.Complaint, error) {
	complaint, err := s.getByComplaintID(complaintID)
	if err != nil {
		return nil, err
	}
	return s.apply(complaint, models.ComplaintInReview, nil)
}

// Resolve closes a reviewed complaint in the user's favor. Admin only.
func (s *ComplaintService) Resolve(complaintID, response string) (*models.Complaint, error) {
	return s.decide(complaintID, models.ComplaintResolved, response)
}

// Reject closes a reviewed complaint without remedy. Admin only.
func (s *ComplaintService) Reject(complaintID, response string) (*models.Complaint, error) {
	return s.decide(complaintID, models.ComplaintRejected, response)
}

func (s *ComplaintService) decide(complaintID string, target models.ComplaintStatus, response string) (*models.Complaint, error) {
	complaint, err := s.getByComplaintID(complaintID)
	if err != nil {
		return nil, err
	}
	var resp *string
	if response != "" {
		resp = &response
	}
	return s.apply(complaint, target, resp)
}

func (s *ComplaintService) apply(complaint *models.Complaint, target models.ComplaintStatus, response *string) (*models.Complaint, error) {
	if !models.CanTransitionComplaint(complaint.Status, target) {
		return nil, utils.ErrInvalidComplaintStatus
	}
	if err := s.complaints.UpdateStatus(complaint.ID, target, response); err != nil {
		return nil, err
	}
	complaint.Status = target
	if response != nil {
		complaint.Response = response
	}

	log.Info().
		Str("complaint_id", complaint.ComplaintID).
		Str("status", string(target)).
		Msg("complaint status changed")

	return complaint, nil
}

func (s *ComplaintService) getByComplaintID(complaintID string) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByComplaintID(complaintID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrComplaintNotFound
		}
		return nil, err
	}
	return complaint, nil
}
