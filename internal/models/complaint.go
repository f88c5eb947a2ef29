package models

import "time"

type ComplaintStatus string

const (
	ComplaintPending   ComplaintStatus = "pending"
	ComplaintInReview  ComplaintStatus = "in_review"
	ComplaintResolved  ComplaintStatus = "resolved"
	ComplaintRejected  ComplaintStatus = "rejected"
	ComplaintCancelled ComplaintStatus = "cancelled"
)

type ComplaintType string

const (
	ComplaintDeliveryIssue    ComplaintType = "delivery_issue"
	ComplaintPrizeNotReceived ComplaintType = "prize_not_received"
	ComplaintFraudSuspicion   ComplaintType = "fraud_suspicion"
	ComplaintRefundRequest    ComplaintType = "refund_request"
	ComplaintOther            ComplaintType = "other"
)

// complaintTransitions encodes the dispute lifecycle. A user may cancel a
// complaint until it is resolved or rejected.
var complaintTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintPending:  {ComplaintInReview, ComplaintCancelled},
	ComplaintInReview: {ComplaintResolved, ComplaintRejected, ComplaintCancelled},
}

// CanTransitionComplaint reports whether moving between complaint statuses
// is allowed.
func CanTransitionComplaint(from, to ComplaintStatus) bool {
	for _, s := range complaintTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidComplaintType reports whether t is one of the accepted grievance types.
func ValidComplaintType(t ComplaintType) bool {
	switch t {
	case ComplaintDeliveryIssue, ComplaintPrizeNotReceived, ComplaintFraudSuspicion, ComplaintRefundRequest, ComplaintOther:
		return true
	}
	return false
}

// Complaint ties a user, optionally a shop/raffle/payment, to a typed
// grievance. The response deadline is informational only.
type Complaint struct {
	ID               int             `db:"id" json:"-"`
	ComplaintID      string          `db:"complaint_id" json:"id"`
	UserID           int             `db:"user_id" json:"-"`
	ShopRef          *string         `db:"shop_ref" json:"shopId,omitempty"`
	RaffleRef        *string         `db:"raffle_ref" json:"raffleId,omitempty"`
	PaymentRef       *string         `db:"payment_ref" json:"paymentId,omitempty"`
	Type             ComplaintType   `db:"type" json:"type"`
	Subject          string          `db:"subject" json:"subject"`
	Description      string          `db:"description" json:"description"`
	Status           ComplaintStatus `db:"status" json:"status"`
	Response         *string         `db:"response" json:"response,omitempty"`
	ResponseDeadline time.Time       `db:"response_deadline" json:"responseDeadline"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `db:"updated_at" json:"-"`
}
