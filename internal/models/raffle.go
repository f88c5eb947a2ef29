package models

import "time"

type RaffleStatus string

const (
	RaffleDraft           RaffleStatus = "draft"
	RafflePendingApproval RaffleStatus = "pending_approval"
	RaffleActive          RaffleStatus = "active"
	RafflePaused          RaffleStatus = "paused"
	RaffleSoldOut         RaffleStatus = "sold_out"
	RaffleFinished        RaffleStatus = "finished"
	RaffleCancelled       RaffleStatus = "cancelled"
	RaffleRejected        RaffleStatus = "rejected"
)

// raffleTransitions encodes the raffle lifecycle. finished, cancelled and
// rejected are terminal.
var raffleTransitions = map[RaffleStatus][]RaffleStatus{
	RaffleDraft:           {RafflePendingApproval, RaffleCancelled},
	RafflePendingApproval: {RaffleActive, RaffleRejected, RaffleCancelled},
	RaffleActive:          {RafflePaused, RaffleSoldOut, RaffleFinished, RaffleCancelled},
	RafflePaused:          {RaffleActive, RaffleCancelled},
	RaffleSoldOut:         {RaffleFinished, RaffleCancelled},
}

// CanTransitionRaffle reports whether moving between raffle statuses is allowed.
func CanTransitionRaffle(from, to RaffleStatus) bool {
	for _, s := range raffleTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Raffle is a prize draw tied to one product, sold as a fixed number of
// numbered tickets.
type Raffle struct {
	ID              int          `db:"id" json:"-"`
	RaffleID        string       `db:"raffle_id" json:"id"`
	ShopID          int          `db:"shop_id" json:"-"`
	ProductID       int          `db:"product_id" json:"-"`
	Title           string       `db:"title" json:"title"`
	ProductValue    Money        `db:"product_value" json:"productValue"`
	TotalTickets    int          `db:"total_tickets" json:"totalTickets"`
	SoldTickets     int          `db:"sold_tickets" json:"soldTickets"`
	Status          RaffleStatus `db:"status" json:"status"`
	WinningTicketID *int         `db:"winning_ticket_id" json:"winningTicketId,omitempty"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time    `db:"updated_at" json:"-"`
}

// AvailableTickets returns the remaining ticket count.
func (r *Raffle) AvailableTickets() int {
	return r.TotalTickets - r.SoldTickets
}

// Purchasable reports whether new ticket purchases are permitted. A raffle
// with zero availability blocks purchases regardless of its status flag.
func (r *Raffle) Purchasable() bool {
	return r.Status == RaffleActive && r.AvailableTickets() > 0
}

// RaffleDetail is the public read model: a raffle plus nested product and
// shop summaries and the computed availability.
type RaffleDetail struct {
	Raffle
	AvailableTickets int             `json:"availableTickets"`
	Product          *ProductSummary `json:"product,omitempty"`
	Shop             *ShopSummary    `json:"shop,omitempty"`
}

// NewRaffleDetail assembles the read model from its parts.
func NewRaffleDetail(r *Raffle, p *ProductSummary, s *ShopSummary) *RaffleDetail {
	return &RaffleDetail{
		Raffle:           *r,
		AvailableTickets: r.AvailableTickets(),
		Product:          p,
		Shop:             s,
	}
}
