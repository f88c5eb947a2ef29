package service

import (
	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// Available returns the number of tickets still purchasable.
func Available(totalTickets, soldTickets int) int {
	return totalTickets - soldTickets
}

// ClampQuantity bounds a requested quantity to [1, available]. Callers use
// it to adjust user input; it never permits overshoot. When nothing is
// available the clamp degenerates to 0 and the purchase must be blocked.
func ClampQuantity(quantity, available int) int {
	if available <= 0 {
		return 0
	}
	if quantity < 1 {
		return 1
	}
	if quantity > available {
		return available
	}
	return quantity
}

// ValidateQuantity checks a submitted quantity against a raffle without
// adjusting it. Server-side submissions are rejected, not clamped: a
// quantity outside [1, available] never reaches the payment path.
func ValidateQuantity(quantity int, raffle *models.Raffle) error {
	available := raffle.AvailableTickets()
	if available <= 0 {
		return utils.ErrRaffleSoldOut
	}
	if raffle.Status != models.RaffleActive {
		return utils.ErrRaffleNotActive
	}
	if quantity < 1 || quantity > available {
		return utils.ErrInvalidQuantity
	}
	return nil
}
