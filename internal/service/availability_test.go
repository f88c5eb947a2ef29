package service

import (
	"testing"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/utils"
)

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		available int
		want      int
	}{
		{"within range", 2, 3, 2},
		{"overshoot clamps to available", 5, 3, 3},
		{"zero clamps to one", 0, 3, 1},
		{"negative clamps to one", -4, 3, 1},
		{"nothing available", 5, 0, 0},
		{"negative availability", 1, -2, 0},
		{"exact availability", 3, 3, 3},
	}
	for _, c := range cases {
		if got := ClampQuantity(c.quantity, c.available); got != c.want {
			t.Errorf("%s: ClampQuantity(%d, %d) = %d, want %d", c.name, c.quantity, c.available, got, c.want)
		}
	}
}

func TestClampQuantityNearlySoldOut(t *testing.T) {
	// 100 total, 97 sold: availability is 3 and a request for 5 clamps to 3.
	available := Available(100, 97)
	if available != 3 {
		t.Fatalf("Available(100, 97) = %d, want 3", available)
	}
	if got := ClampQuantity(5, available); got != 3 {
		t.Fatalf("ClampQuantity(5, 3) = %d, want 3", got)
	}
}

func TestValidateQuantity(t *testing.T) {
	active := &models.Raffle{Status: models.RaffleActive, TotalTickets: 100, SoldTickets: 97}

	if err := ValidateQuantity(3, active); err != nil {
		t.Fatalf("unexpected error for quantity 3: %v", err)
	}
	if err := ValidateQuantity(4, active); err != utils.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity for quantity 4, got %v", err)
	}
	if err := ValidateQuantity(0, active); err != utils.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity for quantity 0, got %v", err)
	}

	soldOut := &models.Raffle{Status: models.RaffleActive, TotalTickets: 100, SoldTickets: 100}
	if err := ValidateQuantity(1, soldOut); err != utils.ErrRaffleSoldOut {
		t.Fatalf("expected ErrRaffleSoldOut, got %v", err)
	}

	paused := &models.Raffle{Status: models.RafflePaused, TotalTickets: 100, SoldTickets: 10}
	if err := ValidateQuantity(1, paused); err != utils.ErrRaffleNotActive {
		t.Fatalf("expected ErrRaffleNotActive, got %v", err)
	}

	// Sold-out counters win over a stale status flag.
	staleFlag := &models.Raffle{Status: models.RafflePaused, TotalTickets: 50, SoldTickets: 50}
	if err := ValidateQuantity(1, staleFlag); err != utils.ErrRaffleSoldOut {
		t.Fatalf("expected ErrRaffleSoldOut for stale flag, got %v", err)
	}
}
