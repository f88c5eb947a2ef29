package models

import "testing"

func TestCanTransitionRaffle(t *testing.T) {
	if !CanTransitionRaffle(RaffleDraft, RafflePendingApproval) {
		t.Fatal("expected draft -> pending_approval to be allowed")
	}
	if !CanTransitionRaffle(RafflePendingApproval, RaffleActive) {
		t.Fatal("expected pending_approval -> active to be allowed")
	}
	if !CanTransitionRaffle(RafflePendingApproval, RaffleRejected) {
		t.Fatal("expected pending_approval -> rejected to be allowed")
	}
	if !CanTransitionRaffle(RaffleActive, RafflePaused) {
		t.Fatal("expected active -> paused to be allowed")
	}
	if !CanTransitionRaffle(RafflePaused, RaffleActive) {
		t.Fatal("expected paused -> active to be allowed")
	}
	if !CanTransitionRaffle(RaffleActive, RaffleSoldOut) {
		t.Fatal("expected active -> sold_out to be allowed")
	}
	if !CanTransitionRaffle(RaffleSoldOut, RaffleFinished) {
		t.Fatal("expected sold_out -> finished to be allowed")
	}
	if CanTransitionRaffle(RaffleDraft, RaffleActive) {
		t.Fatal("unexpected draft -> active allowed")
	}
	if CanTransitionRaffle(RaffleFinished, RaffleActive) {
		t.Fatal("unexpected finished -> active allowed")
	}
	if CanTransitionRaffle(RaffleRejected, RaffleActive) {
		t.Fatal("unexpected rejected -> active allowed")
	}
}

func TestRafflePurchasable(t *testing.T) {
	cases := []struct {
		name   string
		raffle Raffle
		want   bool
	}{
		{"active with availability", Raffle{Status: RaffleActive, TotalTickets: 100, SoldTickets: 97}, true},
		{"active sold out counters", Raffle{Status: RaffleActive, TotalTickets: 100, SoldTickets: 100}, false},
		{"paused", Raffle{Status: RafflePaused, TotalTickets: 100, SoldTickets: 0}, false},
		{"draft", Raffle{Status: RaffleDraft, TotalTickets: 100, SoldTickets: 0}, false},
		{"finished", Raffle{Status: RaffleFinished, TotalTickets: 100, SoldTickets: 40}, false},
	}
	for _, c := range cases {
		if got := c.raffle.Purchasable(); got != c.want {
			t.Errorf("%s: Purchasable() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRaffleAvailableTickets(t *testing.T) {
	r := Raffle{TotalTickets: 100, SoldTickets: 97}
	if got := r.AvailableTickets(); got != 3 {
		t.Fatalf("AvailableTickets() = %d, want 3", got)
	}
}
