package models

import "testing"

func TestCanTransitionPayment(t *testing.T) {
	if !CanTransitionPayment(PaymentPending, PaymentCompleted) {
		t.Fatal("expected pending -> completed to be allowed")
	}
	if !CanTransitionPayment(PaymentPending, PaymentFailed) {
		t.Fatal("expected pending -> failed to be allowed")
	}
	if !CanTransitionPayment(PaymentPending, PaymentCancelled) {
		t.Fatal("expected pending -> cancelled to be allowed")
	}
	if !CanTransitionPayment(PaymentCompleted, PaymentRefunded) {
		t.Fatal("expected completed -> refunded to be allowed")
	}
	if CanTransitionPayment(PaymentFailed, PaymentCompleted) {
		t.Fatal("unexpected failed -> completed allowed")
	}
	if CanTransitionPayment(PaymentCompleted, PaymentFailed) {
		t.Fatal("unexpected completed -> failed allowed")
	}
	if CanTransitionPayment(PaymentRefunded, PaymentCompleted) {
		t.Fatal("unexpected refunded -> completed allowed")
	}
	if CanTransitionPayment(PaymentCancelled, PaymentCompleted) {
		t.Fatal("unexpected cancelled -> completed allowed")
	}
}

func TestPaymentStatusIsTerminal(t *testing.T) {
	if PaymentPending.IsTerminal() {
		t.Fatal("pending must not be terminal")
	}
	for _, s := range []PaymentStatus{PaymentCompleted, PaymentFailed, PaymentRefunded, PaymentCancelled} {
		if !s.IsTerminal() {
			t.Fatalf("%s must be terminal", s)
		}
	}
}
