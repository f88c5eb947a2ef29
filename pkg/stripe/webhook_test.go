package stripe

import (
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func signedHeader(t *testing.T, payload []byte, ts time.Time) string {
	t.Helper()
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), computeSignature(ts.Unix(), payload, testSecret))
}

func TestConstructEventValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	now := time.Now()

	event, err := constructEventAt(payload, signedHeader(t, payload, now), testSecret, now, DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != EventCheckoutSessionCompleted {
		t.Fatalf("event type = %q, want %q", event.Type, EventCheckoutSessionCompleted)
	}
	if event.ID != "evt_1" {
		t.Fatalf("event id = %q, want evt_1", event.ID)
	}
}

func TestConstructEventBadSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()
	header := fmt.Sprintf("t=%d,v1=deadbeef", now.Unix())

	if _, err := constructEventAt(payload, header, testSecret, now, DefaultTolerance); err != ErrSignatureMismatch {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestConstructEventTamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()
	header := signedHeader(t, payload, now)

	tampered := []byte(`{"id":"evt_1","type":"checkout.session.expired"}`)
	if _, err := constructEventAt(tampered, header, testSecret, now, DefaultTolerance); err != ErrSignatureMismatch {
		t.Fatalf("expected ErrSignatureMismatch, got %v", err)
	}
}

func TestConstructEventStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	old := time.Now().Add(-10 * time.Minute)
	header := signedHeader(t, payload, old)

	if _, err := constructEventAt(payload, header, testSecret, time.Now(), DefaultTolerance); err != ErrTimestampTooOld {
		t.Fatalf("expected ErrTimestampTooOld, got %v", err)
	}
}

func TestConstructEventMalformedHeader(t *testing.T) {
	payload := []byte(`{}`)
	for _, header := range []string{"", "garbage", "t=notanumber,v1=ab"} {
		if _, err := constructEventAt(payload, header, testSecret, time.Now(), DefaultTolerance); err != ErrInvalidSignatureHeader {
			t.Errorf("header %q: expected ErrInvalidSignatureHeader, got %v", header, err)
		}
	}
}
