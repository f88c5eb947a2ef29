package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
)

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "mp_whsec_test"
	dataID := "12345678"
	requestID := "req-abc"
	ts := "1699000000"

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	sig := hex.EncodeToString(mac.Sum(nil))

	header := fmt.Sprintf("ts=%s,v1=%s", ts, sig)
	if !VerifyWebhookSignature(header, requestID, dataID, secret) {
		t.Fatal("expected valid signature to verify")
	}
	if VerifyWebhookSignature(header, requestID, "other-id", secret) {
		t.Fatal("signature verified for wrong data id")
	}
	if VerifyWebhookSignature(header, requestID, dataID, "wrong-secret") {
		t.Fatal("signature verified with wrong secret")
	}
	if VerifyWebhookSignature("garbage", requestID, dataID, secret) {
		t.Fatal("malformed header verified")
	}
}
