package mercadopago

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// BaseURL is the Mercado Pago API base URL.
	BaseURL = "https://api.mercadopago.com"
)

// Client is a minimal HTTP client for the Mercado Pago checkout API.
type Client struct {
	httpClient  *http.Client
	accessToken string
	baseURL     string
	debug       bool
}

// NewClient constructs a new Mercado Pago client with sane defaults.
func NewClient(accessToken string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		accessToken: accessToken,
		baseURL:     BaseURL,
		debug:       os.Getenv("ENV") == "development",
	}
}

// CreatePreference creates a hosted checkout preference.
func (c *Client) CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error) {
	var pref Preference
	if err := c.doJSON(ctx, http.MethodPost, "/checkout/preferences", req, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// GetPayment retrieves a payment by its gateway identifier.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error) {
	var info PaymentInfo
	if err := c.doJSON(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SearchPaymentByReference finds the newest payment carrying the given
// external reference, or nil when none exists yet.
func (c *Client) SearchPaymentByReference(ctx context.Context, externalReference string) (*PaymentInfo, error) {
	endpoint := "/v1/payments/search?sort=date_created&criteria=desc&external_reference=" + url.QueryEscape(externalReference)
	var results struct {
		Results []PaymentInfo `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &results); err != nil {
		return nil, err
	}
	if len(results.Results) == 0 {
		return nil, nil
	}
	return &results.Results[0], nil
}

// VerifyWebhookSignature validates the x-signature header posted with
// webhook notifications. The signed manifest is
// "id:{dataID};request-id:{requestID};ts:{ts};" per the Mercado Pago docs.
func VerifyWebhookSignature(xSignature, xRequestID, dataID, secret string) bool {
	var ts, v1 string
	for _, part := range strings.Split(xSignature, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, xRequestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(v1), []byte(expected))
}

// doJSON performs an HTTP request with a JSON body and decodes the JSON
// response into result.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			RawJSON("response", respBody).
			Msg("[MERCADOPAGO] Incoming response")
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("mercadopago error: %s", apiErr.Message)
		}
		return fmt.Errorf("mercadopago returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
