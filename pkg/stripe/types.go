package stripe

import "encoding/json"

// CheckoutSessionParams are the inputs for creating a hosted checkout session.
type CheckoutSessionParams struct {
	AmountCents       int64
	Currency          string
	ProductName       string
	Quantity          int
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
}

// CheckoutSession is the subset of the Stripe session object this service uses.
type CheckoutSession struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	Status            string `json:"status"`         // open | complete | expired
	PaymentStatus     string `json:"payment_status"` // paid | unpaid | no_payment_required
	PaymentIntent     string `json:"payment_intent"`
	ClientReferenceID string `json:"client_reference_id"`
	ExpiresAt         int64  `json:"expires_at"`
}

// Event is a webhook event envelope.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
	Created int64 `json:"created"`
}

// APIError is the error payload returned by the Stripe API.
type APIError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Session event types this service reacts to.
const (
	EventCheckoutSessionCompleted           = "checkout.session.completed"
	EventCheckoutSessionExpired             = "checkout.session.expired"
	EventCheckoutSessionAsyncPaymentFailed  = "checkout.session.async_payment_failed"
	EventCheckoutSessionAsyncPaymentSucceed = "checkout.session.async_payment_succeeded"
)
