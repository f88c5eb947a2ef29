package mercadopago

// PreferenceItem is one purchasable line in a checkout preference.
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// PreferenceRequest creates a hosted checkout preference.
type PreferenceRequest struct {
	Items             []PreferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	BackURLs          *BackURLs        `json:"back_urls,omitempty"`
	AutoReturn        string           `json:"auto_return,omitempty"`
}

// BackURLs are the redirect targets after checkout.
type BackURLs struct {
	Success string `json:"success"`
	Pending string `json:"pending"`
	Failure string `json:"failure"`
}

// Preference is the created checkout preference.
type Preference struct {
	ID                string `json:"id"`
	InitPoint         string `json:"init_point"`
	SandboxInitPoint  string `json:"sandbox_init_point"`
	ExternalReference string `json:"external_reference"`
	DateOfExpiration  string `json:"date_of_expiration"`
}

// PaymentInfo is the subset of the Mercado Pago payment object this service
// uses for reconciliation. Amounts are never compared against this value;
// only the status fields drive transitions.
type PaymentInfo struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`        // approved | rejected | cancelled | in_process | pending
	StatusDetail      string  `json:"status_detail"` // e.g. cc_rejected_insufficient_amount
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
}

// WebhookNotification is the body Mercado Pago posts on payment events.
type WebhookNotification struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`   // payment
	Action string `json:"action"` // payment.created | payment.updated
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Payment statuses reported by the API.
const (
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusInProcess = "in_process"
	StatusPending   = "pending"
)
