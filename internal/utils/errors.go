package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken           = errors.New("INVALID_TOKEN")
	ErrInvalidShop            = errors.New("INVALID_SHOP")
	ErrInvalidCredentials     = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken             = errors.New("EMAIL_TAKEN")
	ErrRaffleNotFound         = errors.New("RAFFLE_NOT_FOUND")
	ErrRaffleNotActive        = errors.New("RAFFLE_NOT_ACTIVE")
	ErrRaffleSoldOut          = errors.New("RAFFLE_SOLD_OUT")
	ErrInvalidRaffleStatus    = errors.New("INVALID_RAFFLE_STATUS")
	ErrInvalidQuantity        = errors.New("INVALID_QUANTITY")
	ErrAmountMismatch         = errors.New("AMOUNT_MISMATCH")
	ErrPaymentNotFound        = errors.New("PAYMENT_NOT_FOUND")
	ErrInvalidPaymentStatus   = errors.New("INVALID_PAYMENT_STATUS")
	ErrMissingPaymentID       = errors.New("MISSING_PAYMENT_ID")
	ErrUnknownGateway         = errors.New("UNKNOWN_GATEWAY")
	ErrShopNotFound           = errors.New("SHOP_NOT_FOUND")
	ErrProductNotFound        = errors.New("PRODUCT_NOT_FOUND")
	ErrComplaintNotFound      = errors.New("COMPLAINT_NOT_FOUND")
	ErrInvalidComplaintStatus = errors.New("INVALID_COMPLAINT_STATUS")
	ErrInvalidComplaintType   = errors.New("INVALID_COMPLAINT_TYPE")
)
