package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/utils"
)

// respondServiceError translates service sentinel errors into the response
// envelope. Unknown errors become a 500 without leaking detail.
func respondServiceError(c *gin.Context, err error) {
	switch err {
	case utils.ErrRaffleNotFound:
		utils.Error(c, 404, "RAFFLE_NOT_FOUND", "Raffle not found")
	case utils.ErrRaffleNotActive:
		utils.Error(c, 409, "RAFFLE_NOT_ACTIVE", "Raffle is not open for ticket purchases")
	case utils.ErrRaffleSoldOut:
		utils.Error(c, 409, "RAFFLE_SOLD_OUT", "No tickets available for this raffle")
	case utils.ErrInvalidRaffleStatus:
		utils.Error(c, 409, "INVALID_RAFFLE_STATUS", "Raffle status does not allow this operation")
	case utils.ErrInvalidQuantity:
		utils.Error(c, 400, "INVALID_QUANTITY", "Requested ticket quantity is out of range")
	case utils.ErrAmountMismatch:
		utils.Error(c, 400, "AMOUNT_MISMATCH", "Submitted amount does not match the server-side total")
	case utils.ErrPaymentNotFound:
		utils.Error(c, 404, "PAYMENT_NOT_FOUND", "Payment not found")
	case utils.ErrInvalidPaymentStatus:
		utils.Error(c, 409, "INVALID_PAYMENT_STATUS", "Payment status does not allow this operation")
	case utils.ErrMissingPaymentID:
		utils.Error(c, 400, "MISSING_PAYMENT_ID", "paymentId is required")
	case utils.ErrUnknownGateway:
		utils.Error(c, 400, "UNKNOWN_GATEWAY", "Unsupported payment method")
	case utils.ErrShopNotFound:
		utils.Error(c, 404, "SHOP_NOT_FOUND", "Shop not found")
	case utils.ErrProductNotFound:
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case utils.ErrComplaintNotFound:
		utils.Error(c, 404, "COMPLAINT_NOT_FOUND", "Complaint not found")
	case utils.ErrInvalidComplaintStatus:
		utils.Error(c, 409, "INVALID_COMPLAINT_STATUS", "Complaint status does not allow this operation")
	case utils.ErrInvalidComplaintType:
		utils.Error(c, 400, "INVALID_COMPLAINT_TYPE", "Unknown complaint type")
	case utils.ErrEmailTaken:
		utils.Error(c, 409, "EMAIL_TAKEN", "An account with this email already exists")
	case utils.ErrInvalidCredentials:
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	case utils.ErrInvalidToken:
		utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
	case utils.ErrInvalidShop:
		utils.Error(c, 401, "INVALID_SHOP", "Invalid shop API key")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page = queryInt(c, "page", 1)
	limit = queryInt(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
