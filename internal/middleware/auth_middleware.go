package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rifamarket/rifa_api/internal/models"
	"github.com/rifamarket/rifa_api/internal/service"
	"github.com/rifamarket/rifa_api/internal/utils"
)

// ShopAuthMiddleware authenticates shop management requests by API key.
type ShopAuthMiddleware struct {
	authService *service.AuthService
	rateLimiter *InvalidAuthRateLimiter
}

// NewShopAuthMiddleware constructs a new ShopAuthMiddleware.
func NewShopAuthMiddleware(authService *service.AuthService) *ShopAuthMiddleware {
	return &ShopAuthMiddleware{
		authService: authService,
		rateLimiter: NewInvalidAuthRateLimiter(),
	}
}

// Handle returns a Gin middleware function that enforces shop authentication.
func (m *ShopAuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.handleAuthError(c, "INVALID_TOKEN", "Missing or invalid authorization header")
			return
		}
		apiKey := strings.TrimPrefix(authHeader, "Bearer ")

		shop, err := m.authService.ValidateShopKey(apiKey)
		if err != nil || shop == nil {
			m.handleAuthError(c, "INVALID_SHOP", "Invalid shop API key")
			return
		}

		c.Set("shop", shop)
		c.Set("shop_id", shop.ID)
		c.Next()
	}
}

func (m *ShopAuthMiddleware) handleAuthError(c *gin.Context, code, message string) {
	// Apply rate limit for invalid auth attempts
	ip := c.ClientIP()
	if !m.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
		c.Abort()
		return
	}

	utils.Error(c, 401, code, message)
	c.Abort()
}

// GetShop returns the authenticated shop from context.
func GetShop(c *gin.Context) *models.Shop {
	shop, _ := c.Get("shop")
	if shop == nil {
		return nil
	}
	return shop.(*models.Shop)
}

// GetShopID returns the authenticated shop's internal id from context.
func GetShopID(c *gin.Context) int {
	id, _ := c.Get("shop_id")
	if id == nil {
		return 0
	}
	return id.(int)
}
