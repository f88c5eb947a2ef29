package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CheckoutSession represents a cached gateway checkout session for a pending
// payment. Re-entering checkout within the TTL reuses the same session
// instead of creating a new one at the gateway.
type CheckoutSession struct {
	PaymentID   string    `json:"paymentId"`
	Method      string    `json:"method"`
	SessionID   string    `json:"sessionId"`
	CheckoutURL string    `json:"checkoutUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CachedAt    time.Time `json:"cachedAt"`
}

// CheckoutCache provides checkout session caching operations.
type CheckoutCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCheckoutCache creates a new CheckoutCache.
func NewCheckoutCache(redis *RedisClient, ttl time.Duration) *CheckoutCache {
	return &CheckoutCache{
		redis: redis,
		ttl:   ttl,
	}
}

// key returns the Redis key for a payment's checkout session.
func (c *CheckoutCache) key(paymentID, method string) string {
	return fmt.Sprintf("checkout:payment:%s:%s", paymentID, method)
}

// Set stores the checkout session under checkout:payment:{paymentId}:{method}.
// The TTL matches the gateway session validity so stale sessions age out.
func (c *CheckoutCache) Set(ctx context.Context, session *CheckoutSession) error {
	session.CachedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}

	ttl := c.ttl
	if !session.ExpiresAt.IsZero() {
		if until := time.Until(session.ExpiresAt); until > 0 && until < ttl {
			ttl = until
		}
	}
	return c.redis.Set(ctx, c.key(session.PaymentID, session.Method), string(data), ttl)
}

// Get retrieves the cached session for a payment and method. Returns
// redis.Nil via the underlying client when no session is cached.
func (c *CheckoutCache) Get(ctx context.Context, paymentID, method string) (*CheckoutSession, error) {
	raw, err := c.redis.Get(ctx, c.key(paymentID, method))
	if err != nil {
		return nil, err
	}
	var session CheckoutSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}
	return &session, nil
}

// Delete removes cached sessions for a payment across all gateways. Called
// once the payment reaches a terminal state.
func (c *CheckoutCache) Delete(ctx context.Context, paymentID string) error {
	keys := []string{
		c.key(paymentID, "stripe"),
		c.key(paymentID, "mercadopago"),
	}
	return c.redis.Delete(ctx, keys...)
}
