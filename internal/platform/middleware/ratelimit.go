package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Tier classifies routes by cost. Image and AI analysis routes are heavy,
// text analysis medium, everything else light.
type Tier string

const (
	TierHeavy  Tier = "heavy"
	TierMedium Tier = "medium"
	TierLight  Tier = "light"
)

// TierBudgets holds the per-minute request budget for each tier.
type TierBudgets struct {
	Heavy  int
	Medium int
	Light  int
}

// DefaultTierBudgets returns the default per-minute budgets.
func DefaultTierBudgets() TierBudgets {
	return TierBudgets{Heavy: 10, Medium: 20, Light: 30}
}

func (b TierBudgets) budget(t Tier) int {
	switch t {
	case TierHeavy:
		return b.Heavy
	case TierMedium:
		return b.Medium
	default:
		return b.Light
	}
}

// tokenBucket implements a token bucket rate limiter.
type tokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(perMinute int) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(perMinute),
		maxTokens:  float64(perMinute),
		refillRate: float64(perMinute) / 60,
		lastRefill: time.Now(),
	}
}

func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *tokenBucket) retryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refillRate <= 0 {
		return 1
	}
	return int((1-b.tokens)/b.refillRate) + 1
}

func (b *tokenBucket) remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tokens < 0 {
		return 0
	}
	return int(b.tokens)
}

// TieredLimiter holds per-client token buckets for each tier. Buckets are
// keyed by (tier, client IP) so a burst of heavy calls does not starve light
// ones.
type TieredLimiter struct {
	budgets TierBudgets
	buckets map[string]*tokenBucket
	mu      sync.RWMutex
}

// NewTieredLimiter creates a limiter with the given per-minute budgets.
func NewTieredLimiter(budgets TierBudgets) *TieredLimiter {
	return &TieredLimiter{
		budgets: budgets,
		buckets: make(map[string]*tokenBucket),
	}
}

func (l *TieredLimiter) getBucket(tier Tier, clientKey string) *tokenBucket {
	key := string(tier) + ":" + clientKey
	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return bucket
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Double-check after acquiring write lock
	if bucket, ok := l.buckets[key]; ok {
		return bucket
	}
	bucket = newTokenBucket(l.budgets.budget(tier))
	l.buckets[key] = bucket
	return bucket
}

// Limit returns a middleware enforcing the budget of the given tier for the
// route it wraps.
func (l *TieredLimiter) Limit(tier Tier) echo.MiddlewareFunc {
	limit := l.budgets.budget(tier)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bucket := l.getBucket(tier, c.RealIP())
			if !bucket.allow() {
				c.Response().Header().Set("Retry-After", strconv.Itoa(bucket.retryAfter()))
				c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests. Please wait a moment.")
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(bucket.remaining()))
			return next(c)
		}
	}
}
