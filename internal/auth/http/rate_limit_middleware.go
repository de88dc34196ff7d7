package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/t-lanigan/coffee-shop/internal/errors"
	"github.com/t-lanigan/coffee-shop/internal/httputil"
)

const (
	rateLimiterCleanupInterval = 5 * time.Minute
	rateLimiterIdleTimeout     = time.Hour
)

// rateLimiterStore holds per-subject rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimitMiddleware enforces per-subject rate limiting on authorized requests.
//
// MUST be used after RequirePermission (requires verified claims in context). Uses the
// token bucket algorithm via golang.org/x/time/rate; each token subject gets an
// independent limiter. The cleanup goroutine stops when ctx is cancelled.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, rateLimiterCleanupInterval)

	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			logger.Error("rate limit middleware: no verified claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		limiter := store.getLimiter(claims.Subject)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := retryAfterSeconds(reservation.Delay())
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("subject", claims.Subject),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Success: false,
				Error:   http.StatusTooManyRequests,
				Code:    "rate_limit_exceeded",
				Message: "too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// retryAfterSeconds rounds delay up to whole seconds, never below 1.
func retryAfterSeconds(delay time.Duration) int {
	return max(1, int(math.Ceil(delay.Seconds())))
}

// getLimiter retrieves or creates the rate limiter for a subject.
func (s *rateLimiterStore) getLimiter(subject string) *rate.Limiter {
	if val, ok := s.limiters.Load(subject); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: time.Now(),
	}
	actual, _ := s.limiters.LoadOrStore(subject, entry)
	return actual.(*rateLimiterEntry).limiter
}

// cleanupStale removes limiters that have not been used recently.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now().Add(-rateLimiterIdleTimeout))
		}
	}
}

func (s *rateLimiterStore) evictIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		idle := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if idle {
			s.limiters.Delete(key)
		}
		return true
	})
}
