package service

import (
	"context"
	"net/http"
	"time"

	authDomain "github.com/t-lanigan/coffee-shop/internal/auth/domain"
	"github.com/t-lanigan/coffee-shop/internal/metrics"
)

// tokenAuthorizerWithMetrics decorates TokenAuthorizer with metrics instrumentation.
type tokenAuthorizerWithMetrics struct {
	next    TokenAuthorizer
	metrics metrics.BusinessMetrics
}

// NewTokenAuthorizerWithMetrics wraps a TokenAuthorizer with metrics recording.
func NewTokenAuthorizerWithMetrics(authorizer TokenAuthorizer, m metrics.BusinessMetrics) TokenAuthorizer {
	return &tokenAuthorizerWithMetrics{
		next:    authorizer,
		metrics: m,
	}
}

// Authorize records metrics for token authorization.
func (t *tokenAuthorizerWithMetrics) Authorize(
	ctx context.Context,
	headers http.Header,
	permission string,
) (*authDomain.Claims, error) {
	start := time.Now()
	claims, err := t.next.Authorize(ctx, headers, permission)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "authorize", status)
	t.metrics.RecordDuration(ctx, "auth", "authorize", time.Since(start), status)

	return claims, err
}
