package fetch

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter bounds the request rate against the source site.
type RateLimiter interface {
	// Wait blocks until the rate limit allows another request.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context) error
}

// Ensure Limiter implements RateLimiter.
var _ RateLimiter = (*Limiter)(nil)

// Limiter implements RateLimiter with a token bucket. All shelf
// requests go to a single host, so one bucket with a burst of 1 is
// enough to keep the crawl polite.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second.
func NewLimiter(rps float64) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until the rate limit allows a request.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
