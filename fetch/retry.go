package fetch

import (
	"context"
	"time"

	"shelfread"
)

// RetryDelay is the wait before one retry attempt.
type RetryDelay = time.Duration

// DefaultRetryDelays returns the backoff delays between fetch attempts:
// 1s, 2s, 4s (so 4 attempts total).
func DefaultRetryDelays() []RetryDelay {
	return []RetryDelay{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches a URL with exponential backoff, honoring the
// harvester's rate limiter before every attempt. ENOTFOUND responses
// are not retried: a missing shelf stays missing.
func (h *Harvester) fetchWithRetry(ctx context.Context, url string) (string, error) {
	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if h.Limiter != nil {
			if err := h.Limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		html, err := h.Fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if shelfread.ErrorCode(err) == shelfread.ENOTFOUND {
			break
		}
		if attempt == len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}
