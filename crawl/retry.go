package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/phylotext"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFunc is called before each retry with the 2-based attempt number and
// the error of the previous attempt.
type RetryFunc func(attempt int, err error)

// Retry calls fn until it succeeds, once more per delay. Errors coded
// ENOTFOUND or EINVALID are permanent and returned without retrying.
func Retry[T any](ctx context.Context, delays []time.Duration, fn func(context.Context) (T, error), onRetry RetryFunc) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == len(delays) || permanent(err) {
			break
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return zero, lastErr
}

func permanent(err error) bool {
	switch phylotext.ErrorCode(err) {
	case phylotext.ENOTFOUND, phylotext.EINVALID:
		return true
	}
	return false
}
