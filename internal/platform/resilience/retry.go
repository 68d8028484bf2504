package resilience

import (
	"context"
	"errors"
	"time"
)

// ErrTransient marks failures worth retrying: wrap a cause with it (or
// return an error that Is() it) and Retry will try again with backoff.
var ErrTransient = errors.New("transient failure")

// IsTransient reports whether err is marked retryable.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// Retry runs fn up to maxRetries+1 times, sleeping a linearly growing
// backoff between attempts. Non-transient errors stop immediately;
// context cancellation wins over the backoff timer.
func Retry(ctx context.Context, maxRetries int, backoff time.Duration, fn func() error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoff <= 0 {
		backoff = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
