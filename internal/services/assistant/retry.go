// File: internal/services/assistant/retry.go
package assistant

import (
	"context"
	"time"
)

// retryWithDelay runs fn up to maxRetries+1 times, sleeping delay between
// attempts. Context cancellation stops the loop immediately.
func retryWithDelay(ctx context.Context, maxRetries int, delay time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return lastErr
}
