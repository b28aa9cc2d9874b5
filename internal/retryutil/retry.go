// Package retryutil retries best-effort background work, currently the
// periodic session snapshots.
package retryutil

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultAttempts = 3
	defaultDelay    = 2 * time.Second
)

// Do runs fn up to attempts times, sleeping delay between tries.
// Context cancellation stops the loop early; the last error wins.
func Do(ctx context.Context, logger *slog.Logger, name string, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if delay <= 0 {
		delay = defaultDelay
	}

	var last error
	for i := 1; i <= attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn(ctx)
		if last == nil {
			if i > 1 && logger != nil {
				logger.Info(name+"_retry_ok", "attempt", i)
			}
			return nil
		}
		if logger != nil {
			logger.Warn(name+"_attempt_failed", "attempt", i, "attempts", attempts, "error", last.Error())
		}
		if i == attempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return last
}
