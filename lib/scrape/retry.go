package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const DefaultMaxAttempts = 5

// Retrier re-runs a failed operation with a cubic backoff: the sleep
// before retry n is n³ seconds (1, 8, 27, 64...). Operations must be
// restartable from scratch. One attempt is in flight at a time.
type Retrier struct {
	// MaxAttempts defaults to DefaultMaxAttempts when <= 0.
	MaxAttempts int
	// Sleep overrides the delay for tests. When nil, delays honor
	// context cancellation.
	Sleep func(d time.Duration)
}

// Do runs fn until it succeeds or MaxAttempts is exhausted, then
// returns the final failure wrapped with the operation identity.
func (r Retrier) Do(ctx context.Context, op string, fn func() error) error {
	max := r.MaxAttempts
	if max <= 0 {
		max = DefaultMaxAttempts
	}

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= max {
			slog.ErrorContext(ctx, "giving up",
				"op", op, "attempts", attempt, "err", err)
			return fmt.Errorf("%s failed after %d attempts: %w", op, attempt, err)
		}

		delay := time.Duration(attempt*attempt*attempt) * time.Second
		slog.WarnContext(ctx, "will retry",
			"op", op, "attempt", attempt, "sleep", delay, "err", err)
		if err := r.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (r Retrier) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		r.Sleep(d)
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
