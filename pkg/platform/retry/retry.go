// Package retry expresses a bounded retry policy as a pure function of the
// attempt count, keeping wait decisions out of the code that performs the
// attempts.
package retry

import (
	"context"
	"time"
)

// Policy describes a bounded, fixed-delay retry schedule.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy matches the case-action availability gate: a small bounded
// number of re-checks with a fixed inter-attempt delay.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, Delay: 2 * time.Second}
}

// NextDelay returns the wait before the given attempt (1-based) and whether
// another attempt is allowed. Attempt 1 always runs immediately.
func (p Policy) NextDelay(attempt int) (time.Duration, bool) {
	if attempt < 1 || attempt > p.MaxAttempts {
		return 0, false
	}
	if attempt == 1 {
		return 0, true
	}
	return p.Delay, true
}

// Do runs fn until it succeeds, the policy is exhausted, or the context is
// cancelled. The last error is returned when all attempts fail.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; ; attempt++ {
		delay, ok := p.NextDelay(attempt)
		if !ok {
			return lastErr
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
	}
}
