package retry

import (
	"context"
	"math"
	"time"
)

// Policy retries an operation with exponential backoff. Only transient
// categories (network, rate limit) are retried; auth/configuration failures
// fail immediately. The backoff sleep blocks the calling goroutine only.
type Policy struct {
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPolicy creates a Policy, filling zero fields with sane values.
func NewPolicy(maxRetries int, baseDelay, maxDelay time.Duration, multiplier float64) *Policy {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if maxDelay <= 0 {
		maxDelay = 10 * time.Second
	}
	if multiplier <= 1 {
		multiplier = 2
	}
	return &Policy{
		MaxRetries:        maxRetries,
		BaseDelay:         baseDelay,
		MaxDelay:          maxDelay,
		BackoffMultiplier: multiplier,
		sleep:             sleepCtx,
	}
}

// Do runs op up to MaxRetries times. It returns nil on the first success,
// the last error once retries are exhausted, and stops early on a
// non-retriable category or a cancelled context.
func (p *Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < p.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := p.sleep(ctx, p.Delay(attempt-1)); err != nil {
				return err
			}
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !Classify(err).Retriable() {
			return err
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}

	return lastErr
}

// Delay returns the backoff delay after the given zero-based attempt:
// min(base * multiplier^attempt, max).
func (p *Policy) Delay(attempt int) time.Duration {
	d := time.Duration(float64(p.BaseDelay) * math.Pow(p.BackoffMultiplier, float64(attempt)))
	if d > p.MaxDelay || d <= 0 {
		return p.MaxDelay
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
