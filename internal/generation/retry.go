package generation

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Default retry policy: 3 attempts total, exponential backoff with a 4s
// floor and a 10s cap between successive attempts.
const (
	DefaultMaxAttempts       = 3
	DefaultBackoffFloor      = 4 * time.Second
	DefaultBackoffCap        = 10 * time.Second
	DefaultBackoffMultiplier = 2.0
)

// SleepFunc waits for the given duration or until the context is
// cancelled, returning the context error in the latter case. Tests
// inject a recording implementation.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryPolicy is a reusable bounded-retry policy: attempt budget, backoff
// schedule, and a predicate deciding which errors are worth retrying.
type RetryPolicy struct {
	MaxAttempts int
	Floor       time.Duration
	Cap         time.Duration
	Multiplier  float64

	// Jitter randomizes each delay within [Floor, Cap]. The floor and
	// cap hold regardless.
	Jitter bool

	// Retryable classifies errors; nil defaults to IsTransient.
	Retryable func(error) bool

	// Sleep is the wait implementation; nil defaults to a cancellable
	// timer wait.
	Sleep SleepFunc
}

// DefaultRetryPolicy returns the policy used for completion calls.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Floor:       DefaultBackoffFloor,
		Cap:         DefaultBackoffCap,
		Multiplier:  DefaultBackoffMultiplier,
		Jitter:      true,
		Retryable:   IsTransient,
		Sleep:       defaultSleep,
	}
}

// Delay computes the backoff before attempt n+1, given that attempt n
// (1-based) just failed. The schedule is floor * multiplier^(n-1),
// clamped to [floor, cap]; jitter perturbs within the same bounds.
func (p *RetryPolicy) Delay(attempt int) time.Duration {
	base := float64(p.Floor) * math.Pow(p.Multiplier, float64(attempt-1))
	d := time.Duration(base)

	if p.Jitter {
		// Perturb by up to +25%, then clamp. The top-level rand source is
		// safe for concurrent use; one policy is shared by all requests.
		d = time.Duration(base * (1 + rand.Float64()*0.25))
	}

	if d < p.Floor {
		d = p.Floor
	}
	if d > p.Cap {
		d = p.Cap
	}
	return d
}

// Do runs op under the policy. The first nil error wins; non-retryable
// errors and attempt exhaustion are terminal. Backoff sleeps are
// cancellable through ctx.
func (p *RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == p.MaxAttempts {
			break
		}

		if err := sleep(ctx, p.Delay(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}
