package generation_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/interview-prep-api/internal/generation"
)

// recordingSleep captures requested backoff delays without waiting.
type recordingSleep struct {
	delays []time.Duration
}

func (s *recordingSleep) Sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func testPolicy(sleep generation.SleepFunc) generation.RetryPolicy {
	p := generation.DefaultRetryPolicy()
	p.Jitter = false
	p.Sleep = sleep
	return p
}

func TestRetryPolicyDelaySchedule(t *testing.T) {
	t.Parallel()

	p := generation.DefaultRetryPolicy()
	p.Jitter = false

	// floor * 2^(n-1), clamped to the cap.
	assert.Equal(t, 4*time.Second, p.Delay(1))
	assert.Equal(t, 8*time.Second, p.Delay(2))
	assert.Equal(t, 10*time.Second, p.Delay(3), "third delay clamps to the cap")
}

func TestRetryPolicyDelayJitterBounds(t *testing.T) {
	t.Parallel()

	p := generation.DefaultRetryPolicy()

	for attempt := 1; attempt <= 3; attempt++ {
		for i := 0; i < 100; i++ {
			d := p.Delay(attempt)
			assert.GreaterOrEqual(t, d, generation.DefaultBackoffFloor)
			assert.LessOrEqual(t, d, generation.DefaultBackoffCap)
		}
	}
}

func TestRetryPolicyRecoversAfterTransientFailures(t *testing.T) {
	t.Parallel()

	sleep := &recordingSleep{}
	p := testPolicy(sleep.Sleep)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("%w: connection reset", generation.ErrServiceUnavailable)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, sleep.delays, 2, "exactly 2 inter-attempt delays expected")
	for _, d := range sleep.delays {
		assert.GreaterOrEqual(t, d, 4*time.Second)
		assert.LessOrEqual(t, d, 10*time.Second)
	}
}

func TestRetryPolicyExhaustsAttempts(t *testing.T) {
	t.Parallel()

	sleep := &recordingSleep{}
	p := testPolicy(sleep.Sleep)

	calls := 0
	failure := fmt.Errorf("%w: 503", generation.ErrServiceInternal)
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return failure
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrServiceInternal)
	assert.Equal(t, 3, calls, "no 4th attempt after exhaustion")
	assert.Len(t, sleep.delays, 2)
}

func TestRetryPolicyDoesNotRetryPermanentErrors(t *testing.T) {
	t.Parallel()

	sleep := &recordingSleep{}
	p := testPolicy(sleep.Sleep)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("%w: safety", generation.ErrContentBlocked)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleep.delays)
}

func TestRetryPolicyCancellationDuringBackoff(t *testing.T) {
	t.Parallel()

	p := testPolicy(func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	})

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return generation.ErrTimeout
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "cancellation during backoff must stop further attempts")
}

// One invoker, and therefore one policy, serves every request. Jittered
// delays must be safe to compute from concurrent goroutines.
func TestRetryPolicySharedAcrossGoroutines(t *testing.T) {
	t.Parallel()

	p := generation.DefaultRetryPolicy()
	p.Sleep = func(ctx context.Context, d time.Duration) error { return nil }

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			calls := 0
			err := p.Do(context.Background(), func(ctx context.Context) error {
				calls++
				if calls < 3 {
					return generation.ErrServiceUnavailable
				}
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	assert.True(t, generation.IsTransient(generation.ErrServiceUnavailable))
	assert.True(t, generation.IsTransient(generation.ErrTimeout))
	assert.True(t, generation.IsTransient(fmt.Errorf("wrapped: %w", generation.ErrServiceInternal)))
	assert.False(t, generation.IsTransient(generation.ErrContentBlocked))
	assert.False(t, generation.IsTransient(errors.New("unclassified")))
}
