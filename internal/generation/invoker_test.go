package generation_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/generation"
	"github.com/phrazzld/interview-prep-api/internal/ratelimit"
)

// stubClient scripts completion responses: it fails with err for failures
// attempts, then succeeds with resp.
type stubClient struct {
	failures int
	err      error
	resp     generation.CompletionResponse
	calls    int
}

func (c *stubClient) Complete(
	_ context.Context,
	_ generation.CompletionRequest,
) (generation.CompletionResponse, error) {
	c.calls++
	if c.calls <= c.failures {
		return generation.CompletionResponse{}, c.err
	}
	return c.resp, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest() generation.CompletionRequest {
	return generation.CompletionRequest{
		System:   "You are an interview coach.",
		User:     "Generate 3 questions.",
		Settings: domain.DefaultModelSettings(),
	}
}

func newTestInvoker(
	t *testing.T,
	client generation.Client,
	limiter *ratelimit.Limiter,
	sleep generation.SleepFunc,
) *generation.Invoker {
	t.Helper()

	policy := generation.DefaultRetryPolicy()
	policy.Jitter = false
	policy.Sleep = sleep

	inv, err := generation.NewInvoker(client, limiter, testLogger(),
		generation.WithRetryPolicy(policy))
	require.NoError(t, err)
	return inv
}

func TestInvokeSuccess(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		resp: generation.CompletionResponse{
			Text:         "1. What is a goroutine?",
			InputTokens:  120,
			OutputTokens: 60,
			ModelUsed:    "gemini-2.0-flash",
		},
	}
	limiter := ratelimit.New(10, time.Minute)
	inv := newTestInvoker(t, client, limiter, nil)

	outcome, err := inv.Invoke(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "1. What is a goroutine?", outcome.Text)
	assert.Equal(t, 120, outcome.Usage.InputTokens)
	assert.Equal(t, 60, outcome.Usage.OutputTokens)
	assert.Equal(t, "gemini-2.0-flash", outcome.ModelUsed)
	assert.Equal(t, 1, client.calls)
}

func TestInvokeRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		failures: 2,
		err:      generation.ErrServiceUnavailable,
		resp:     generation.CompletionResponse{Text: "questions", ModelUsed: "gemini-2.0-flash"},
	}
	limiter := ratelimit.New(10, time.Minute)

	sleep := &recordingSleep{}
	inv := newTestInvoker(t, client, limiter, sleep.Sleep)

	outcome, err := inv.Invoke(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "questions", outcome.Text)
	assert.Equal(t, 3, client.calls)
	require.Len(t, sleep.delays, 2)
	for _, d := range sleep.delays {
		assert.GreaterOrEqual(t, d, 4*time.Second)
		assert.LessOrEqual(t, d, 10*time.Second)
	}

	// One logical invoke consumes exactly one unit of rate budget,
	// regardless of retries.
	assert.Equal(t, 9, limiter.Remaining())
}

func TestInvokeExhaustsRetries(t *testing.T) {
	t.Parallel()

	client := &stubClient{failures: 5, err: generation.ErrTimeout}
	limiter := ratelimit.New(10, time.Minute)
	sleep := &recordingSleep{}
	inv := newTestInvoker(t, client, limiter, sleep.Sleep)

	_, err := inv.Invoke(context.Background(), testRequest())
	require.Error(t, err)

	var genErr *generation.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, genErr.Cause, generation.ErrTimeout)
	assert.Equal(t, 3, client.calls, "exactly 3 attempts, never a 4th")
}

func TestInvokeDeniedByRateLimiter(t *testing.T) {
	t.Parallel()

	client := &stubClient{resp: generation.CompletionResponse{Text: "unused"}}
	limiter := ratelimit.New(1, time.Minute)
	require.True(t, limiter.Acquire())

	inv := newTestInvoker(t, client, limiter, nil)

	_, err := inv.Invoke(context.Background(), testRequest())
	require.Error(t, err)

	var rlErr *generation.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Positive(t, rlErr.RetryAfter)
	assert.Zero(t, client.calls, "denied invoke must not touch the network")
}

func TestInvokeDoesNotRetryPermanentError(t *testing.T) {
	t.Parallel()

	client := &stubClient{failures: 5, err: generation.ErrContentBlocked}
	limiter := ratelimit.New(10, time.Minute)
	sleep := &recordingSleep{}
	inv := newTestInvoker(t, client, limiter, sleep.Sleep)

	_, err := inv.Invoke(context.Background(), testRequest())
	require.Error(t, err)

	var genErr *generation.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, genErr.Cause, generation.ErrContentBlocked)
	assert.Equal(t, 1, client.calls)
	assert.Empty(t, sleep.delays)
}

func TestNewInvokerValidation(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.New(1, time.Minute)
	client := &stubClient{}

	_, err := generation.NewInvoker(nil, limiter, testLogger())
	assert.Error(t, err)

	_, err = generation.NewInvoker(client, nil, testLogger())
	assert.Error(t, err)

	_, err = generation.NewInvoker(client, limiter, nil)
	assert.Error(t, err)
}
