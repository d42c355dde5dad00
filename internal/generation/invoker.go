package generation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/ratelimit"
)

// Invoker performs one logical completion call: admission check against
// the shared rate limiter, then the network call under the bounded-retry
// policy. Admission is consumed once per logical invoke, before the
// first attempt; retries do not re-consume budget and recorded units are
// never rolled back.
type Invoker struct {
	client  Client
	limiter *ratelimit.Limiter
	policy  RetryPolicy
	logger  *slog.Logger

	// now is the clock source for elapsed-time measurement.
	now func() time.Time
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) InvokerOption {
	return func(inv *Invoker) {
		inv.policy = p
	}
}

// WithInvokerClock replaces the invoker's clock source.
func WithInvokerClock(now func() time.Time) InvokerOption {
	return func(inv *Invoker) {
		inv.now = now
	}
}

// NewInvoker creates an Invoker with the provided dependencies.
func NewInvoker(
	client Client,
	limiter *ratelimit.Limiter,
	logger *slog.Logger,
	opts ...InvokerOption,
) (*Invoker, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if limiter == nil {
		return nil, errors.New("limiter cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	inv := &Invoker{
		client:  client,
		limiter: limiter,
		policy:  DefaultRetryPolicy(),
		logger:  logger,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(inv)
	}

	return inv, nil
}

// Invoke sends the rendered prompt to the completion service. On
// admission denial it returns *RateLimitError immediately with no
// network attempt. Transient failures are retried per the policy; after
// exhaustion or a non-retryable error it returns *GenerationError with
// the underlying cause.
func (inv *Invoker) Invoke(
	ctx context.Context,
	req CompletionRequest,
) (domain.CompletionOutcome, error) {
	if !inv.limiter.Acquire() {
		wait, _ := inv.limiter.TimeUntilAvailable()
		inv.logger.WarnContext(ctx, "completion call denied by rate limiter",
			"retry_after_seconds", wait.Seconds())
		return domain.CompletionOutcome{}, &RateLimitError{RetryAfter: wait}
	}

	start := inv.now()
	var resp CompletionResponse
	attempts := 0

	err := inv.policy.Do(ctx, func(ctx context.Context) error {
		attempts++
		inv.logger.InfoContext(ctx, "making completion call",
			"attempt", attempts,
			"max_attempts", inv.policy.MaxAttempts,
			"model", req.Settings.Model)

		var callErr error
		resp, callErr = inv.client.Complete(ctx, req)
		if callErr != nil {
			inv.logger.ErrorContext(ctx, "completion call failed",
				"attempt", attempts,
				"error", callErr)
		}
		return callErr
	})
	if err != nil {
		return domain.CompletionOutcome{}, &GenerationError{Cause: err}
	}

	elapsed := inv.now().Sub(start)
	inv.logger.InfoContext(ctx, "completion call succeeded",
		"attempts", attempts,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"elapsed_ms", elapsed.Milliseconds())

	return domain.CompletionOutcome{
		Text: resp.Text,
		Usage: domain.TokenUsage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
		},
		ModelUsed: resp.ModelUsed,
		Elapsed:   elapsed,
	}, nil
}
