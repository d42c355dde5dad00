package generation

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors classifying completion call failures. Provider
// implementations wrap their native errors with one of these so the
// retry policy can tell transient failures from permanent ones.
var (
	// ErrServiceUnavailable is returned for network-level failures
	// reaching the completion service. Transient.
	ErrServiceUnavailable = errors.New("completion service unavailable")

	// ErrTimeout is returned when a completion call exceeds its deadline.
	// Transient.
	ErrTimeout = errors.New("completion call timed out")

	// ErrServiceInternal is returned when the completion service reports
	// an internal error or a malformed-but-recoverable response. Transient.
	ErrServiceInternal = errors.New("completion service internal error")

	// ErrContentBlocked is returned when the service refuses to complete
	// the prompt (safety filters). Permanent; never retried.
	ErrContentBlocked = errors.New("content blocked by completion service")

	// ErrInvalidConfig is returned when invoker or client configuration
	// is invalid at construction time.
	ErrInvalidConfig = errors.New("invalid generation configuration")
)

// RateLimitError reports that the admission controller denied a call.
// It carries the wait until a slot frees up so callers can decide whether
// to wait or abandon; the core never waits internally.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter.Round(time.Second))
}

// GenerationError is the terminal failure of one logical invoke after
// retry exhaustion or a non-retryable error. Cause classifies the
// underlying failure for diagnostic display.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether an error belongs to a failure class worth
// retrying. Successful responses with unusable content are not errors at
// this layer; content recovery is the parser's job.
func IsTransient(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServiceInternal)
}
