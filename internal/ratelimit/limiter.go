// Package ratelimit implements a sliding-window admission controller for
// outbound completion calls. It is a fixed-size sliding log, not a token
// bucket: burst behavior is exact and eviction of expired call records
// happens lazily on each access.
package ratelimit

import (
	"sync"
	"time"
)

// Default limiter configuration: 100 calls per rolling hour.
const (
	DefaultMaxCalls = 100
	DefaultWindow   = time.Hour
)

// Stats is a point-in-time snapshot of the limiter state.
type Stats struct {
	MaxCalls       int           `json:"max_calls"`
	Window         time.Duration `json:"window"`
	CallsInWindow  int           `json:"calls_in_window"`
	CallsRemaining int           `json:"calls_remaining"`
	TotalRecorded  int64         `json:"total_recorded"`
}

// Limiter is a sliding-window rate limiter. All methods are safe for
// concurrent use; state is shared by every orchestration in the process.
type Limiter struct {
	mu       sync.Mutex
	calls    []time.Time
	maxCalls int
	window   time.Duration
	total    int64

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the limiter's clock source. Used by tests to
// simulate the passage of time.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a Limiter admitting at most maxCalls calls per window.
// Non-positive arguments fall back to the defaults.
func New(maxCalls int, window time.Duration, opts ...Option) *Limiter {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxCalls
	}
	if window <= 0 {
		window = DefaultWindow
	}

	l := &Limiter{
		calls:    make([]time.Time, 0, maxCalls),
		maxCalls: maxCalls,
		window:   window,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// evict drops every recorded timestamp older than the window. A record
// exactly window old counts as expired. Callers must hold mu.
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.calls) && !l.calls[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.calls = append(l.calls[:0], l.calls[i:]...)
	}
}

// Allow reports whether a new call is currently admissible. It does not
// reserve capacity; concurrent callers that need check-then-record
// semantics must use Acquire instead.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(l.now())
	return len(l.calls) < l.maxCalls
}

// Record appends the current timestamp to the sliding log. Recorded units
// are never rolled back, even if the call they admitted later fails.
func (l *Limiter) Record() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, l.now())
	l.total++
}

// Acquire performs the allow-then-record pair atomically. It returns true
// and consumes one unit of budget when the call is admitted, false when
// the window is at capacity.
func (l *Limiter) Acquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)
	if len(l.calls) >= l.maxCalls {
		return false
	}

	l.calls = append(l.calls, now)
	l.total++
	return true
}

// Remaining returns how many calls may still be admitted in the current
// window.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(l.now())
	return l.maxCalls - len(l.calls)
}

// TimeUntilAvailable returns the wait until the oldest retained record
// ages out of the window, and whether a wait is required at all. When the
// limiter is under capacity it returns (0, false).
func (l *Limiter) TimeUntilAvailable() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)
	if len(l.calls) < l.maxCalls {
		return 0, false
	}

	oldest := l.calls[0]
	return l.window - now.Sub(oldest), true
}

// Stats returns a snapshot of the limiter state for diagnostics.
func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(l.now())
	return Stats{
		MaxCalls:       l.maxCalls,
		Window:         l.window,
		CallsInWindow:  len(l.calls),
		CallsRemaining: l.maxCalls - len(l.calls),
		TotalRecorded:  l.total,
	}
}
