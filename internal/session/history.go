// Package session keeps a capped in-memory history of generation runs
// and supports exporting it to a JSON file for later review.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/interview-prep-api/internal/cost"
	"github.com/phrazzld/interview-prep-api/internal/domain"
)

// DefaultMaxHistory is the number of entries retained when no explicit
// cap is configured.
const DefaultMaxHistory = 10

// ErrEmptyHistory is returned when exporting with nothing recorded.
var ErrEmptyHistory = errors.New("session history is empty")

// Entry is one recorded generation run. Error is set instead of the
// result fields when the run failed.
type Entry struct {
	ID              uuid.UUID         `json:"id"`
	Timestamp       time.Time         `json:"timestamp"`
	RoleDescription string            `json:"role_description"`
	Technique       domain.Technique  `json:"technique"`
	Category        domain.Category   `json:"category"`
	Tier            domain.Tier       `json:"tier"`
	Questions       []string          `json:"questions,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Strategy        string            `json:"strategy,omitempty"`
	Degraded        bool              `json:"degraded,omitempty"`
	ModelUsed       string            `json:"model_used,omitempty"`
	Usage           domain.TokenUsage `json:"usage"`
	Cost            *cost.Breakdown   `json:"cost,omitempty"`
	Elapsed         time.Duration     `json:"elapsed_ns"`
	Error           string            `json:"error,omitempty"`
	Success         bool              `json:"success"`
}

// History is a bounded, newest-first log of generation runs. Safe for
// concurrent use.
type History struct {
	mu      sync.Mutex
	max     int
	entries []Entry
	now     func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *History) { h.now = now }
}

// NewHistory creates a History keeping at most max entries; max <= 0
// uses DefaultMaxHistory.
func NewHistory(max int, opts ...Option) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	h := &History{max: max, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RecordSuccess appends an entry for a completed run and returns it.
func (h *History) RecordSuccess(req domain.GenerationRequest, result domain.GenerationResult, breakdown *cost.Breakdown) Entry {
	entry := Entry{
		ID:              uuid.New(),
		Timestamp:       h.now().UTC(),
		RoleDescription: req.RoleDescription,
		Technique:       req.Technique,
		Category:        req.Category,
		Tier:            req.Tier,
		Questions:       result.Questions,
		Recommendations: result.Recommendations,
		Strategy:        result.Strategy,
		Degraded:        result.Degraded,
		ModelUsed:       result.ModelUsed,
		Usage:           result.Usage,
		Cost:            breakdown,
		Elapsed:         result.Elapsed,
		Success:         true,
	}
	h.append(entry)
	return entry
}

// RecordFailure appends an entry for a failed run and returns it.
func (h *History) RecordFailure(req domain.GenerationRequest, runErr error) Entry {
	entry := Entry{
		ID:              uuid.New(),
		Timestamp:       h.now().UTC(),
		RoleDescription: req.RoleDescription,
		Technique:       req.Technique,
		Category:        req.Category,
		Tier:            req.Tier,
		Error:           runErr.Error(),
	}
	h.append(entry)
	return entry
}

func (h *History) append(entry Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Newest first; oldest entries fall off the end.
	h.entries = append([]Entry{entry}, h.entries...)
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

// Entries returns a copy of the history, newest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports the number of retained entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Export writes the history to path as indented JSON, creating parent
// directories as needed.
func (h *History) Export(path string) error {
	entries := h.Entries()
	if len(entries) == 0 {
		return ErrEmptyHistory
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session history: %w", err)
	}
	return nil
}

// Load replaces the history with the contents of a previously exported
// file, trimming to the configured cap.
func (h *History) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading session history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decoding session history: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(entries) > h.max {
		entries = entries[:h.max]
	}
	h.entries = entries
	return nil
}
