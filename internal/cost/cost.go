// Package cost computes and accumulates API usage costs from the token
// counters reported by the completion provider.
package cost

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// ErrUnknownModel is returned when no pricing is registered for a model.
var ErrUnknownModel = errors.New("no pricing registered for model")

// ErrNegativeTokens is returned when a token count is negative.
var ErrNegativeTokens = errors.New("token counts cannot be negative")

// Pricing is the per-model price pair in USD per 1K tokens.
type Pricing struct {
	InputPer1K  float64 `json:"input_per_1k"`
	OutputPer1K float64 `json:"output_per_1k"`
}

// Breakdown is the cost of one completion call.
type Breakdown struct {
	InputCost    float64 `json:"input_cost"`
	OutputCost   float64 `json:"output_cost"`
	TotalCost    float64 `json:"total_cost"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
}

// DefaultPricing is the published per-1K-token pricing for the supported
// models, as of mid-2025.
func DefaultPricing() map[string]Pricing {
	return map[string]Pricing{
		"gemini-2.0-flash":      {InputPer1K: 0.00010, OutputPer1K: 0.00040},
		"gemini-2.0-flash-lite": {InputPer1K: 0.000075, OutputPer1K: 0.00030},
		"gemini-1.5-pro":        {InputPer1K: 0.00125, OutputPer1K: 0.00500},
	}
}

// Totals is a snapshot of the tracker's cumulative state.
type Totals struct {
	TotalCost    float64   `json:"total_cost"`
	InputTokens  int64     `json:"input_tokens"`
	OutputTokens int64     `json:"output_tokens"`
	Calls        int64     `json:"calls"`
	Since        time.Time `json:"since"`
}

// Tracker computes per-call cost breakdowns and accumulates totals
// across the process lifetime. Safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	pricing map[string]Pricing
	totals  Totals
}

// NewTracker creates a Tracker with the given price table; a nil table
// uses the defaults.
func NewTracker(pricing map[string]Pricing) *Tracker {
	if pricing == nil {
		pricing = DefaultPricing()
	}
	return &Tracker{
		pricing: pricing,
		totals:  Totals{Since: time.Now().UTC()},
	}
}

// Calculate returns the cost breakdown for one call without recording it.
func (t *Tracker) Calculate(model string, inputTokens, outputTokens int) (Breakdown, error) {
	if inputTokens < 0 || outputTokens < 0 {
		return Breakdown{}, ErrNegativeTokens
	}

	t.mu.Lock()
	pricing, ok := t.pricing[model]
	t.mu.Unlock()
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}

	inputCost := round6(float64(inputTokens) / 1000 * pricing.InputPer1K)
	outputCost := round6(float64(outputTokens) / 1000 * pricing.OutputPer1K)

	return Breakdown{
		InputCost:    inputCost,
		OutputCost:   outputCost,
		TotalCost:    round6(inputCost + outputCost),
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}, nil
}

// Record computes the breakdown and adds it to the cumulative totals.
func (t *Tracker) Record(model string, inputTokens, outputTokens int) (Breakdown, error) {
	breakdown, err := t.Calculate(model, inputTokens, outputTokens)
	if err != nil {
		return Breakdown{}, err
	}

	t.mu.Lock()
	t.totals.TotalCost = round6(t.totals.TotalCost + breakdown.TotalCost)
	t.totals.InputTokens += int64(inputTokens)
	t.totals.OutputTokens += int64(outputTokens)
	t.totals.Calls++
	t.mu.Unlock()

	return breakdown, nil
}

// Totals returns a snapshot of the cumulative usage.
func (t *Tracker) Totals() Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totals
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
