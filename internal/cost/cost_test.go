package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/interview-prep-api/internal/cost"
)

func TestCalculateBreakdown(t *testing.T) {
	t.Parallel()

	tracker := cost.NewTracker(map[string]cost.Pricing{
		"test-model": {InputPer1K: 0.0025, OutputPer1K: 0.010},
	})

	breakdown, err := tracker.Calculate("test-model", 2000, 1000)
	require.NoError(t, err)

	assert.InDelta(t, 0.005, breakdown.InputCost, 1e-9)
	assert.InDelta(t, 0.010, breakdown.OutputCost, 1e-9)
	assert.InDelta(t, 0.015, breakdown.TotalCost, 1e-9)
	assert.Equal(t, 2000, breakdown.InputTokens)
	assert.Equal(t, 1000, breakdown.OutputTokens)
}

func TestCalculateErrors(t *testing.T) {
	t.Parallel()

	tracker := cost.NewTracker(nil)

	_, err := tracker.Calculate("no-such-model", 100, 100)
	assert.ErrorIs(t, err, cost.ErrUnknownModel)

	_, err = tracker.Calculate("gemini-2.0-flash", -1, 100)
	assert.ErrorIs(t, err, cost.ErrNegativeTokens)
}

func TestRecordAccumulates(t *testing.T) {
	t.Parallel()

	tracker := cost.NewTracker(nil)

	_, err := tracker.Record("gemini-2.0-flash", 1000, 500)
	require.NoError(t, err)
	_, err = tracker.Record("gemini-2.0-flash", 2000, 1000)
	require.NoError(t, err)

	totals := tracker.Totals()
	assert.Equal(t, int64(3000), totals.InputTokens)
	assert.Equal(t, int64(1500), totals.OutputTokens)
	assert.Equal(t, int64(2), totals.Calls)
	assert.Positive(t, totals.TotalCost)
}

func TestRecordUnknownModelLeavesTotalsUntouched(t *testing.T) {
	t.Parallel()

	tracker := cost.NewTracker(nil)

	_, err := tracker.Record("no-such-model", 100, 100)
	require.Error(t, err)
	assert.Zero(t, tracker.Totals().Calls)
}
