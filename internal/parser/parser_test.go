package parser_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/parser"
)

func newParser() *parser.Parser {
	return parser.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func outcome(text string) domain.CompletionOutcome {
	return domain.CompletionOutcome{
		Text:      text,
		Usage:     domain.TokenUsage{InputTokens: 100, OutputTokens: 200},
		ModelUsed: "gemini-2.0-flash",
	}
}

func structuredCompletion(t *testing.T, questions []map[string]any, recs []string) string {
	t.Helper()

	doc := map[string]any{"questions": questions}
	if recs != nil {
		doc["recommendations"] = recs
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(raw)
}

func item(question string) map[string]any {
	return map[string]any{
		"question":               question,
		"difficulty":             "medium",
		"category":               "conceptual",
		"estimated_time_minutes": 10,
		"hints":                  []string{"think about trade-offs"},
	}
}

func TestParseStructuredRecoversAllItemsInOrder(t *testing.T) {
	t.Parallel()

	questions := []map[string]any{
		item("How does Go's garbage collector work?"),
		item("Explain the difference between buffered and unbuffered channels."),
		item("How would you profile a slow HTTP handler?"),
	}
	text := structuredCompletion(t, questions, []string{"Practice concurrency questions."})

	result := newParser().Parse(outcome(text), domain.TechniqueStructuredOutput, domain.TierMid, 3)

	require.Len(t, result.Questions, 3)
	assert.Equal(t, "How does Go's garbage collector work?", result.Questions[0])
	assert.Equal(t, "How would you profile a slow HTTP handler?", result.Questions[2])
	assert.Equal(t, parser.StrategyStructured, result.Strategy)
	assert.False(t, result.Degraded)

	require.Len(t, result.Details, 3)
	assert.Equal(t, domain.DifficultyMedium, result.Details[0].Difficulty)
	assert.Equal(t, 10, result.Details[0].EstimatedTimeMinute)
	assert.Equal(t, []string{"Practice concurrency questions."}, result.Recommendations)
}

func TestParseStructuredStripsCodeFences(t *testing.T) {
	t.Parallel()

	inner := structuredCompletion(t, []map[string]any{
		item("Describe a production incident you debugged end to end."),
	}, nil)
	text := "Here is the result:\n```json\n" + inner + "\n```\nLet me know if you need more."

	result := newParser().Parse(outcome(text), domain.TechniqueStructuredOutput, domain.TierMid, 1)

	require.Len(t, result.Questions, 1)
	assert.Equal(t, parser.StrategyStructured, result.Strategy)
	// No structured recommendations: the default library applies verbatim.
	assert.Equal(t, parser.DefaultRecommendations(), result.Recommendations)
}

func TestParseStructuredRecoversWellFormedItemsOnly(t *testing.T) {
	t.Parallel()

	text := `{"questions": [
		{"question": "What is a race condition and how do you detect one in Go?"},
		{"question": ""},
		{"not_a_question": true},
		"Explain how context cancellation propagates through an HTTP request.",
		42
	]}`

	result := newParser().Parse(outcome(text), domain.TechniqueStructuredOutput, domain.TierMid, 5)

	require.Len(t, result.Questions, 2, "malformed items are skipped, not fatal")
	assert.Contains(t, result.Questions[0], "race condition")
	assert.Contains(t, result.Questions[1], "context cancellation")
}

func TestParseStructuredFallsThroughToTextStrategies(t *testing.T) {
	t.Parallel()

	text := "1. How do you design for backwards compatibility?\n" +
		"2. What does idempotency mean for a payment API?\n"

	result := newParser().Parse(outcome(text), domain.TechniqueStructuredOutput, domain.TierMid, 5)

	require.Len(t, result.Questions, 2)
	assert.Equal(t, parser.StrategyLines, result.Strategy)
}

func TestParseLineFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "numbered with dots",
			text: "1. Explain how a hash map handles collisions.\n2. What is amortized complexity?",
			want: 2,
		},
		{
			name: "numbered with parens",
			text: "1) Describe your testing strategy for a new service.\n2) How do you roll back a bad deploy?",
			want: 2,
		},
		{
			name: "dashes",
			text: "- How do you handle schema migrations safely?\n- What monitoring would you add first?",
			want: 2,
		},
		{
			name: "bullets",
			text: "• Walk me through your code review process.\n• How do you decide what to test?",
			want: 2,
		},
		{
			name: "short lines discarded as noise",
			text: "1. ok\n2. Explain eventual consistency to a non-engineer.",
			want: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := newParser().Parse(outcome(tc.text), domain.TechniqueZeroShot, domain.TierMid, 10)
			assert.Len(t, result.Questions, tc.want)
			assert.Equal(t, parser.StrategyLines, result.Strategy)
		})
	}
}

func TestParseQuestionMarkerSplitting(t *testing.T) {
	t.Parallel()

	text := "Question 1: How would you shard a relational database?\n" +
		"Question 2: What are the trade-offs of optimistic locking?\n"

	result := newParser().Parse(outcome(text), domain.TechniqueZeroShot, domain.TierMid, 5)

	require.GreaterOrEqual(t, len(result.Questions), 2)
	assert.NotEqual(t, parser.StrategySentinel, result.Strategy)
}

func TestParseParagraphSplitting(t *testing.T) {
	t.Parallel()

	text := "Tell me about the hardest bug you have fixed in production.\n\n" +
		"Walk me through how you would design a notification system.\n\n" +
		"Describe your approach to mentoring junior engineers."

	result := newParser().Parse(outcome(text), domain.TechniqueChainOfThought, domain.TierMid, 5)

	assert.Len(t, result.Questions, 3)
	assert.Equal(t, parser.StrategyPatterns, result.Strategy)
}

func TestParseSentenceFallbackCapsAtRequested(t *testing.T) {
	t.Parallel()

	text := "What is your biggest strength? Why do you want this role? " +
		"Where do you see yourself in five years? What motivates you day to day?"

	result := newParser().Parse(outcome(text), domain.TechniqueZeroShot, domain.TierMid, 2)

	require.Len(t, result.Questions, 2)
	for _, q := range result.Questions {
		assert.True(t, len(q) > 0 && q[len(q)-1] == '?')
	}
}

// For any completion text, the question sequence is never empty.
func TestParseNeverReturnsEmptyQuestions(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   \n\t  \n",
		"ok",
		"###",
		"\x00\x7f\xc3\x28 binary-ish \x01\x02",
		"no questions here just a short sentence with nothing to split on",
		`{"unrelated": "json"}`,
		"```json\n{broken",
	}

	for i, text := range inputs {
		text := text
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			t.Parallel()

			for _, technique := range domain.Techniques() {
				result := newParser().Parse(outcome(text), technique, domain.TierMid, 3)
				require.NotEmpty(t, result.Questions,
					"technique %s, input %q", technique, text)
				if result.Strategy == parser.StrategySentinel {
					assert.True(t, result.Degraded)
					assert.Equal(t, domain.SentinelParseFailure, result.SentinelCode)
					assert.Len(t, result.Questions, 1)
				}
			}
		})
	}
}

func TestParseSentinelIsDeterministic(t *testing.T) {
	t.Parallel()

	p := newParser()
	first := p.Parse(outcome(""), domain.TechniqueZeroShot, domain.TierMid, 5)
	second := p.Parse(outcome(""), domain.TechniqueZeroShot, domain.TierMid, 5)

	assert.Equal(t, first.Questions, second.Questions)
	assert.Equal(t, first.Recommendations, second.Recommendations)
	assert.Equal(t, domain.SentinelParseFailure, first.SentinelCode)
}

func TestParsePreservesOutcomeMetadata(t *testing.T) {
	t.Parallel()

	result := newParser().Parse(
		outcome("1. Explain the CAP theorem with a concrete example."),
		domain.TechniqueZeroShot, domain.TierMid, 1,
	)

	assert.Equal(t, "gemini-2.0-flash", result.ModelUsed)
	assert.Equal(t, 100, result.Usage.InputTokens)
	assert.Equal(t, 200, result.Usage.OutputTokens)
}

func TestParseGradesUngradedQuestionsByTier(t *testing.T) {
	t.Parallel()

	t.Run("structured items without a difficulty", func(t *testing.T) {
		t.Parallel()

		text := `{"questions": [
			{"question": "How would you debug a flaky integration test suite?"},
			{"question": "Explain backpressure in a streaming pipeline.", "difficulty": "hard"}
		]}`

		result := newParser().Parse(outcome(text), domain.TechniqueStructuredOutput, domain.TierJunior, 2)

		require.Len(t, result.Details, 2)
		assert.Equal(t, domain.DifficultyEasy, result.Details[0].Difficulty,
			"ungraded item defaults to the tier's difficulty")
		assert.Equal(t, domain.DifficultyHard, result.Details[1].Difficulty,
			"model-supplied grade is kept")
	})

	t.Run("text strategy results", func(t *testing.T) {
		t.Parallel()

		text := "1. How do you approach capacity planning for a new service?\n" +
			"2. Describe a time you pushed back on a deadline."

		result := newParser().Parse(outcome(text), domain.TechniqueZeroShot, domain.TierSenior, 5)

		require.Len(t, result.Details, len(result.Questions))
		for i, detail := range result.Details {
			assert.Equal(t, result.Questions[i], detail.Question)
			assert.Equal(t, domain.DifficultyHard, detail.Difficulty)
		}
	})
}

func TestDefaultRecommendationsCopy(t *testing.T) {
	t.Parallel()

	recs := parser.DefaultRecommendations()
	require.NotEmpty(t, recs)
	recs[0] = "mutated"
	assert.NotEqual(t, "mutated", parser.DefaultRecommendations()[0])
}
