// Package parser converts raw completion text into the canonical
// GenerationResult. Parsing runs an ordered chain of strategies, from a
// strict structured decode down to last-resort sentence splitting, and
// guarantees a non-empty question list: when every strategy fails, a
// deterministic sentinel result is substituted instead of an error.
package parser

import (
	"log/slog"

	"github.com/phrazzld/interview-prep-api/internal/domain"
)

// Strategy names recorded on the result for diagnostics.
const (
	StrategyStructured = "structured"
	StrategyLines      = "lines"
	StrategyPatterns   = "patterns"
	StrategySentences  = "sentences"
	StrategySentinel   = "sentinel"
)

// minQuestionLength is the content floor below which an extracted
// segment is discarded as noise.
const minQuestionLength = 10

// sentinelQuestion is the deterministic placeholder substituted when no
// strategy recovers any question.
const sentinelQuestion = "We could not generate questions from the model response. " +
	"Please try again, or switch to a different prompt technique."

// Parser extracts a GenerationResult from unreliable completion text.
// It is stateless and safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// textStrategy is one fallback stage: it either recovers a non-empty
// question list from the text or reports failure so the next stage runs.
type textStrategy struct {
	name string
	run  func(text string, requested int) ([]string, bool)
}

// Parse produces the canonical result for one completion outcome. The
// technique selects whether the structured stage runs first; requested
// caps the fallback stages at the originally requested item count.
// Questions the completion did not grade get a difficulty derived from
// the candidate's tier. Parse never fails for content reasons.
func (p *Parser) Parse(
	outcome domain.CompletionOutcome,
	technique domain.Technique,
	tier domain.Tier,
	requested int,
) domain.GenerationResult {
	result := domain.GenerationResult{
		Technique: technique,
		ModelUsed: outcome.ModelUsed,
		Usage:     outcome.Usage,
		Elapsed:   outcome.Elapsed,
	}

	if technique == domain.TechniqueStructuredOutput {
		if decoded, ok := p.parseStructured(outcome.Text); ok {
			result.Questions = decoded.questions
			result.Details = withDefaultDifficulty(decoded.details, tier)
			result.Recommendations = decoded.recommendations
			result.Strategy = StrategyStructured
			if len(result.Recommendations) == 0 {
				result.Recommendations = DefaultRecommendations()
			}
			return result
		}
		p.logger.Debug("structured decode failed, falling back to text strategies")
	}

	strategies := []textStrategy{
		{StrategyLines, extractLines},
		{StrategyPatterns, splitPatterns},
		{StrategySentences, splitSentences},
	}

	for _, s := range strategies {
		if questions, ok := s.run(outcome.Text, requested); ok {
			p.logger.Debug("parsed completion text",
				"strategy", s.name,
				"questions", len(questions))
			result.Questions = questions
			result.Details = detailsForQuestions(questions, tier)
			result.Recommendations = DefaultRecommendations()
			result.Strategy = s.name
			return result
		}
	}

	p.logger.Warn("all parsing strategies failed, substituting sentinel result",
		"text_length", len(outcome.Text))

	result.Questions = []string{sentinelQuestion}
	result.Recommendations = DefaultRecommendations()
	result.Strategy = StrategySentinel
	result.Degraded = true
	result.SentinelCode = domain.SentinelParseFailure
	return result
}

// withDefaultDifficulty fills in the difficulty for structured items
// the completion left ungraded.
func withDefaultDifficulty(details []domain.QuestionDetail, tier domain.Tier) []domain.QuestionDetail {
	for i := range details {
		if details[i].Difficulty == "" {
			details[i].Difficulty = domain.DifficultyForTier(tier)
		}
	}
	return details
}

// detailsForQuestions builds the minimal detail entries for questions
// recovered by the text strategies, graded by tier.
func detailsForQuestions(questions []string, tier domain.Tier) []domain.QuestionDetail {
	details := make([]domain.QuestionDetail, len(questions))
	for i, q := range questions {
		details[i] = domain.QuestionDetail{
			Question:   q,
			Difficulty: domain.DifficultyForTier(tier),
		}
	}
	return details
}

// capQuestions truncates a list to the requested item count. A
// non-positive requested count leaves the list unchanged.
func capQuestions(questions []string, requested int) []string {
	if requested > 0 && len(questions) > requested {
		return questions[:requested]
	}
	return questions
}
