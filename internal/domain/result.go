package domain

import "time"

// TokenUsage carries the token counters reported by the completion
// provider. The counts are exposed unchanged for cost accounting.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Total returns the combined token count.
func (u TokenUsage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// CompletionOutcome is the raw product of one completion call. It is
// produced by the invoker, consumed immediately by the parser, and not
// retained afterwards.
type CompletionOutcome struct {
	Text      string        `json:"text"`
	Usage     TokenUsage    `json:"usage"`
	ModelUsed string        `json:"model_used"`
	Elapsed   time.Duration `json:"elapsed"`
}

// QuestionDetail is the optional structured metadata attached to a
// question when the technique supports it (structured output).
type QuestionDetail struct {
	Question            string     `json:"question"`
	Difficulty          Difficulty `json:"difficulty,omitempty"`
	Category            string     `json:"category,omitempty"`
	EstimatedTimeMinute int        `json:"estimated_time_minutes,omitempty"`
	Hints               []string   `json:"hints,omitempty"`
	FollowUps           []string   `json:"follow_ups,omitempty"`
}

// SentinelParseFailure tags a result whose questions could not be
// recovered from the completion by any parsing strategy. The result still
// carries exactly one placeholder question so callers never observe an
// empty sequence.
const SentinelParseFailure = "parse_failure"

// GenerationResult is the canonical output of one generation. Invariant:
// Questions is never empty; when parsing fails entirely, a deterministic
// placeholder result tagged with SentinelParseFailure is substituted.
type GenerationResult struct {
	Questions       []string         `json:"questions"`
	Recommendations []string         `json:"recommendations"`
	Details         []QuestionDetail `json:"details,omitempty"`
	Technique       Technique        `json:"technique"`
	ModelUsed       string           `json:"model_used"`
	Usage           TokenUsage       `json:"usage"`
	Elapsed         time.Duration    `json:"elapsed"`
	Strategy        string           `json:"strategy"`
	Degraded        bool             `json:"degraded"`
	SentinelCode    string           `json:"sentinel_code,omitempty"`
}
