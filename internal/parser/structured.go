package parser

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/prompt"
)

// structuredEnvelope is the lenient decode target: items are kept raw so
// malformed entries can be skipped individually instead of discarding
// the whole response.
type structuredEnvelope struct {
	Questions       []json.RawMessage `json:"questions"`
	Recommendations []json.RawMessage `json:"recommendations"`
}

// structuredItem is one question entry in the schema-constrained shape.
type structuredItem struct {
	Question            string   `json:"question"`
	Difficulty          string   `json:"difficulty"`
	Category            string   `json:"category"`
	EstimatedTimeMinute int      `json:"estimated_time_minutes"`
	Hints               []string `json:"hints"`
	FollowUps           []string `json:"follow_ups"`
}

// structuredRecommendation tolerates both plain strings and the object
// form some models produce.
type structuredRecommendation struct {
	Recommendation string `json:"recommendation"`
}

type structuredResult struct {
	questions       []string
	details         []domain.QuestionDetail
	recommendations []string
}

// parseStructured is the strict stage for schema-constrained output:
// strip code fences, extract the outermost JSON value, validate against
// the output schema, and decode. When the shape is present but some
// items are malformed, all well-formed items are recovered. Returns
// false only when no questions can be recovered at all.
func (p *Parser) parseStructured(text string) (structuredResult, bool) {
	raw, ok := extractJSON(text)
	if !ok {
		return structuredResult{}, false
	}

	validation, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(prompt.QuestionSetSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		// Not decodable JSON at all.
		return structuredResult{}, false
	}
	if !validation.Valid() {
		p.logger.Debug("structured response failed schema validation, recovering items",
			"violations", len(validation.Errors()))
	}

	var envelope structuredEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return structuredResult{}, false
	}
	if envelope.Questions == nil {
		return structuredResult{}, false
	}

	var out structuredResult
	for _, rawItem := range envelope.Questions {
		question, detail, ok := decodeItem(rawItem)
		if !ok {
			continue
		}
		out.questions = append(out.questions, question)
		out.details = append(out.details, detail)
	}
	if len(out.questions) == 0 {
		return structuredResult{}, false
	}

	for _, rawRec := range envelope.Recommendations {
		if rec, ok := decodeRecommendation(rawRec); ok {
			out.recommendations = append(out.recommendations, rec)
		}
	}

	return out, true
}

// decodeItem recovers one question entry, accepting both the object form
// and a bare string. Entries without enough content to derive a question
// string are rejected.
func decodeItem(raw json.RawMessage) (string, domain.QuestionDetail, bool) {
	var item structuredItem
	if err := json.Unmarshal(raw, &item); err == nil && len(strings.TrimSpace(item.Question)) >= minQuestionLength {
		question := strings.TrimSpace(item.Question)
		return question, domain.QuestionDetail{
			Question:            question,
			Difficulty:          domain.Difficulty(item.Difficulty),
			Category:            item.Category,
			EstimatedTimeMinute: item.EstimatedTimeMinute,
			Hints:               item.Hints,
			FollowUps:           item.FollowUps,
		}, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && len(strings.TrimSpace(s)) >= minQuestionLength {
		s = strings.TrimSpace(s)
		return s, domain.QuestionDetail{Question: s}, true
	}

	return "", domain.QuestionDetail{}, false
}

func decodeRecommendation(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), true
	}

	var obj structuredRecommendation
	if err := json.Unmarshal(raw, &obj); err == nil && strings.TrimSpace(obj.Recommendation) != "" {
		return strings.TrimSpace(obj.Recommendation), true
	}

	return "", false
}

// extractJSON locates the JSON document inside a completion: it strips
// surrounding markdown code fences, then extracts the outermost balanced
// object or array.
func extractJSON(text string) (string, bool) {
	text = strings.TrimSpace(text)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			text = strings.TrimSpace(rest[:end])
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			candidate := strings.TrimSpace(rest[:end])
			if strings.HasPrefix(candidate, "{") || strings.HasPrefix(candidate, "[") {
				text = candidate
			}
		}
	}

	if doc, ok := balancedSlice(text, '{', '}'); ok {
		return doc, true
	}
	if doc, ok := balancedSlice(text, '[', ']'); ok {
		return doc, true
	}
	return "", false
}

// balancedSlice returns the first balanced open..close span in text.
// Braces inside JSON strings are rare enough in practice that a depth
// counter suffices; genuinely unbalanced text falls through to the text
// strategies anyway.
func balancedSlice(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == open:
			depth++
		case !inString && c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
