// Package security validates and sanitizes user-supplied text before it
// is interpolated into prompts. It enforces length bounds, blocks prompt
// injection and markup injection attempts, and flags sensitive content.
package security

import (
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/phrazzld/interview-prep-api/internal/domain"
)

// ValidationResult reports the outcome of validating one input field.
// Warnings are advisory; BlockedPatterns means the input was rejected.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Cleaned         string   `json:"cleaned"`
	Warnings        []string `json:"warnings,omitempty"`
	BlockedPatterns []string `json:"blocked_patterns,omitempty"`
}

// injectionPatterns match attempts to override or escape the prompt.
// Matched case-insensitively against the raw input.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions?`),
	regexp.MustCompile(`(?i)forget\s+previous\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+previous\s+instructions?`),
	regexp.MustCompile(`(?i)system\s*:\s*(you\s+are\s+now|act\s+as|pretend\s+to\s+be)`),
	regexp.MustCompile(`(?i)you\s+are\s+no\s+longer`),
	regexp.MustCompile(`(?i)new\s+instructions?\s*:`),
	regexp.MustCompile(`(?i)act\s+as\s+if\s+you\s+are`),
	regexp.MustCompile(`(?i)pretend\s+you\s+are`),
	regexp.MustCompile(`(?i)roleplay\s+as`),
	regexp.MustCompile(`(?i)simulate\s+being`),
	regexp.MustCompile(`(?i)output\s+only`),
	regexp.MustCompile(`(?i)respond\s+with\s+only`),
	regexp.MustCompile(`(?i)say\s+nothing\s+but`),
	regexp.MustCompile(`(?i)jailbreak`),
	regexp.MustCompile(`(?i)dan\s+mode`),
	regexp.MustCompile(`(?i)developer\s+mode`),
	regexp.MustCompile(`(?i)base64`),
	regexp.MustCompile(`(?i)rot13`),
	regexp.MustCompile(`\{\{.*\}\}`),
	regexp.MustCompile(`\$\{.*\}`),
	regexp.MustCompile(`(?i)exec\s*\(`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`__import__`),
	regexp.MustCompile(`(?i)os\.system`),
}

// markupPatterns match HTML and script injection attempts.
var markupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`),
	regexp.MustCompile(`(?is)<object[^>]*>.*?</object>`),
	regexp.MustCompile(`(?is)<embed[^>]*>.*?</embed>`),
	regexp.MustCompile(`(?is)<form[^>]*>.*?</form>`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)vbscript\s*:`),
	regexp.MustCompile(`(?i)data\s*:\s*text/html`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
}

// sensitivePatterns flag content that looks like credentials or PII.
// These produce warnings only.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)credit\s+card`),
	regexp.MustCompile(`(?i)social\s+security`),
	regexp.MustCompile(`(?i)\bssn\b`),
	regexp.MustCompile(`(?i)api\s+key`),
	regexp.MustCompile(`(?i)secret\s+key`),
	regexp.MustCompile(`(?i)private\s+key`),
	regexp.MustCompile(`(?i)bearer\s+`),
}

var (
	htmlTag     = regexp.MustCompile(`<[^>]+>`)
	whitespace  = regexp.MustCompile(`\s+`)
	controlChar = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
)

// Validator screens inbound text fields. The zero value is not usable;
// construct with NewValidator.
type Validator struct {
	logger    *slog.Logger
	minLength int
	maxLength int
}

// NewValidator creates a Validator using the domain's role description
// length bounds.
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{
		logger:    logger,
		minLength: domain.MinRoleDescriptionLength,
		maxLength: domain.MaxRoleDescriptionLength,
	}
}

// ValidateInput checks one text field and returns the sanitized form.
// fieldName appears in warning messages only.
func (v *Validator) ValidateInput(text, fieldName string) ValidationResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationResult{
			Warnings: []string{fmt.Sprintf("%s cannot be empty", fieldName)},
		}
	}

	if len(text) < v.minLength {
		return ValidationResult{
			Cleaned:  text,
			Warnings: []string{fmt.Sprintf("%s must be at least %d characters", fieldName, v.minLength)},
		}
	}
	if len(text) > v.maxLength {
		return ValidationResult{
			Cleaned:  text[:v.maxLength],
			Warnings: []string{fmt.Sprintf("%s exceeds the %d character maximum", fieldName, v.maxLength)},
		}
	}

	var blocked []string
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(text) {
			blocked = append(blocked, pattern.String())
		}
	}
	for _, pattern := range markupPatterns {
		if pattern.MatchString(text) {
			blocked = append(blocked, pattern.String())
		}
	}
	if len(blocked) > 0 {
		v.logger.Warn("rejected input with harmful content",
			"field", fieldName,
			"pattern_count", len(blocked))
		return ValidationResult{
			Warnings:        []string{fmt.Sprintf("%s contains potentially harmful content", fieldName)},
			BlockedPatterns: blocked,
		}
	}

	var warnings []string
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(text) {
			warnings = append(warnings, fmt.Sprintf("potentially sensitive content detected: %s", pattern.String()))
		}
	}

	return ValidationResult{
		Valid:    true,
		Cleaned:  Sanitize(text),
		Warnings: warnings,
	}
}

// ValidateRoleDescription runs the general validation plus advisory
// checks specific to role descriptions.
func (v *Validator) ValidateRoleDescription(text string) ValidationResult {
	result := v.ValidateInput(text, "role description")
	if !result.Valid {
		return result
	}

	if len(strings.Fields(result.Cleaned)) < 5 {
		result.Warnings = append(result.Warnings,
			"role description seems very short, consider adding more details")
	}

	lower := strings.ToLower(result.Cleaned)
	keywords := []string{"experience", "skills", "requirements", "responsibilities", "qualifications"}
	found := false
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found = true
			break
		}
	}
	if !found {
		result.Warnings = append(result.Warnings,
			"role description might be missing key elements such as requirements or skills")
	}

	return result
}

// Sanitize escapes markup, strips tags and control characters, and
// collapses whitespace runs to single spaces.
func Sanitize(text string) string {
	text = html.EscapeString(text)
	text = htmlTag.ReplaceAllString(text, "")
	text = controlChar.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
