package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Question count bounds for a single generation request.
const (
	MinQuestionCount     = 1
	MaxQuestionCount     = 20
	DefaultQuestionCount = 5
)

// Role description length bounds, enforced before a request reaches the
// generation core.
const (
	MinRoleDescriptionLength = 10
	MaxRoleDescriptionLength = 5000
)

// ModelSettings carries the invocation parameters forwarded to the
// completion provider unchanged.
type ModelSettings struct {
	Model            string  `json:"model"`
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"max_output_tokens"`
	TopP             float64 `json:"top_p"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
}

// DefaultModelSettings returns the model settings used when a request does
// not override them.
func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		Model:            "gemini-2.0-flash",
		Temperature:      0.7,
		MaxOutputTokens:  2000,
		TopP:             0.9,
		FrequencyPenalty: 0,
	}
}

// Validate checks the model settings against the provider's accepted ranges.
func (s ModelSettings) Validate() error {
	if s.Model == "" {
		return fmt.Errorf("%w: model cannot be empty", ErrInvalidModelSettings)
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0.0 and 2.0", ErrInvalidModelSettings)
	}
	if s.MaxOutputTokens < 100 || s.MaxOutputTokens > 4000 {
		return fmt.Errorf("%w: max output tokens must be between 100 and 4000", ErrInvalidModelSettings)
	}
	if s.TopP < 0 || s.TopP > 1 {
		return fmt.Errorf("%w: top_p must be between 0.0 and 1.0", ErrInvalidModelSettings)
	}
	return nil
}

// PersonaContext carries the interviewer persona variables used by
// role-based prompt templates.
type PersonaContext struct {
	InterviewerStyle string `json:"interviewer_style"`
	CompanyType      string `json:"company_type"`
	Traits           string `json:"traits"`
}

// GenerationRequest describes one question generation operation. It is
// immutable once constructed and owned by a single service invocation.
type GenerationRequest struct {
	ID              uuid.UUID      `json:"id"`
	RoleDescription string         `json:"role_description"`
	Technique       Technique      `json:"technique"`
	Category        Category       `json:"category"`
	Tier            Tier           `json:"tier"`
	QuestionCount   int            `json:"question_count"`
	Settings        ModelSettings  `json:"settings"`
	Persona         PersonaContext `json:"persona,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewGenerationRequest constructs a validated GenerationRequest. A zero
// question count is replaced with the default; zero-value settings are
// replaced with the default model settings. Returns an error if any field
// fails validation.
func NewGenerationRequest(
	roleDescription string,
	technique Technique,
	category Category,
	tier Tier,
	questionCount int,
	settings ModelSettings,
) (*GenerationRequest, error) {
	if questionCount == 0 {
		questionCount = DefaultQuestionCount
	}
	if settings == (ModelSettings{}) {
		settings = DefaultModelSettings()
	}

	req := &GenerationRequest{
		ID:              uuid.New(),
		RoleDescription: roleDescription,
		Technique:       technique,
		Category:        category,
		Tier:            tier,
		QuestionCount:   questionCount,
		Settings:        settings,
		CreatedAt:       time.Now().UTC(),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks that the request satisfies the generation contract.
func (r *GenerationRequest) Validate() error {
	if r.RoleDescription == "" {
		return ErrEmptyRoleDescription
	}
	if len(r.RoleDescription) < MinRoleDescriptionLength {
		return ErrRoleDescriptionTooShort
	}
	if len(r.RoleDescription) > MaxRoleDescriptionLength {
		return ErrRoleDescriptionTooLong
	}
	if !IsValidTechnique(r.Technique) {
		return ErrInvalidTechnique
	}
	if !IsValidCategory(r.Category) {
		return ErrInvalidCategory
	}
	if !IsValidTier(r.Tier) {
		return ErrInvalidTier
	}
	if r.QuestionCount < MinQuestionCount || r.QuestionCount > MaxQuestionCount {
		return ErrInvalidQuestionCount
	}
	if err := r.Settings.Validate(); err != nil {
		return err
	}
	return nil
}
