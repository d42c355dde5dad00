package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/session"
)

// Common request/response structures

// GenerateRequest defines the payload for the question generation endpoint.
type GenerateRequest struct {
	RoleDescription string `json:"role_description" validate:"required,min=10,max=5000"`
	Technique       string `json:"technique"        validate:"required"`
	Category        string `json:"category"         validate:"required"`
	Tier            string `json:"tier"             validate:"required"`
	QuestionCount   int    `json:"question_count"   validate:"omitempty,gte=1,lte=20"`

	// Optional model setting overrides; defaults apply when omitted.
	Model           string   `json:"model,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"     validate:"omitempty,gte=0,lte=2"`
	MaxOutputTokens int      `json:"max_output_tokens,omitempty" validate:"omitempty,gte=100,lte=4000"`

	// Persona fields, used by the role-based technique only.
	InterviewerStyle string `json:"interviewer_style,omitempty"`
	CompanyType      string `json:"company_type,omitempty"`
	Traits           string `json:"traits,omitempty"`
}

// GenerateResponse defines the successful response for the generation endpoint.
type GenerateResponse struct {
	ID              uuid.UUID               `json:"id"`
	Questions       []string                `json:"questions"`
	Recommendations []string                `json:"recommendations"`
	Details         []domain.QuestionDetail `json:"details,omitempty"`
	Technique       domain.Technique        `json:"technique"`
	Strategy        string                  `json:"strategy"`
	Degraded        bool                    `json:"degraded"`
	SentinelCode    string                  `json:"sentinel_code,omitempty"`
	ModelUsed       string                  `json:"model_used"`
	Usage           domain.TokenUsage       `json:"usage"`
	ElapsedMillis   int64                   `json:"elapsed_ms"`
	CreatedAt       time.Time               `json:"created_at"`
}

// HistoryResponse defines the response for the history endpoint.
type HistoryResponse struct {
	Entries []session.Entry `json:"entries"`
	Count   int             `json:"count"`
}
