package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/generation"
	"github.com/phrazzld/interview-prep-api/internal/prompt"
	"github.com/phrazzld/interview-prep-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var rateErr *generation.RateLimitError
	var genErr *generation.GenerationError

	switch {
	// Admission denial
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests

	// Upstream provider failure after retry exhaustion
	case errors.As(err, &genErr):
		return http.StatusBadGateway

	// Request validation errors
	case errors.Is(err, domain.ErrEmptyRoleDescription),
		errors.Is(err, domain.ErrRoleDescriptionTooShort),
		errors.Is(err, domain.ErrRoleDescriptionTooLong),
		errors.Is(err, domain.ErrInvalidTechnique),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidTier),
		errors.Is(err, domain.ErrInvalidQuestionCount),
		errors.Is(err, domain.ErrInvalidModelSettings),
		errors.Is(err, service.ErrUnsafeInput),
		errors.Is(err, prompt.ErrNoTemplate):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var rateErr *generation.RateLimitError
	var genErr *generation.GenerationError

	switch {
	case errors.As(err, &rateErr):
		return "Rate limit exceeded, please try again later"

	case errors.As(err, &genErr):
		return "Question generation failed, please try again"

	case errors.Is(err, domain.ErrEmptyRoleDescription),
		errors.Is(err, domain.ErrRoleDescriptionTooShort):
		return "Role description must be at least 10 characters"

	case errors.Is(err, domain.ErrRoleDescriptionTooLong):
		return "Role description exceeds the 5000 character maximum"

	case errors.Is(err, domain.ErrInvalidTechnique),
		errors.Is(err, prompt.ErrNoTemplate):
		return "Unsupported prompt technique"

	case errors.Is(err, domain.ErrInvalidCategory):
		return "Unsupported interview category"

	case errors.Is(err, domain.ErrInvalidTier):
		return "Unsupported experience tier"

	case errors.Is(err, domain.ErrInvalidQuestionCount):
		return "Question count must be between 1 and 20"

	case errors.Is(err, domain.ErrInvalidModelSettings):
		return "Invalid model settings"

	case errors.Is(err, service.ErrUnsafeInput):
		return "Input rejected by content validation"

	default:
		return "An unexpected error occurred"
	}
}
