package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyRoleDescription is returned when a request carries no role
	// description text.
	ErrEmptyRoleDescription = errors.New("role description cannot be empty")

	// ErrRoleDescriptionTooShort is returned when the role description is
	// below the minimum length bound.
	ErrRoleDescriptionTooShort = errors.New("role description too short")

	// ErrRoleDescriptionTooLong is returned when the role description is
	// above the maximum length bound.
	ErrRoleDescriptionTooLong = errors.New("role description too long")

	// ErrInvalidTechnique is returned when a technique is not one of the
	// supported prompt techniques.
	ErrInvalidTechnique = errors.New("invalid prompt technique")

	// ErrInvalidCategory is returned when a category is not one of the
	// supported interview categories.
	ErrInvalidCategory = errors.New("invalid interview category")

	// ErrInvalidTier is returned when a tier is not one of the supported
	// experience tiers.
	ErrInvalidTier = errors.New("invalid experience tier")

	// ErrInvalidQuestionCount is returned when the requested question count
	// is outside the allowed 1..20 range.
	ErrInvalidQuestionCount = errors.New("question count must be between 1 and 20")

	// ErrInvalidModelSettings is returned when model invocation settings
	// fail validation.
	ErrInvalidModelSettings = errors.New("invalid model settings")
)
