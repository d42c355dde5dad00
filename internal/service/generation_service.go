// Package service contains the application-level orchestration. The
// generation service coordinates the prompt library, the rate-limited
// completion invoker, and the response parser to fulfil one question
// generation request end to end.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/interview-prep-api/internal/cost"
	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/generation"
	"github.com/phrazzld/interview-prep-api/internal/parser"
	"github.com/phrazzld/interview-prep-api/internal/prompt"
	"github.com/phrazzld/interview-prep-api/internal/ratelimit"
	"github.com/phrazzld/interview-prep-api/internal/security"
	"github.com/phrazzld/interview-prep-api/internal/session"
)

// ErrUnsafeInput indicates the role description was rejected by the
// security validator. The API layer maps this to HTTP 400.
var ErrUnsafeInput = errors.New("input rejected by security validation")

// GenerationService orchestrates one generation run: validate and
// sanitize the input, resolve and render the prompt template, invoke
// the completion provider, parse the response, and record cost and
// history. It is safe for concurrent use.
type GenerationService struct {
	library   *prompt.Library
	validator *security.Validator
	invoker   *generation.Invoker
	parser    *parser.Parser
	limiter   *ratelimit.Limiter
	tracker   *cost.Tracker
	history   *session.History
	logger    *slog.Logger
}

// NewGenerationService creates the service. All dependencies are
// required.
func NewGenerationService(
	library *prompt.Library,
	validator *security.Validator,
	invoker *generation.Invoker,
	p *parser.Parser,
	limiter *ratelimit.Limiter,
	tracker *cost.Tracker,
	history *session.History,
	logger *slog.Logger,
) (*GenerationService, error) {
	if library == nil {
		return nil, errors.New("library cannot be nil")
	}
	if validator == nil {
		return nil, errors.New("validator cannot be nil")
	}
	if invoker == nil {
		return nil, errors.New("invoker cannot be nil")
	}
	if p == nil {
		return nil, errors.New("parser cannot be nil")
	}
	if limiter == nil {
		return nil, errors.New("limiter cannot be nil")
	}
	if tracker == nil {
		return nil, errors.New("tracker cannot be nil")
	}
	if history == nil {
		return nil, errors.New("history cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &GenerationService{
		library:   library,
		validator: validator,
		invoker:   invoker,
		parser:    p,
		limiter:   limiter,
		tracker:   tracker,
		history:   history,
		logger:    logger,
	}, nil
}

// Generate runs one generation request end to end. The returned result
// always carries a non-empty question list on success; parse-level
// degradation surfaces through result.Degraded, never as an error.
func (s *GenerationService) Generate(
	ctx context.Context,
	req domain.GenerationRequest,
) (domain.GenerationResult, error) {
	log := s.logger.With("request_id", req.ID, "technique", req.Technique)

	if err := req.Validate(); err != nil {
		return domain.GenerationResult{}, err
	}

	screened := s.validator.ValidateRoleDescription(req.RoleDescription)
	if !screened.Valid {
		log.WarnContext(ctx, "role description rejected",
			"blocked_patterns", len(screened.BlockedPatterns))
		err := fmt.Errorf("%w: %s", ErrUnsafeInput, firstOr(screened.Warnings, "invalid input"))
		s.history.RecordFailure(req, err)
		return domain.GenerationResult{}, err
	}
	for _, warning := range screened.Warnings {
		log.InfoContext(ctx, "input validation warning", "warning", warning)
	}

	tmpl, err := s.library.Resolve(req.Technique, req.Category, req.Tier)
	if err != nil {
		s.history.RecordFailure(req, err)
		return domain.GenerationResult{}, fmt.Errorf("resolving prompt template: %w", err)
	}

	system, user, err := s.library.Render(tmpl, s.buildVars(req, screened.Cleaned))
	if err != nil {
		s.history.RecordFailure(req, err)
		return domain.GenerationResult{}, fmt.Errorf("rendering prompt template %s: %w", tmpl.Name, err)
	}

	outcome, err := s.invoker.Invoke(ctx, generation.CompletionRequest{
		System:   system,
		User:     user,
		Settings: req.Settings,
	})
	if err != nil {
		s.history.RecordFailure(req, err)
		return domain.GenerationResult{}, err
	}

	result := s.parser.Parse(outcome, req.Technique, req.Tier, req.QuestionCount)

	var breakdown *cost.Breakdown
	if b, costErr := s.tracker.Record(outcome.ModelUsed, outcome.Usage.InputTokens, outcome.Usage.OutputTokens); costErr != nil {
		log.DebugContext(ctx, "cost not recorded", "model", outcome.ModelUsed, "error", costErr)
	} else {
		breakdown = &b
	}

	s.history.RecordSuccess(req, result, breakdown)

	log.InfoContext(ctx, "generation completed",
		"questions", len(result.Questions),
		"strategy", result.Strategy,
		"degraded", result.Degraded,
		"model", result.ModelUsed)

	return result, nil
}

// buildVars assembles the template variable set for a request. Persona
// variables are populated only for the role-based technique, falling
// back to the neutral presets when the request does not specify them.
func (s *GenerationService) buildVars(req domain.GenerationRequest, cleanedRole string) prompt.Vars {
	vars := prompt.Vars{
		RoleDescription: cleanedRole,
		TierLabel:       req.Tier.Label(),
		QuestionCount:   req.QuestionCount,
		Category:        string(req.Category),
	}

	if req.Technique == domain.TechniqueRoleBased {
		vars.InterviewerStyle = req.Persona.InterviewerStyle
		vars.CompanyType = req.Persona.CompanyType
		vars.Traits = req.Persona.Traits
		if vars.InterviewerStyle == "" {
			vars.InterviewerStyle = "neutral"
		}
		if vars.CompanyType == "" {
			vars.CompanyType = prompt.DefaultCompanyType
		}
		vars.CompanyType = prompt.CompanyTypeDescription(vars.CompanyType)
		if vars.Traits == "" {
			vars.Traits = prompt.Personas["neutral"]
		}
	}

	return vars
}

// Status is a point-in-time snapshot of the subsystem's operational
// state, exposed by the status endpoint.
type Status struct {
	Limiter   ratelimit.Stats `json:"rate_limit"`
	Usage     cost.Totals     `json:"usage"`
	Sessions  int             `json:"sessions"`
	Templates int             `json:"templates"`
}

// Status reports the current rate-limit, usage, and history state.
func (s *GenerationService) Status() Status {
	return Status{
		Limiter:   s.limiter.Stats(),
		Usage:     s.tracker.Totals(),
		Sessions:  s.history.Len(),
		Templates: s.library.Count(),
	}
}

// History returns the recorded generation runs, newest first.
func (s *GenerationService) History() []session.Entry {
	return s.history.Entries()
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}
