package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/interview-prep-api/internal/api/shared"
	"github.com/phrazzld/interview-prep-api/internal/domain"
	"github.com/phrazzld/interview-prep-api/internal/generation"
	"github.com/phrazzld/interview-prep-api/internal/service"
	"github.com/phrazzld/interview-prep-api/internal/session"
)

// GenerationService abstracts the orchestration layer for the handler.
type GenerationService interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
	Status() service.Status
	History() []session.Entry
}

// GenerationHandler handles question generation HTTP requests
type GenerationHandler struct {
	service GenerationService
	logger  *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(svc GenerationService, logger *slog.Logger) *GenerationHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for GenerationHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerationHandler")
	}

	return &GenerationHandler{
		service: svc,
		logger:  logger.With(slog.String("component", "generation_handler")),
	}
}

// Generate handles POST /api/generate requests.
// It validates the payload, runs the generation pipeline, and returns the
// parsed question set.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var payload GenerateRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(payload); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	req, err := toDomainRequest(payload)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	result, err := h.service.Generate(r.Context(), *req)
	if err != nil {
		status := MapErrorToStatusCode(err)

		var rateErr *generation.RateLimitError
		if errors.As(err, &rateErr) {
			h.respondRateLimited(w, r, rateErr)
			return
		}

		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		ID:              req.ID,
		Questions:       result.Questions,
		Recommendations: result.Recommendations,
		Details:         result.Details,
		Technique:       result.Technique,
		Strategy:        result.Strategy,
		Degraded:        result.Degraded,
		SentinelCode:    result.SentinelCode,
		ModelUsed:       result.ModelUsed,
		Usage:           result.Usage,
		ElapsedMillis:   result.Elapsed.Milliseconds(),
		CreatedAt:       req.CreatedAt,
	})
}

// History handles GET /api/history requests.
func (h *GenerationHandler) History(w http.ResponseWriter, r *http.Request) {
	entries := h.service.History()
	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{
		Entries: entries,
		Count:   len(entries),
	})
}

// Status handles GET /api/status requests.
func (h *GenerationHandler) Status(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.Status())
}

// respondRateLimited sends the 429 response with the Retry-After header
// set from the limiter's estimate.
func (h *GenerationHandler) respondRateLimited(
	w http.ResponseWriter,
	r *http.Request,
	rateErr *generation.RateLimitError,
) {
	retryAfter := int(rateErr.RetryAfter.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

	traceID := shared.GetTraceID(r.Context())
	h.logger.WarnContext(r.Context(), "request rejected by rate limiter",
		"retry_after_seconds", retryAfter,
		"trace_id", traceID)

	shared.RespondWithJSON(w, r, http.StatusTooManyRequests, shared.ErrorResponse{
		Error:             "Rate limit exceeded, please try again later",
		Code:              http.StatusTooManyRequests,
		TraceID:           traceID,
		RetryAfterSeconds: retryAfter,
	})
}

// toDomainRequest converts the wire payload into a validated domain
// request, applying model setting defaults for omitted fields.
func toDomainRequest(payload GenerateRequest) (*domain.GenerationRequest, error) {
	settings := domain.DefaultModelSettings()
	if payload.Model != "" {
		settings.Model = payload.Model
	}
	if payload.Temperature != nil {
		settings.Temperature = *payload.Temperature
	}
	if payload.MaxOutputTokens != 0 {
		settings.MaxOutputTokens = payload.MaxOutputTokens
	}

	req, err := domain.NewGenerationRequest(
		payload.RoleDescription,
		domain.Technique(payload.Technique),
		domain.Category(payload.Category),
		domain.Tier(payload.Tier),
		payload.QuestionCount,
		settings,
	)
	if err != nil {
		return nil, err
	}

	req.Persona = domain.PersonaContext{
		InterviewerStyle: payload.InterviewerStyle,
		CompanyType:      payload.CompanyType,
		Traits:           payload.Traits,
	}

	return req, nil
}
