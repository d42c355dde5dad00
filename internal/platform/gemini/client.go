// Package gemini implements the generation.Client interface against
// Google's Gemini API using the google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/interview-prep-api/internal/generation"
)

// Client is a generation.Client backed by the Gemini API. Retry and
// rate limiting live in the invoker; this layer performs a single call
// and classifies failures into the generation error taxonomy.
type Client struct {
	logger *slog.Logger
	client *genai.Client
}

// NewClient creates a Gemini-backed completion client.
func NewClient(ctx context.Context, logger *slog.Logger, apiKey string) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Client{logger: logger, client: client}, nil
}

// Complete sends one completion request and returns the raw text plus
// token usage. Errors are mapped onto the generation sentinels so the
// retry policy can classify them.
func (c *Client) Complete(
	ctx context.Context,
	req generation.CompletionRequest,
) (generation.CompletionResponse, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Settings.Temperature)),
		TopP:            genai.Ptr(float32(req.Settings.TopP)),
		MaxOutputTokens: int32(req.Settings.MaxOutputTokens),
	}
	if req.Settings.FrequencyPenalty != 0 {
		config.FrequencyPenalty = genai.Ptr(float32(req.Settings.FrequencyPenalty))
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Settings.Model, genai.Text(req.User), config)
	if err != nil {
		return generation.CompletionResponse{}, classifyError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return generation.CompletionResponse{}, fmt.Errorf("%w: no candidates in response",
			generation.ErrServiceInternal)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return generation.CompletionResponse{}, fmt.Errorf("%w: blocked by safety filters",
			generation.ErrContentBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return generation.CompletionResponse{}, fmt.Errorf("%w: empty completion text",
			generation.ErrServiceInternal)
	}

	out := generation.CompletionResponse{
		Text:      text,
		ModelUsed: req.Settings.Model,
	}
	if resp.UsageMetadata != nil {
		out.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return out, nil
}

// classifyError maps SDK errors onto the generation error taxonomy.
// Unknown failures are treated as transient so the retry policy gets a
// chance; permanently failing requests still exhaust quickly.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", generation.ErrTimeout, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return fmt.Errorf("%w: %v", generation.ErrServiceUnavailable, err)
		case apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", generation.ErrServiceInternal, err)
		case apiErr.Code >= 400:
			return fmt.Errorf("%w: %v", generation.ErrContentBlocked, err)
		}
	}

	return fmt.Errorf("%w: %v", generation.ErrServiceUnavailable, err)
}
