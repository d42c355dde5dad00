package generation

import (
	"context"

	"github.com/phrazzld/interview-prep-api/internal/domain"
)

// CompletionRequest is the abstract outbound call shape: a rendered
// instruction pair plus the model invocation settings forwarded verbatim.
type CompletionRequest struct {
	System   string
	User     string
	Settings domain.ModelSettings
}

// CompletionResponse is the abstract provider response: the raw
// completion text plus the token-usage counters and the model actually
// used, exposed unchanged for cost accounting.
type CompletionResponse struct {
	Text         string
	InputTokens  int
	OutputTokens int
	ModelUsed    string
}

// Client is the boundary to the external completion service. Errors
// returned by implementations must wrap one of the package sentinel
// errors so the retry policy can classify them.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}
