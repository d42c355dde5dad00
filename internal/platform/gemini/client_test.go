package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/phrazzld/interview-prep-api/internal/generation"
)

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewClient(context.Background(), nil, "key")
	assert.Error(t, err)

	_, err = NewClient(context.Background(), logger, "")
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		want      error
		transient bool
	}{
		{
			name:      "quota exhausted maps to unavailable",
			err:       genai.APIError{Code: 429, Message: "quota exceeded"},
			want:      generation.ErrServiceUnavailable,
			transient: true,
		},
		{
			name:      "server error maps to internal",
			err:       genai.APIError{Code: 503, Message: "overloaded"},
			want:      generation.ErrServiceInternal,
			transient: true,
		},
		{
			name:      "client error maps to blocked",
			err:       genai.APIError{Code: 400, Message: "invalid argument"},
			want:      generation.ErrContentBlocked,
			transient: false,
		},
		{
			name:      "context cancellation maps to timeout",
			err:       context.Canceled,
			want:      generation.ErrTimeout,
			transient: true,
		},
		{
			name:      "unknown errors are assumed transient",
			err:       errors.New("connection reset"),
			want:      generation.ErrServiceUnavailable,
			transient: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := classifyError(tc.err)
			assert.ErrorIs(t, got, tc.want)
			assert.Equal(t, tc.transient, generation.IsTransient(got))
		})
	}
}
