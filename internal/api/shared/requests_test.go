package shared_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/interview-prep-api/internal/api/shared"
)

type samplePayload struct {
	Name  string `json:"name"  validate:"required,min=3"`
	Count int    `json:"count" validate:"gte=1,lte=20"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid document", body: `{"name":"abc","count":5}`, wantErr: false},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "trailing data rejected", body: `{"name":"abc"}{"name":"def"}`, wantErr: true},
		{name: "trailing whitespace tolerated", body: `{"name":"abc"}` + "\n", wantErr: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			var payload samplePayload
			err := shared.DecodeJSON(req, &payload)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	require.NoError(t, shared.ValidateRequest(samplePayload{Name: "abc", Count: 5}))

	err := shared.ValidateRequest(samplePayload{Name: "ab", Count: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
}
