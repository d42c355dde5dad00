package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate caches struct tag metadata; one instance serves all requests.
var validate = validator.New()

// DecodeJSON decodes the request body into dst. The body must be a
// single JSON document; trailing content is rejected.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	if dec.More() {
		return errors.New("decoding request body: trailing data after JSON document")
	}
	return nil
}

// ValidateRequest checks dst against its `validate` struct tags. The
// returned error carries the failing field names and is safe to echo to
// the client.
func ValidateRequest(dst any) error {
	return validate.Struct(dst)
}
