package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled, fully resolvable schema ready for repeated
// validation.
type Schema struct {
	compiled *gojsonschema.Schema
}

// ValidationError describes a single violated constraint.
type ValidationError struct {
	Property   string `json:"property"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// Result holds the outcome of validating one document.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Validate checks content (a structured JSON value, not raw text) against
// the schema. A non-nil error means validation could not run at all;
// constraint violations are reported through the Result.
func (s *Schema) Validate(content any) (*Result, error) {
	if s == nil || s.compiled == nil {
		return nil, fmt.Errorf("schema not compiled")
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content to JSON: %w", err)
	}

	outcome, err := s.compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	result := &Result{Valid: outcome.Valid()}
	for _, verr := range outcome.Errors() {
		result.Errors = append(result.Errors, ValidationError{
			Property:   verr.Field(),
			Constraint: verr.Type(),
			Message:    verr.Description(),
		})
	}
	return result, nil
}

// FailureMessage renders the validation errors as a multi-line message:
// one line per violation, then the offending content serialized back to
// JSON on a final Response line.
func (r *Result) FailureMessage(content any) string {
	var b strings.Builder
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "- Property: %s, Constraint: %s, Message: %s\n", e.Property, e.Constraint, e.Message)
	}

	raw, err := json.Marshal(content)
	if err != nil {
		fmt.Fprintf(&b, "- Response: %v", content)
		return b.String()
	}
	fmt.Fprintf(&b, "- Response: %s", raw)
	return b.String()
}
