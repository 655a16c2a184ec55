package assertions

import (
	"encoding/json"
	"fmt"

	"github.com/stretchr/testify/assert"
)

// Search evaluates a JMESPath expression against structured JSON data and
// returns the extracted value (nil when nothing matches).
func Search(expression string, data any) (any, error) {
	return defaultAsserter.Search(expression, data)
}

// ValueEquals asserts that evaluating expression against data yields a
// value equal to expected. Both the JSON kind and the value must match:
// a numeric string never equals a number even if their magnitudes agree.
func ValueEquals(t assert.TestingT, expected any, expression string, data any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return defaultAsserter.ValueEquals(t, expected, expression, data)
}

func (a *Asserter) Search(expression string, data any) (any, error) {
	return a.evaluator.Search(expression, data)
}

func (a *Asserter) ValueEquals(t assert.TestingT, expected any, expression string, data any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	result, err := a.evaluator.Search(expression, data)
	if err != nil {
		return fatal(t, fmt.Sprintf("expression %q: %v", expression, err))
	}

	want, err := normalizeValue(expected)
	if err != nil {
		return fatal(t, fmt.Sprintf("expected value: %v", err))
	}

	wantKind, gotKind := KindOf(want), KindOf(result)
	if wantKind != gotKind {
		return assert.Fail(t, fmt.Sprintf(
			"kind mismatch at %q: expected %s (%v), got %s (%v)",
			expression, wantKind, want, gotKind, result))
	}

	return assert.Equal(t, want, result, "value at %q", expression)
}

// normalizeValue rewrites a value into its canonical decoded-JSON form
// (float64 numbers, []any sequences, map[string]any mappings) so values
// built from Go literals compare equal to engine results.
func normalizeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("not a JSON-compatible value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
