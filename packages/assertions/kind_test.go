package assertions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected Kind
	}{
		{"nil", nil, KindNull},
		{"bool", true, KindBoolean},
		{"float64", float64(1.5), KindNumber},
		{"int", 42, KindNumber},
		{"string", "x", KindString},
		{"numeric string", "42", KindString},
		{"slice", []any{1}, KindArray},
		{"typed slice", []string{"a"}, KindArray},
		{"map", map[string]any{}, KindObject},
		{"struct", struct{ A int }{1}, KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.value))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "boolean", KindBoolean.String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "string", KindString.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "object", KindObject.String())
}
