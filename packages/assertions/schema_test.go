package assertions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonspec/jsonspec/packages/schema"
)

const objectSchema = `{
	"type": "object",
	"properties": {"foo": {"type": "integer"}},
	"required": ["foo"]
}`

func writeSchemaFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestMatchesSchema_Valid(t *testing.T) {
	path := writeSchemaFile(t, objectSchema)

	ok := MatchesSchema(t, path, map[string]any{"foo": 1})
	assert.True(t, ok)
}

func TestMatchesSchema_Invalid(t *testing.T) {
	path := writeSchemaFile(t, objectSchema)

	m := &mockT{}
	ok := MatchesSchema(m, path, map[string]any{"foo": "1"})

	assert.False(t, ok)
	assert.True(t, m.failed)
	assert.Contains(t, m.output(), "- Property: foo, Constraint: ")
	assert.Contains(t, m.output(), `- Response: {"foo":"1"}`)
}

func TestMatchesSchema_OneLinePerViolation(t *testing.T) {
	path := writeSchemaFile(t, `{
		"type": "object",
		"properties": {
			"foo": {"type": "integer"},
			"bar": {"type": "string"}
		},
		"required": ["foo", "bar"]
	}`)

	m := &mockT{}
	MatchesSchema(m, path, map[string]any{"foo": "1", "bar": 2})

	out := m.output()
	assert.Contains(t, out, "- Property: foo, Constraint: ")
	assert.Contains(t, out, "- Property: bar, Constraint: ")
	assert.Contains(t, out, "- Response: ")
}

func TestMatchesSchema_MissingFileHalts(t *testing.T) {
	h := &haltT{}
	ok := MatchesSchema(h, filepath.Join(t.TempDir(), "nope.json"), map[string]any{})

	assert.False(t, ok)
	assert.True(t, h.halted)
	assert.Contains(t, h.output(), "retrieval")
}

func TestMatchesSchema_MalformedSchemaHalts(t *testing.T) {
	path := writeSchemaFile(t, `{"type": "object",`)

	h := &haltT{}
	ok := MatchesSchema(h, path, map[string]any{})

	assert.False(t, ok)
	assert.True(t, h.halted)
}

func TestMatchesSchemaString_IntegerScenario(t *testing.T) {
	ok := MatchesSchemaString(t, `{"type": "integer"}`, 5)
	assert.True(t, ok)
}

func TestMatchesSchemaString_Invalid(t *testing.T) {
	m := &mockT{}
	ok := MatchesSchemaString(m, `{"type": "integer"}`, "5")

	assert.False(t, ok)
	assert.True(t, m.failed)
}

func TestMatchesSchemaString_EquivalentToFile(t *testing.T) {
	content := map[string]any{"foo": "1"}

	fromFile := &mockT{}
	MatchesSchema(fromFile, writeSchemaFile(t, objectSchema), content)

	fromString := &mockT{}
	MatchesSchemaString(fromString, objectSchema, content)

	// Identical failure detail regardless of entry point. The caller
	// trace above the detail differs, so compare from the marker on.
	extract := func(m *mockT) string {
		out := m.output()
		i := strings.Index(out, "content does not match schema:")
		require.GreaterOrEqual(t, i, 0)
		return out[i:]
	}
	assert.Equal(t, extract(fromFile), extract(fromString))
}

func TestAsserter_CustomResolverFragments(t *testing.T) {
	fragDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(fragDir, "name.json"), []byte(`{
		"$id": "https://example.com/defs/name.json",
		"type": "string",
		"minLength": 2
	}`), 0o600))

	path := writeSchemaFile(t, `{
		"type": "object",
		"properties": {"name": {"$ref": "https://example.com/defs/name.json"}}
	}`)

	a := New(WithResolver(schema.NewResolver(schema.WithFragmentDirs(fragDir))))
	assert.True(t, a.MatchesSchema(t, path, map[string]any{"name": "ok"}))

	m := &mockT{}
	assert.False(t, a.MatchesSchema(m, path, map[string]any{"name": "x"}))
}
