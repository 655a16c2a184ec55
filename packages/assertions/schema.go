package assertions

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// MatchesSchema asserts that content (a structured JSON value) validates
// against the JSON Schema document at schemaPath. On invalidity the test
// fails with one line per violated constraint plus the content serialized
// back to JSON. Schema retrieval, parse or $ref resolution problems halt
// the test instead.
func MatchesSchema(t assert.TestingT, schemaPath string, content any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return defaultAsserter.MatchesSchema(t, schemaPath, content)
}

// MatchesSchemaString is MatchesSchema for schema text instead of a
// schema file.
func MatchesSchemaString(t assert.TestingT, schemaText string, content any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return defaultAsserter.MatchesSchemaString(t, schemaText, content)
}

func (a *Asserter) MatchesSchema(t assert.TestingT, schemaPath string, content any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	sch, err := a.resolver.CompileFile(schemaPath)
	if err != nil {
		return fatal(t, fmt.Sprintf("schema %s: %v", schemaPath, err))
	}

	result, err := sch.Validate(content)
	if err != nil {
		return fatal(t, fmt.Sprintf("schema %s: %v", schemaPath, err))
	}

	if result.Valid {
		return true
	}
	return assert.Fail(t, "content does not match schema:\n"+result.FailureMessage(content))
}

func (a *Asserter) MatchesSchemaString(t assert.TestingT, schemaText string, content any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	// WriteFile returns only after the file is fully written and closed,
	// so resolution never sees a partial schema.
	path := filepath.Join(os.TempDir(), "jsonspec-schema-"+uuid.NewString()+".json")
	if err := os.WriteFile(path, []byte(schemaText), 0o600); err != nil {
		return fatal(t, fmt.Sprintf("failed to write schema temp file: %v", err))
	}
	defer func() { _ = os.Remove(path) }()

	return a.MatchesSchema(t, path, content)
}
