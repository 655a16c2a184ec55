package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonspec/jsonspec/packages/schema"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", `{
		"type": "object",
		"properties": {"id": {"type": "integer"}},
		"required": ["id"]
	}`)

	files := []string{
		writeFile(t, dir, "ok1.json", `{"id": 1}`),
		writeFile(t, dir, "ok2.yaml", "id: 2\n"),
		writeFile(t, dir, "bad.json", `{"id": "three"}`),
		writeFile(t, dir, "broken.json", `{"id":`),
	}

	summary, err := NewRunner(WithConcurrency(2)).Run(context.Background(), schemaPath, files)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Valid)
	assert.Equal(t, 1, summary.Invalid)
	assert.Equal(t, 1, summary.Errored)
	assert.False(t, summary.Passed())

	// Results keep input order.
	require.Len(t, summary.Results, 4)
	assert.Equal(t, files[0], summary.Results[0].File)
	assert.True(t, summary.Results[0].Result.Valid)
	assert.False(t, summary.Results[2].Result.Valid)
	assert.Error(t, summary.Results[3].Err)

	assert.GreaterOrEqual(t, summary.P95, summary.P50)
}

func TestRunner_RunAllValid(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", `{"type": "integer"}`)

	files := []string{
		writeFile(t, dir, "a.json", `1`),
		writeFile(t, dir, "b.json", `2`),
	}

	summary, err := NewRunner().Run(context.Background(), schemaPath, files)
	require.NoError(t, err)
	assert.True(t, summary.Passed())
	assert.Equal(t, 2, summary.Valid)
}

func TestRunner_RunBadSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", `{"$ref": "missing.json"}`)

	_, err := NewRunner().Run(context.Background(), schemaPath, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSchemaResolution)
}

func TestRunner_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", `{"type": "integer"}`)
	file := writeFile(t, dir, "a.json", `1`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, schemaPath, []string{file})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
