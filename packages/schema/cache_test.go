package schema

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_PutGet(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "schemas.db"))
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	_, ok := cache.Get("https://example.com/a.json", time.Hour)
	assert.False(t, ok)

	require.NoError(t, cache.Put("https://example.com/a.json", []byte(`{"type":"string"}`)))

	body, ok := cache.Get("https://example.com/a.json", time.Hour)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"type":"string"}`), body)
}

func TestCache_Replace(t *testing.T) {
	cache, err := OpenCache(":memory:")
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	require.NoError(t, cache.Put("u", []byte("old")))
	require.NoError(t, cache.Put("u", []byte("new")))

	body, ok := cache.Get("u", 0)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), body)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, err := OpenCache(":memory:")
	require.NoError(t, err)
	defer func() { _ = cache.Close() }()

	require.NoError(t, cache.Put("u", []byte("body")))

	// Zero TTL disables expiry; a negative window always expires.
	_, ok := cache.Get("u", 0)
	assert.True(t, ok)

	_, ok = cache.Get("u", -time.Second)
	assert.False(t, ok)
}
