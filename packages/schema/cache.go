package schema

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Cache is a sqlite-backed store for fetched remote schema documents,
// keyed by URL with a fetched-at timestamp for TTL checks.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) a schema cache at path. Use
// ":memory:" for an ephemeral cache.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS schemas (
		url        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the cached body for url if present and younger than ttl.
// A ttl of zero disables expiry.
func (c *Cache) Get(url string, ttl time.Duration) ([]byte, bool) {
	var body []byte
	var fetchedAt int64

	row := c.db.QueryRow("SELECT body, fetched_at FROM schemas WHERE url = ?", url)
	if err := row.Scan(&body, &fetchedAt); err != nil {
		return nil, false
	}

	if ttl != 0 && time.Since(time.Unix(fetchedAt, 0)) > ttl {
		return nil, false
	}
	return body, true
}

// Put stores or replaces the cached body for url.
func (c *Cache) Put(url string, body []byte) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO schemas (url, body, fetched_at) VALUES (?, ?, ?)",
		url, body, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", url, err)
	}
	return nil
}
