package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultFetchTimeout bounds a single remote schema fetch.
	DefaultFetchTimeout = 10 * time.Second
	// DefaultFetchRate limits remote fetches per second.
	DefaultFetchRate = 5
	// maxSchemaBytes caps the size of a fetched schema document.
	maxSchemaBytes = 4 << 20
)

// Retriever fetches remote schema documents over HTTP with a rate limit
// and an optional cache so repeated runs do not refetch.
type Retriever struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *Cache
	ttl     time.Duration
}

// RetrieverOption is a functional option for configuring a Retriever.
type RetrieverOption func(*Retriever)

// WithHTTPClient replaces the HTTP client used for fetches.
func WithHTTPClient(client *http.Client) RetrieverOption {
	return func(r *Retriever) {
		r.client = client
	}
}

// WithFetchRate sets the maximum remote fetches per second.
func WithFetchRate(perSecond float64) RetrieverOption {
	return func(r *Retriever) {
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithCache stores fetched schemas in cache, serving entries younger than
// ttl without touching the network.
func WithCache(cache *Cache, ttl time.Duration) RetrieverOption {
	return func(r *Retriever) {
		r.cache = cache
		r.ttl = ttl
	}
}

func NewRetriever(opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		client:  &http.Client{Timeout: DefaultFetchTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultFetchRate), 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch returns the body of the schema document at url.
func (r *Retriever) Fetch(ctx context.Context, url string) ([]byte, error) {
	if r.cache != nil {
		if body, ok := r.cache.Get(url, r.ttl); ok {
			return body, nil
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/schema+json, application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSchemaBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	if r.cache != nil {
		_ = r.cache.Put(url, body)
	}
	return body, nil
}
