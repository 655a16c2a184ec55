// Package batch validates many JSON/YAML documents against one schema
// concurrently and aggregates per-file results with timing percentiles.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jsonspec/jsonspec/packages/schema"
)

// FileResult holds the outcome for a single document.
type FileResult struct {
	File     string
	Result   *schema.Result
	Err      error
	Duration time.Duration
}

// Summary aggregates a batch run.
type Summary struct {
	Total   int
	Valid   int
	Invalid int
	Errored int
	P50     time.Duration
	P95     time.Duration
	P99     time.Duration
	Results []*FileResult
}

// Passed reports whether every document validated cleanly.
func (s *Summary) Passed() bool {
	return s.Invalid == 0 && s.Errored == 0
}

// Runner validates documents against a compiled schema.
type Runner struct {
	resolver    *schema.Resolver
	concurrency int
}

// RunnerOption is a functional option for configuring a Runner.
type RunnerOption func(*Runner)

// WithResolver replaces the schema resolver.
func WithResolver(r *schema.Resolver) RunnerOption {
	return func(rn *Runner) {
		rn.resolver = r
	}
}

// WithConcurrency caps the number of documents validated in parallel.
func WithConcurrency(n int) RunnerOption {
	return func(rn *Runner) {
		rn.concurrency = n
	}
}

func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		resolver:    schema.NewResolver(),
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	return r
}

// Run compiles the schema at schemaPath once and validates every file
// against it. Per-file read/parse problems are recorded in the file's
// result rather than aborting the batch; only schema compilation errors
// and context cancellation abort.
func (r *Runner) Run(ctx context.Context, schemaPath string, files []string) (*Summary, error) {
	sch, err := r.resolver.CompileFile(schemaPath)
	if err != nil {
		return nil, err
	}

	// Histogram range 1us to 60s, matching per-document validation times.
	hist := hdrhistogram.New(1, 60_000_000, 3)
	var histMu sync.Mutex

	results := make([]*FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			start := time.Now()
			fr := validateFile(sch, file)
			fr.Duration = time.Since(start)
			results[i] = fr

			histMu.Lock()
			_ = hist.RecordValue(fr.Duration.Microseconds())
			histMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Total:   len(files),
		Results: results,
		P50:     time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond,
		P95:     time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:     time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond,
	}
	for _, fr := range results {
		switch {
		case fr.Err != nil:
			summary.Errored++
		case fr.Result.Valid:
			summary.Valid++
		default:
			summary.Invalid++
		}
	}
	return summary, nil
}

func validateFile(sch *schema.Schema, file string) *FileResult {
	fr := &FileResult{File: file}

	raw, err := os.ReadFile(file)
	if err != nil {
		fr.Err = fmt.Errorf("failed to read %s: %w", file, err)
		return fr
	}

	content, err := decodeDocument(raw)
	if err != nil {
		fr.Err = fmt.Errorf("failed to parse %s: %w", file, err)
		return fr
	}

	result, err := sch.Validate(content)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.Result = result
	return fr
}

// decodeDocument parses document bytes as JSON first, then YAML.
func decodeDocument(raw []byte) (any, error) {
	var content any
	if err := json.Unmarshal(raw, &content); err != nil {
		if yerr := yaml.Unmarshal(raw, &content); yerr != nil {
			return nil, fmt.Errorf("not valid JSON (%v) or YAML (%v)", err, yerr)
		}
	}
	return content, nil
}
