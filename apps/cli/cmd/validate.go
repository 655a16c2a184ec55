package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jsonspec/jsonspec/packages/batch"
	"github.com/jsonspec/jsonspec/packages/output"
	"github.com/jsonspec/jsonspec/packages/schema"
)

var (
	validateSchemaPath  string
	validateFragDirs    []string
	validateCachePath   string
	validateWatch       bool
	validateStats       bool
	validateVerbose     bool
	validateNoColor     bool
	validateJSON        bool
	validateConcurrency int
)

var validateCmd = &cobra.Command{
	Use:   "validate --schema <schema> <file|directory>...",
	Short: "Validate JSON/YAML documents against a JSON Schema",
	Long: `Validate JSON or YAML documents against a JSON Schema document.

Examples:
  jsonspec validate --schema user.schema.json user.json
  jsonspec validate --schema api.schema.json ./responses/
  jsonspec validate --schema api.schema.json ./responses/ --watch
  jsonspec validate --schema api.schema.json ./responses/ --stats --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "path to the JSON Schema document (required)")
	validateCmd.Flags().StringSliceVar(&validateFragDirs, "fragments", nil, "extra directories of schema fragments for $ref resolution")
	validateCmd.Flags().StringVar(&validateCachePath, "cache", "", "sqlite file for caching remote schema refs")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "re-validate when documents change")
	validateCmd.Flags().BoolVar(&validateStats, "stats", false, "print validation timing percentiles")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "print passing documents too")
	validateCmd.Flags().BoolVar(&validateNoColor, "no-color", false, "disable colored output")
	validateCmd.Flags().BoolVar(&validateJSON, "output-json", false, "write results as JSON")
	validateCmd.Flags().IntVar(&validateConcurrency, "concurrency", 0, "max documents validated in parallel (default: CPU count)")
	_ = validateCmd.MarkFlagRequired("schema")
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .json, .yaml or .yml files found")
	}

	resolver, cleanup, err := buildResolver()
	if err != nil {
		return err
	}
	defer cleanup()

	var opts []batch.RunnerOption
	opts = append(opts, batch.WithResolver(resolver))
	if validateConcurrency > 0 {
		opts = append(opts, batch.WithConcurrency(validateConcurrency))
	}
	runner := batch.NewRunner(opts...)

	formatter := output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(validateVerbose),
		output.WithNoColor(validateNoColor),
	)

	runOnce := func() (bool, error) {
		summary, err := runner.Run(cmd.Context(), validateSchemaPath, files)
		if err != nil {
			return false, err
		}
		if validateJSON {
			if err := output.WriteJSON(cmd.OutOrStdout(), summary); err != nil {
				return false, err
			}
		} else {
			formatter.FormatSummary(summary, validateStats)
		}
		return summary.Passed(), nil
	}

	if validateWatch {
		return watchAndValidate(cmd.Context(), files, formatter, runOnce)
	}

	passed, err := runOnce()
	if err != nil {
		formatter.FormatError(err)
		cleanup()
		os.Exit(ExitSchemaError)
	}
	if !passed {
		cleanup()
		os.Exit(ExitInvalid)
	}
	return nil
}

func buildResolver() (*schema.Resolver, func(), error) {
	cleanup := func() {}

	var retrieverOpts []schema.RetrieverOption
	if validateCachePath != "" {
		cache, err := schema.OpenCache(validateCachePath)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = cache.Close() }
		retrieverOpts = append(retrieverOpts, schema.WithCache(cache, 24*time.Hour))
	}

	resolver := schema.NewResolver(
		schema.WithFragmentDirs(validateFragDirs...),
		schema.WithRetriever(schema.NewRetriever(retrieverOpts...)),
	)
	return resolver, cleanup, nil
}

func watchAndValidate(ctx context.Context, files []string, formatter *output.ConsoleFormatter, runOnce func() (bool, error)) error {
	if _, err := runOnce(); err != nil {
		formatter.FormatError(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watchedDirs := make(map[string]bool)
	watchTargets := append([]string{validateSchemaPath}, files...)
	for _, file := range watchTargets {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				formatter.FormatError(fmt.Errorf("failed to watch %s: %w", dir, err))
			}
			watchedDirs[dir] = true
		}
	}

	var debounce *time.Timer
	events := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case events <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(err)
		case <-events:
			if _, err := runOnce(); err != nil {
				formatter.FormatError(err)
			}
		}
	}
}

func collectFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if isDocumentExt(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func isDocumentExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
