package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/jsonspec/jsonspec/packages/batch"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatSummary(summary *batch.Summary, stats bool) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for _, fr := range summary.Results {
		switch {
		case fr.Err != nil:
			fmt.Fprintf(f.writer, "%s %s: %v\n", yellow("ERROR"), fr.File, fr.Err)
		case fr.Result.Valid:
			if f.verbose {
				fmt.Fprintf(f.writer, "%s %s\n", green("PASS"), fr.File)
			}
		default:
			fmt.Fprintf(f.writer, "%s %s\n", red("FAIL"), fr.File)
			for _, e := range fr.Result.Errors {
				fmt.Fprintf(f.writer, "  - Property: %s, Constraint: %s, Message: %s\n",
					e.Property, e.Constraint, e.Message)
			}
		}
	}

	fmt.Fprintf(f.writer, "\n%s %d total, %s, %s, %s\n",
		bold("Documents:"),
		summary.Total,
		green(fmt.Sprintf("%d valid", summary.Valid)),
		red(fmt.Sprintf("%d invalid", summary.Invalid)),
		yellow(fmt.Sprintf("%d errored", summary.Errored)))

	if stats {
		fmt.Fprintf(f.writer, "%s p50=%s p95=%s p99=%s\n",
			bold("Timing:"), summary.P50, summary.P95, summary.P99)
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}
