package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// CheckResult is one evaluated check: a named request/assertion pair
// and its outcome.
type CheckResult struct {
	Name     string
	Passed   bool
	Err      error
	Duration time.Duration
}

// formatValue formats a value for display, truncating large values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	}
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

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

// FormatResults prints one line per check followed by a summary.
func (f *ConsoleFormatter) FormatResults(title string, results []CheckResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if title != "" {
		fmt.Fprintf(f.writer, "\n%s\n\n", bold(title))
	}

	passed := 0
	for _, r := range results {
		symbol := green("✓")
		if !r.Passed {
			symbol = red("✗")
		} else {
			passed++
		}

		fmt.Fprintf(f.writer, "  %s %s %s\n", symbol, r.Name, cyan(fmt.Sprintf("(%dms)", r.Duration.Milliseconds())))

		if !r.Passed && r.Err != nil {
			fmt.Fprintf(f.writer, "      %s\n", red(formatValue(r.Err.Error(), 200)))
		}
	}

	summary := fmt.Sprintf("%d passed, %d failed", passed, len(results)-passed)
	if passed == len(results) {
		fmt.Fprintf(f.writer, "\n%s\n", green(summary))
	} else {
		fmt.Fprintf(f.writer, "\n%s\n", red(summary))
	}
}
