package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
	"github.com/fatih/color"
)

// truncate shortens s to maxLen bytes, marking the cut
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
	maxBody int
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

// WithMaxBody truncates printed response bodies; zero prints them whole.
func WithMaxBody(n int) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.maxBody = n
	}
}

func (f *ConsoleFormatter) Report(req http.RequestConfig, outcome http.Outcome) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	req = req.WithDefaults()

	if !outcome.OK() {
		e := outcome.Failure
		fmt.Fprintf(f.writer, "%s %s %s %s\n", red("✗"), bold(req.Method), req.URL, red(fmt.Sprintf("(%d)", e.StatusCode)))
		fmt.Fprintf(f.writer, "  %s %s\n", red("Error:"), e.Message)
		return
	}

	s := outcome.Success
	fmt.Fprintf(f.writer, "%s %s %s %s %s\n", green("✓"), bold(req.Method), req.URL, green(s.Status), cyan("("+s.Time+")"))

	if f.verbose && len(s.Headers) > 0 {
		for k, v := range s.Headers {
			fmt.Fprintf(f.writer, "  %s: %s\n", k, v)
		}
	}

	if s.Data != "" {
		fmt.Fprintf(f.writer, "%s\n", truncate(s.Data, f.maxBody))
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("easyfetch"), version)
}
