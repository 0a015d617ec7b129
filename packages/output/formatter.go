package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
)

// Reporter receives the outcome of a request.
type Reporter interface {
	Report(req http.RequestConfig, outcome http.Outcome)
}

// Formatter is a Reporter that can also print CLI-level errors and banners.
type Formatter interface {
	Reporter
	FormatError(err error)
	FormatHeader(version string)
}

// New returns the formatter for the named format.
func New(format string, w io.Writer, noColor, verbose bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithNoColor(noColor), WithVerbose(verbose)), nil
	case "json":
		return NewJSONFormatter(WithJSONWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (use console or json)", format)
	}
}
