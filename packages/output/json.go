package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
)

// JSONFormatter writes each outcome as one JSON document: the success shape
// {status, data, time} or the error shape {status, error, statusCode}.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		indent: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithJSONWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func WithIndent(indent bool) JSONOption {
	return func(f *JSONFormatter) {
		f.indent = indent
	}
}

func (f *JSONFormatter) Report(_ http.RequestConfig, outcome http.Outcome) {
	enc := json.NewEncoder(f.writer)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(outcome)
}

func (f *JSONFormatter) FormatError(err error) {
	enc := json.NewEncoder(f.writer)
	_ = enc.Encode(map[string]string{"status": "error", "error": err.Error()})
}

func (f *JSONFormatter) FormatHeader(string) {}
