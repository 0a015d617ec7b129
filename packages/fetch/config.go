package fetch

import (
	"encoding/json"
	"fmt"

	"github.com/abdul-hamid-achik/easyfetch/packages/core/vars"
	"github.com/abdul-hamid-achik/easyfetch/packages/http"
)

// Config is a request whose body may be structured.
type Config struct {
	URL         string            `json:"url" yaml:"url"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        any               `json:"body,omitempty" yaml:"body,omitempty"`
	ContentType string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// SerializeBody turns a body into request text. Strings and byte slices are
// sent as-is, nil means no body, anything else is encoded as JSON.
func SerializeBody(body any) (string, error) {
	switch b := body.(type) {
	case nil:
		return "", nil
	case string:
		return b, nil
	case []byte:
		return string(b), nil
	case json.RawMessage:
		return string(b), nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to serialize body: %w", err)
	}
	return string(data), nil
}

// RequestConfig converts c into the executor's request shape.
func (c Config) RequestConfig() (http.RequestConfig, error) {
	body, err := SerializeBody(c.Body)
	if err != nil {
		return http.RequestConfig{}, err
	}
	return http.RequestConfig{
		URL:         c.URL,
		Method:      c.Method,
		Headers:     c.Headers,
		Body:        body,
		ContentType: c.ContentType,
	}, nil
}

// Expand returns a copy of c with placeholders in the URL, headers, content
// type and body resolved.
func (c Config) Expand(e *vars.Expander) Config {
	c.URL = e.Expand(c.URL)
	c.Headers = e.ExpandMap(c.Headers)
	c.ContentType = e.Expand(c.ContentType)
	c.Body = e.ExpandValue(c.Body)
	return c
}
