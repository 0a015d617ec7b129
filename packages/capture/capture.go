package capture

import (
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

type Extractor struct {
	response *http.Success
	bodyJSON gjson.Result
}

func NewExtractor(resp *http.Success) *Extractor {
	e := &Extractor{
		response: resp,
	}
	if gjson.Valid(resp.Data) {
		e.bodyJSON = gjson.Parse(resp.Data)
	}
	return e
}

// Query extracts a value from the response. An empty path yields the whole
// body; "status", "time" and "header.<name>" address the result itself;
// anything else is a gjson path into a JSON body.
func (e *Extractor) Query(path string) (any, bool) {
	switch {
	case path == "":
		return e.response.Data, true
	case path == "status":
		return e.response.Status, true
	case path == "time":
		return e.response.Time, true
	case strings.HasPrefix(path, "header."):
		return e.extractFromHeader(strings.TrimPrefix(path, "header."))
	default:
		return e.extractFromBody(path)
	}
}

func (e *Extractor) extractFromBody(path string) (any, bool) {
	if !e.bodyJSON.Exists() {
		return nil, false
	}

	result := e.bodyJSON.Get(path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

func (e *Extractor) extractFromHeader(name string) (any, bool) {
	value := e.response.Header(name)
	if value == "" {
		return nil, false
	}
	return value, true
}

// QueryString renders a query result for printing; JSON values keep their raw text.
func (e *Extractor) QueryString(path string) (string, bool) {
	if path != "" && path != "status" && path != "time" && !strings.HasPrefix(path, "header.") {
		if !e.bodyJSON.Exists() {
			return "", false
		}
		result := e.bodyJSON.Get(path)
		if !result.Exists() {
			return "", false
		}
		if result.Type == gjson.String {
			return result.Str, true
		}
		return result.Raw, true
	}

	v, ok := e.Query(path)
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// ValidateSchema checks the response body against a JSON schema.
// It returns the list of violations, empty when the body conforms. A body
// that is not JSON is a violation; the error is reserved for a bad schema.
func ValidateSchema(resp *http.Success, schema []byte) ([]string, error) {
	if !gjson.Valid(resp.Data) {
		return []string{"response body is not valid JSON"}, nil
	}

	schemaLoader := gojsonschema.NewBytesLoader(schema)
	documentLoader := gojsonschema.NewStringLoader(resp.Data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}

// ValidateSchemaFile is ValidateSchema with the schema read from path.
func ValidateSchemaFile(resp *http.Success, path string) ([]string, error) {
	schema, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return ValidateSchema(resp, schema)
}
