package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// StatusError is the status label carried by every normalized error
	StatusError = "error"
	// DefaultMessage is used when no message is supplied
	DefaultMessage = "Internal Server Error"
	// DefaultStatusCode is used when no status code is supplied
	DefaultStatusCode = 500
)

// Kind says which stage of a request produced an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindHTTP
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindHTTP:
		return "http"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the uniform failure shape: {status, error, statusCode}.
type Error struct {
	Status     string `json:"status"`
	Message    string `json:"error"`
	StatusCode int    `json:"statusCode"`

	Kind Kind `json:"-"`
	// Code is the transport code the error was built from, empty for
	// validation and HTTP status failures.
	Code Code `json:"-"`

	cause error
}

// New builds an Error, filling in the defaults for any zero argument.
func New(message string, statusCode int, status string) *Error {
	if message == "" {
		message = DefaultMessage
	}
	if statusCode == 0 {
		statusCode = DefaultStatusCode
	}
	if status == "" {
		status = StatusError
	}
	return &Error{
		Status:     status,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Validation returns a 400 error for rejected input.
func Validation(message string) *Error {
	e := New(message, 400, StatusError)
	e.Kind = KindValidation
	return e
}

// FromStatus reports a response whose status is outside [200,300).
func FromStatus(statusCode int, body string) *Error {
	e := New(fmt.Sprintf("HTTP Error: %d - %s", statusCode, body), statusCode, StatusError)
	e.Kind = KindHTTP
	return e
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error so callers can inspect it with errors.Is/As.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// JSON returns the error encoded in its wire shape.
func (e *Error) JSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// From returns err as an *Error, normalizing anything else as a transport failure.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return FromTransport(err)
}
