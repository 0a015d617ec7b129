package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/easyfetch/packages/httperr"
)

// Exit codes for easyfetch CLI
const (
	// ExitSuccess indicates the request succeeded
	ExitSuccess = 0

	// ExitRequestFailure indicates the server answered with a non-2xx status
	ExitRequestFailure = 1

	// ExitValidationError indicates the request was rejected before sending
	ExitValidationError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error or timeout
	ExitNetworkError = 4

	// ExitSchemaMismatch indicates the response body failed --schema validation
	ExitSchemaMismatch = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the exit code for an error. Reported errors have already
// been printed by a formatter.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func reported(code int, err error) error {
	return &exitError{code: code, err: err, reported: true}
}

func isReported(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.reported
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	if e, ok := httperr.As(err); ok {
		return exitCodeForFailure(e)
	}

	return ExitUsageError
}

func exitCodeForFailure(e *httperr.Error) int {
	switch e.Kind {
	case httperr.KindValidation:
		return ExitValidationError
	case httperr.KindHTTP:
		return ExitRequestFailure
	default:
		return ExitNetworkError
	}
}
