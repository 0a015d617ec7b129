// Package httperr normalizes request failures into a single error shape.
//
// Every failure the executor can produce is reported as an *Error:
//   - Validation failures (400)
//   - Non-2xx HTTP responses (the response status code)
//   - Transport failures, classified by Code (400, 404, 408 or 500)
package httperr
