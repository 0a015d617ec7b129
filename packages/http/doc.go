// Package http executes single HTTP/HTTPS requests and normalizes the outcome.
//
// It wraps the standard library's http package with:
//   - Request validation (URL present, supported method)
//   - Protocol-based transport selection
//   - Default header assembly with caller overrides
//   - A fixed per-client timeout reported as a 408
//   - Success results carrying the raw body and a formatted duration
//
// Redirects are not followed and connections are not reused.
package http
