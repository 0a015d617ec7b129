// Package capture inspects successful responses.
//
// It supports:
//   - Querying the body with gjson paths
//   - Reading the status, timing and response headers
//   - Validating the body against a JSON schema
package capture
