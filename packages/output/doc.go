// Package output renders request outcomes.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: The success or error shape as a JSON document
package output
