// Package fetch is the convenience entry point for one-off requests.
//
// A Config may carry a structured body, which is serialized to JSON before the
// request is handed to the executor in package http. Every outcome is logged
// and, unlike a print-only helper, returned to the caller:
//
//	resp, err := fetch.Fetch(ctx, fetch.Config{
//		URL:    "http://example.test/x",
//		Method: "POST",
//		Body:   map[string]int{"a": 1},
//	})
//
// The error, when non-nil, is an *httperr.Error.
package fetch
