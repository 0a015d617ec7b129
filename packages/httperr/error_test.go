package httperr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	e := New("", 0, "")

	assert.Equal(t, "error", e.Status)
	assert.Equal(t, "Internal Server Error", e.Message)
	assert.Equal(t, 500, e.StatusCode)
}

func TestNew_KeepsValues(t *testing.T) {
	e := New("HTTP Error: 418 - teapot", 418, "error")

	assert.Equal(t, "HTTP Error: 418 - teapot", e.Error())
	assert.Equal(t, 418, e.StatusCode)
	assert.JSONEq(t, `{"status":"error","error":"HTTP Error: 418 - teapot","statusCode":418}`, string(e.JSON()))
}

func TestValidation(t *testing.T) {
	e := Validation("URL is required")

	assert.Equal(t, 400, e.StatusCode)
	assert.Equal(t, "URL is required", e.Message)
	assert.Equal(t, KindValidation, e.Kind)
}

func TestFromStatus(t *testing.T) {
	e := FromStatus(503, "maintenance")

	assert.Equal(t, 503, e.StatusCode)
	assert.Equal(t, "HTTP Error: 503 - maintenance", e.Message)
	assert.Equal(t, KindHTTP, e.Kind)
	assert.Equal(t, "http", e.Kind.String())
	assert.Equal(t, CodeUnknown, e.Code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeUnknown},
		{"plain error", errors.New("boom"), CodeUnknown},
		{"deadline", context.DeadlineExceeded, CodeTimedOut},
		{"wrapped deadline", &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}, CodeTimedOut},
		{"errno timeout", syscall.ETIMEDOUT, CodeTimedOut},
		{"canceled", fmt.Errorf("do: %w", context.Canceled), CodeConnAborted},
		{"refused", &url.Error{Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}}, CodeConnRefused},
		{"reset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, CodeConnReset},
		{"aborted", syscall.ECONNABORTED, CodeConnAborted},
		{"dns", &url.Error{Err: &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}}}, CodeHostNotFound},
		{"dns timeout", &net.DNSError{Err: "i/o timeout", IsTimeout: true}, CodeTimedOut},
		{"dns temporary", &net.OpError{Op: "dial", Err: &net.DNSError{Err: "server misbehaving", IsTemporary: true}}, CodeUnknown},
		{"eof", &url.Error{Op: "Get", Err: io.EOF}, CodeConnReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFromTransport_TemporaryDNSFailure(t *testing.T) {
	err := FromTransport(&net.OpError{Op: "dial", Err: &net.DNSError{Err: "server misbehaving", Name: "api.local", IsTemporary: true}})

	assert.Equal(t, 500, err.StatusCode)
	assert.Equal(t, "Unexpected error: dial: lookup api.local: server misbehaving", err.Message)
	assert.Equal(t, KindTransport, err.Kind)
}

func TestFromCode(t *testing.T) {
	tests := []struct {
		code       Code
		message    string
		statusCode int
	}{
		{CodeConnRefused, "Connection refused", 400},
		{CodeHostNotFound, "Host not found", 404},
		{CodeConnReset, "Connection reset", 400},
		{CodeConnAborted, "Connection aborted", 400},
		{CodeTimedOut, "Request timed out", 408},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			e := FromCode(tt.code, nil)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, tt.statusCode, e.StatusCode)
			assert.Equal(t, "error", e.Status)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, KindTransport, e.Kind)
		})
	}
}

func TestFromCode_Unknown(t *testing.T) {
	cause := errors.New("tls: handshake failure")

	e := FromCode(CodeUnknown, cause)
	assert.Equal(t, 500, e.StatusCode)
	assert.Equal(t, "Unexpected error: tls: handshake failure", e.Message)
	assert.ErrorIs(t, e, cause)

	e = FromCode(CodeUnknown, nil)
	assert.Equal(t, "An unexpected error occurred", e.Message)
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	original := Validation("bad")
	wrapped := fmt.Errorf("request: %w", original)
	got := From(wrapped)
	require.NotNil(t, got)
	assert.Same(t, original, got)

	got = From(syscall.ECONNREFUSED)
	assert.Equal(t, 400, got.StatusCode)
	assert.Equal(t, "Connection refused", got.Message)
}

func TestTimeout(t *testing.T) {
	e := Timeout()

	assert.Equal(t, 408, e.StatusCode)
	assert.Equal(t, "Request timed out", e.Message)
	assert.ErrorIs(t, e, context.DeadlineExceeded)
}
