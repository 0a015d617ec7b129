package httperr

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// Code identifies a class of transport failure.
type Code string

const (
	CodeUnknown      Code = ""
	CodeConnRefused  Code = "ECONNREFUSED"
	CodeHostNotFound Code = "ENOTFOUND"
	CodeConnReset    Code = "ECONNRESET"
	CodeConnAborted  Code = "ECONNABORTED"
	CodeTimedOut     Code = "ETIMEDOUT"
)

// MessageTimedOut is the message reported for deadline failures.
const MessageTimedOut = "Request timed out"

type codeEntry struct {
	message    string
	statusCode int
}

// Host not found is a 404 on every path.
var codeTable = map[Code]codeEntry{
	CodeConnRefused:  {"Connection refused", 400},
	CodeHostNotFound: {"Host not found", 404},
	CodeConnReset:    {"Connection reset", 400},
	CodeConnAborted:  {"Connection aborted", 400},
	CodeTimedOut:     {MessageTimedOut, 408},
}

// Classify returns the transport code for err, looking through wrapped causes.
// Timeouts win over any errno carried alongside them.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CodeTimedOut
	}
	var timeout hasTimeout
	if errors.As(err, &timeout) && timeout.Timeout() {
		return CodeTimedOut
	}

	if errors.Is(err, context.Canceled) {
		return CodeConnAborted
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return CodeHostNotFound
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return CodeConnRefused
		case syscall.ECONNRESET, syscall.EPIPE:
			return CodeConnReset
		case syscall.ECONNABORTED:
			return CodeConnAborted
		case syscall.ETIMEDOUT:
			return CodeTimedOut
		}
	}

	// The peer hung up before a full response arrived.
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return CodeConnReset
	}

	return CodeUnknown
}

// FromCode builds the normalized error for a transport code. Unknown codes
// become 500s carrying the cause's message.
func FromCode(code Code, cause error) *Error {
	var e *Error
	if entry, ok := codeTable[code]; ok {
		e = New(entry.message, entry.statusCode, StatusError).WithCause(cause)
		e.Code = code
	} else if cause == nil {
		e = New("An unexpected error occurred", 500, StatusError)
	} else {
		e = New("Unexpected error: "+cause.Error(), 500, StatusError).WithCause(cause)
	}
	e.Kind = KindTransport
	return e
}

// FromTransport classifies err and normalizes it.
func FromTransport(err error) *Error {
	return FromCode(Classify(err), err)
}

// Timeout returns the normalized 408 error.
func Timeout() *Error {
	return FromCode(CodeTimedOut, context.DeadlineExceeded)
}

type hasTimeout interface {
	Timeout() bool
}
