package xornal

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EINTERNAL = "internal"

	// Transport failures reported by a Fetcher.
	ETIMEOUT    = "timeout"
	ECONNECTION = "connection"
	ETRANSPORT  = "transport"
	EHTTP       = "http"

	// Extraction failures reported by normalizers and reducers.
	EMALFORMED  = "malformed"
	EINCOMPLETE = "incomplete"
	EEMPTY      = "empty"
	EEXTRACT    = "extract"

	// ESKIPPED marks input that is deliberately ignored, not a failure.
	ESKIPPED = "skipped"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("xornal error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("xornal error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrapf is like Errorf but records err as the underlying cause.
func Wrapf(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// IsTransport reports whether err is a network or HTTP status failure
// returned by a Fetcher.
func IsTransport(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, ECONNECTION, ETRANSPORT, EHTTP:
		return true
	}
	return false
}
