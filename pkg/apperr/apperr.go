package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for the API boundary.
type Code string

const (
	// CodeNotFound marks a referenced entity that is absent, inactive or
	// soft-deleted. Resolvers treat it as deny, not as a crash.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnauthorized marks a missing identity or insufficient role.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeConfiguration marks a broken setup (e.g. a client with no queue).
	// Fatal to the attempt; retrying does not help.
	CodeConfiguration Code = "CONFIGURATION"
	// CodeTransient marks a store failure that is safe to retry at the
	// boundary. The core itself never retries.
	CodeTransient Code = "TRANSIENT"
	// CodeInternal marks everything else.
	CodeInternal Code = "INTERNAL"
)

// Error carries a code alongside the message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a coded error
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps an existing error with a code and message
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// HTTPStatus maps a code to the status the boundary should respond with.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConfiguration:
		return http.StatusUnprocessableEntity
	case CodeTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
