// Package domainerrors defines the error taxonomy shared by all prefill
// modules. Services classify failures with a Code; the transport layer owns
// the translation to HTTP status codes, nothing else interprets them.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies an error class, not a specific failure.
type Code string

const (
	// CodeInvalidInput marks request-level validation failures (missing
	// identifiers, unsupported SED type). Never retried.
	CodeInvalidInput Code = "invalid_input"

	// CodeNotFound marks an upstream record that simply does not exist
	// (no decision data, no qualifying document). Callers may degrade.
	CodeNotFound Code = "not_found"

	// CodeUnprocessable marks domain data that exists but cannot be used:
	// unparseable claim dates, unknown case types, missing legally
	// significant decision fields. Always propagated, never defaulted.
	CodeUnprocessable Code = "unprocessable"

	// CodeUpstream marks transport-level failures of a collaborator. These
	// must not be re-classified as domain errors on the way up.
	CodeUpstream Code = "upstream_unavailable"

	// CodeUnauthorized marks missing or invalid caller credentials.
	CodeUnauthorized Code = "unauthorized"

	// CodeInternal is the fallback for unclassified failures.
	CodeInternal Code = "internal"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. The cause stays
// reachable through errors.Is / errors.As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf extracts the Code from err, walking the wrap chain. Unclassified
// errors report CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
