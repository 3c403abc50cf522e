package errors

import (
	stderrors "errors"
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for templating
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Kind returns the failure category of the error code.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// HTTPStatus returns the HTTP status for the error code.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata for i18n templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// Internal wraps an infrastructure failure. The cause keeps a stack trace
// for logs; the message stays generic.
func Internal(op string, cause error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: "internal error",
		Cause:   crdberrors.WrapWithDepth(1, cause, op),
	}
}

// As returns the domain error in err's chain, if any.
func As(err error) (*Error, bool) {
	var target *Error
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf returns the failure kind of err. Errors outside the domain are
// treated as internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if domainErr, ok := As(err); ok {
		return domainErr.Kind()
	}
	return KindInternal
}

// CodeOf returns the code of the domain error in err's chain.
func CodeOf(err error) Code {
	if domainErr, ok := As(err); ok {
		return domainErr.Code
	}
	return CodeUnknown
}

// Detail renders err with its full cause chain and any recorded stack.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	if domainErr, ok := As(err); ok && domainErr.Cause != nil {
		return fmt.Sprintf("%s: %+v", domainErr.Message, domainErr.Cause)
	}
	return fmt.Sprintf("%+v", err)
}
