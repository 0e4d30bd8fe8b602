// Package apperr defines the error taxonomy shared by all domain packages.
// Handlers translate these errors into HTTP responses via pkg/response.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a request-scoped failure with a stable machine code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details any

	parent *Error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors derived via WithDetails/WithMessage match their sentinel.
func (e *Error) Unwrap() error {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// WithDetails returns a copy carrying details that still matches e with errors.Is.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	cp.parent = e
	return &cp
}

// WithMessage returns a copy with a formatted message that still matches e with errors.Is.
func (e *Error) WithMessage(format string, args ...any) *Error {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	cp.parent = e
	return &cp
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error   { return newError(KindValidation, code, message) }
func NotFound(code, message string) *Error     { return newError(KindNotFound, code, message) }
func Conflict(code, message string) *Error     { return newError(KindConflict, code, message) }
func Forbidden(code, message string) *Error    { return newError(KindForbidden, code, message) }
func Unauthorized(code, message string) *Error { return newError(KindUnauthorized, code, message) }

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
