// Package apperror defines the error kinds services hand back to the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindInactive
	KindNotFound
	KindPermission
	KindUpstream
	KindUpstreamTimeout
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindInactive:
		return "inactive"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindUpstream:
		return "upstream"
	case KindUpstreamTimeout:
		return "upstream_timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "internal"
	}
}

// Error is a domain failure whose Message is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

func Auth(message string) *Error {
	return New(KindAuth, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Permission(message string) *Error {
	return New(KindPermission, message)
}

func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

// Canceled wraps the error of a context the caller gave up on.
func Canceled(err error) *Error {
	return Wrap(KindCanceled, "request canceled", err)
}

// KindOf reports the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
