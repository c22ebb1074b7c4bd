// Package errors holds the application error taxonomy. Every classified
// error carries the HTTP status it should surface with.
package errors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthorized
	KindValidation
	KindConflict
	KindOperationFailed
	KindDependency
)

// Status maps a kind onto its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the package sentinels can be
// used with errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Status() int { return e.Kind.Status() }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err under kind while keeping it reachable through Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

var (
	ErrInternal        = New(KindInternal, "internal server error")
	ErrNotFound        = New(KindNotFound, "not found")
	ErrUnauthorized    = New(KindUnauthorized, "unauthorized")
	ErrValidation      = New(KindValidation, "validation failed")
	ErrConflict        = New(KindConflict, "already exists")
	ErrOperationFailed = New(KindOperationFailed, "operation failed")
	ErrDependency      = New(KindDependency, "dependency failure")
)

func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Unauthorized(message string) *Error    { return New(KindUnauthorized, message) }
func Validation(message string) *Error      { return New(KindValidation, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func OperationFailed(message string) *Error { return New(KindOperationFailed, message) }

func Dependency(message string, err error) *Error {
	return Wrap(KindDependency, message, err)
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}
