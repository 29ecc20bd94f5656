// Package apperr classifies errors so request handlers can map them to HTTP
// status codes without knowing where they came from.
package apperr

import (
	"errors"
	"net/http"
)

type Kind uint8

const (
	Internal Kind = iota
	Validation
	NotFound
	Auth
	Forbidden
	Conflict
	Upstream
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Auth:
		return "auth"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	case Upstream:
		return "upstream"
	default:
		return "internal"
	}
}

// HTTPStatus is the response code used for errors of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error. Two errors with the same Code match under
// errors.Is, so a sentinel keeps matching after Wrap adds detail.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithMessage returns a copy of the sentinel carrying a more specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: message}
}

// Wrap attaches cause to a copy of the sentinel.
func Wrap(sentinel *Error, cause error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Err: cause}
}

// KindOf returns Internal for errors that were never classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// PublicMessage is the text safe to send to a client. Internal errors never
// leak their detail.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "internal server error"
}
