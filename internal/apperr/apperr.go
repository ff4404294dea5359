// Package apperr defines the closed set of application error kinds and
// their mapping to HTTP status codes at the transport boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindExternal
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to a transport status code. Anything that
// is not an *Error is treated as an internal failure.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-facing message for an error. Internal errors are
// masked so that wrapped causes never leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "something went wrong"
}

func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Msg: msg} }

func External(msg string, err error) *Error {
	return &Error{Kind: KindExternal, Msg: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}
