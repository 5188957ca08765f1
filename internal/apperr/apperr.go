// Package apperr defines the application error taxonomy. Every failure
// a caller can correct is one of these kinds; the handler layer maps
// each kind to exactly one HTTP status and reports the message
// verbatim.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidRange
	KindInvalidLink
	KindConflict
	KindInvalidStatus
	KindValidation
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// NotFound masks cross-tenant access: a resource owned by someone else
// gets the same error as one that does not exist.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func InvalidRange(msg string) *Error {
	return &Error{Kind: KindInvalidRange, Message: msg}
}

func InvalidLink(msg string) *Error {
	return &Error{Kind: KindInvalidLink, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func InvalidStatus(msg string) *Error {
	return &Error{Kind: KindInvalidStatus, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
