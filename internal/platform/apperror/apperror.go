// Package apperror defines the application error taxonomy and its mapping to
// HTTP status codes. Services and repositories return *Error values; handlers
// convert them with ToHTTP so that the transport contract (401/403/404/400/409)
// stays in one place.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind classifies an application error.
type Kind int

const (
	// KindUnauthenticated means the request carried no identity, or the
	// token was malformed, had a bad signature, or was expired.
	KindUnauthenticated Kind = iota + 1
	// KindForbidden means a valid identity was present but policy denies.
	KindForbidden
	// KindNotFound means the target record does not exist.
	KindNotFound
	// KindValidation means required fields were missing or malformed.
	KindValidation
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
)

// Error is an application error with a stable machine-readable message.
type Error struct {
	Kind    Kind
	Message string
	// Fields names the offending fields for validation and conflict errors.
	Fields []string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus maps the error kind to its HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Validation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Conflict(message string, fields ...string) *Error {
	return &Error{Kind: KindConflict, Message: message, Fields: fields}
}

// KindOf returns the Kind of err, or 0 when err is not an application error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ToHTTP converts err into an *echo.HTTPError. Application errors keep their
// status and message; anything else becomes a 500 with a generic message so
// internal details never leak to clients.
func ToHTTP(err error) error {
	var ae *Error
	if errors.As(err, &ae) {
		return echo.NewHTTPError(ae.HTTPStatus(), ae.Message)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
