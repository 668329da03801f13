// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies the expected failure modes of the domain services.
type Kind int

const (
	// KindInvalidInput means the caller sent malformed or missing fields.
	KindInvalidInput Kind = iota
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindConflict means an invariant would be violated (double-booked slot,
	// blocked delete, duplicate submission).
	KindConflict
	// KindUnavailable means a required dependency (active campaign, SMS
	// provider) is not currently usable.
	KindUnavailable
)

// Error is the error type every service returns for expected failures.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Unavailable(msg string) error {
	return &Error{Kind: KindUnavailable, Message: msg}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// HTTPStatus maps an error to its HTTP status. Unclassified errors are 500.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
