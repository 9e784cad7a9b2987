// Package apperr defines the error kinds the API reports to its callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable error discriminator sent to clients.
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindDuplicateEmail    Kind = "DuplicateEmail"
	KindNotFound          Kind = "NotFound"
	KindInvalidCredential Kind = "InvalidCredential"
	KindInvalidReference  Kind = "InvalidReference"
	KindStoreUnavailable  Kind = "StoreUnavailable"
	KindUnauthenticated   Kind = "Unauthenticated"
	KindForbidden         Kind = "Forbidden"
	KindInternal          Kind = "Internal"
)

// Error is a classified failure. Field names the offending input for
// validation errors; Err keeps the underlying cause for logging and is never
// sent to clients.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input on a single field.
func Validation(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing user, admin, survey or response.
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func DuplicateEmail() *Error {
	return &Error{Kind: KindDuplicateEmail, Field: "email", Message: "an account with this email already exists"}
}

func InvalidCredential() *Error {
	return &Error{Kind: KindInvalidCredential, Message: "invalid email or password"}
}

func InvalidReference(field, what string) *Error {
	return &Error{Kind: KindInvalidReference, Field: field, Message: what + " does not exist"}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Store wraps an infrastructure failure. The cause is logged, not returned.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "storage is unavailable", Err: fmt.Errorf("%s: %w", op, err)}
}

func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: fmt.Errorf("%s: %w", op, err)}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to the response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidReference:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidCredential:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateEmail:
		return http.StatusConflict
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
