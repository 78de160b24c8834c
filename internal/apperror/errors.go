package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// statusByKind is the single source of truth for the kind to HTTP status
// mapping. Changing an entry is a breaking change for API clients.
var statusByKind = map[Kind]int{
	KindBusiness:       http.StatusBadRequest,
	KindAuthentication: http.StatusUnauthorized,
	KindPermission:     http.StatusForbidden,
	KindNotFound:       http.StatusNotFound,
	KindValidation:     http.StatusUnprocessableEntity,
	KindConflict:       http.StatusConflict,
	KindRateLimit:      http.StatusTooManyRequests,
}

// Error method implementation for Error
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status code for the error's kind.
func (e *Error) Status() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New creates a domain error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetail attaches a client-visible detail string.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithCause attaches an underlying error for logging. The cause is never
// serialized to clients.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// NewBusiness creates a business-rule violation error (400).
func NewBusiness(message string) *Error {
	return New(KindBusiness, message)
}

// NewAuthentication creates an authentication failure error (401).
func NewAuthentication(message string) *Error {
	return New(KindAuthentication, message)
}

// NewPermission creates an insufficient-permission error (403).
func NewPermission(message string) *Error {
	return New(KindPermission, message)
}

// NewNotFound creates a missing-resource error (404).
func NewNotFound(message string) *Error {
	return New(KindNotFound, message)
}

// NewValidation creates an input-validation error (422).
func NewValidation(message string) *Error {
	return New(KindValidation, message)
}

// NewConflict creates a resource-conflict error (409).
func NewConflict(message string) *Error {
	return New(KindConflict, message)
}

// NewRateLimit creates a rate-limit error (429).
func NewRateLimit(message string) *Error {
	return New(KindRateLimit, message)
}

// Map resolves any error to an HTTP status code and a client-safe
// message. Non-domain errors degrade to a generic 500 so that internal
// detail is never leaked. The mapping is total and deterministic.
func Map(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status(), appErr.Message
	}
	return http.StatusInternalServerError, ErrMsgInternal
}

// As extracts a domain error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
