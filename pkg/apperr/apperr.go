// Package apperr defines the failure categories shared by the domain,
// facade, and transport layers. Callers branch on category with
// errors.Is rather than on message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Category sentinels. Every error produced by the core wraps exactly
// one of these.
var (
	ErrMalformed    = errors.New("malformed input")
	ErrInvalid      = errors.New("invalid value")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnexpected   = errors.New("unexpected error")
)

// FieldError reports a validation failure on a single field. Field and
// Rule are machine-readable; Message is for humans.
type FieldError struct {
	Field   string
	Rule    string
	Message string
	kind    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return e.kind }

// Malformed reports a wrong-type or wrong-shape field value.
func Malformed(field, rule, message string) error {
	return &FieldError{Field: field, Rule: rule, Message: message, kind: ErrMalformed}
}

// Invalid reports a well-typed but out-of-range or empty field value.
func Invalid(field, rule, message string) error {
	return &FieldError{Field: field, Rule: rule, Message: message, kind: ErrInvalid}
}

type wrapped struct {
	msg  string
	kind error
}

func (e *wrapped) Error() string { return e.msg }
func (e *wrapped) Unwrap() error { return e.kind }

// NotFound reports that a referenced entity id did not resolve.
func NotFound(resource, id string) error {
	if id == "" {
		return &wrapped{msg: resource + " not found", kind: ErrNotFound}
	}
	return &wrapped{msg: fmt.Sprintf("%s %q not found", resource, id), kind: ErrNotFound}
}

// Conflict reports a uniqueness or business-rule violation.
func Conflict(format string, args ...any) error {
	return &wrapped{msg: fmt.Sprintf(format, args...), kind: ErrConflict}
}

// Unauthorized reports a missing or unverifiable identity assertion.
func Unauthorized(msg string) error {
	if msg == "" {
		msg = "authentication required"
	}
	return &wrapped{msg: msg, kind: ErrUnauthorized}
}

// Forbidden reports a verified identity whose claims do not satisfy the
// operation's ownership or admin requirement.
func Forbidden(msg string) error {
	if msg == "" {
		msg = "insufficient privileges"
	}
	return &wrapped{msg: msg, kind: ErrForbidden}
}

// Unexpected wraps an internal failure that is fatal to the request but
// not to the process.
func Unexpected(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{msg: err.Error(), kind: ErrUnexpected}
}

func IsMalformed(err error) bool    { return errors.Is(err, ErrMalformed) }
func IsInvalid(err error) bool      { return errors.Is(err, ErrInvalid) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsUnexpected(err error) bool   { return errors.Is(err, ErrUnexpected) }

// HTTPStatus maps an error category to the status code the transport
// layer should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsMalformed(err), IsInvalid(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case IsUnauthorized(err):
		return http.StatusUnauthorized
	case IsForbidden(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Details extracts a field→message map from a FieldError for API error
// payloads; nil for non-field errors.
func Details(err error) map[string]string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return map[string]string{fe.Field: fe.Message}
	}
	return nil
}
