package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindUpstream   Kind = "UPSTREAM_ERROR"
	KindMalformed  Kind = "MALFORMED_RESPONSE"
)

// Error is the single error type surfaced by the analyzers.
// Field is set only for malformed responses and names the offending key.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Error constructors
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Upstream(service string, err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("error from generative service (%s)", service),
		Err:     err,
	}
}

func Malformed(field, message string, err error) *Error {
	return &Error{Kind: KindMalformed, Message: message, Field: field, Err: err}
}

// KindOf reports the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps caller mistakes to 400 and everything downstream to 500.
func HTTPStatus(err error) int {
	if KindOf(err) == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage is the human readable text put in {"error": ...} bodies.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Failed to analyze the idea"
}
