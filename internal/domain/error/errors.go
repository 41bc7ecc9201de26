// Package error defines domain-specific errors for the MoneyFlow application.
package error

import (
	"errors"
	"strings"
)

// Code identifies a domain error.
// Format: XXX-KKYYYY where XXX is the area, KK is the kind and YYYY is the specific error.
type Code string

// Kind classifies domain errors for presentation.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindUnauthorized    Kind = "unauthorized"
	KindLimitExceeded   Kind = "limit_exceeded"
	KindExternalService Kind = "external_service"
	KindUnknown         Kind = "unknown"
)

// Kind returns the kind encoded in the code.
func (c Code) Kind() Kind {
	_, rest, ok := strings.Cut(string(c), "-")
	if !ok || len(rest) < 2 {
		return KindUnknown
	}

	switch rest[:2] {
	case "01":
		return KindValidation
	case "02":
		return KindNotFound
	case "03":
		return KindUnauthorized
	case "04":
		return KindLimitExceeded
	case "05":
		return KindExternalService
	default:
		return KindUnknown
	}
}

// Error represents a domain error with code and message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the kind of the error.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// New creates a new Error with the given code and message.
func New(code Code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// KindOf classifies any error. Errors outside the domain are KindUnknown.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind()
	}
	return KindUnknown
}

// As extracts the domain error from err, if any.
func As(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
