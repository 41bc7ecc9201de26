package error

import "errors"

// Dashboard domain errors.
var (
	// ErrMissingStartDate is returned when the start date is not provided.
	ErrMissingStartDate = errors.New("start date is required")

	// ErrMissingEndDate is returned when the end date is not provided.
	ErrMissingEndDate = errors.New("end date is required")

	// ErrInvalidDateRange is returned when the end date is before the start date.
	ErrInvalidDateRange = errors.New("end date must be after start date")
)

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate  Code = "DSH-010001"
	ErrCodeMissingEndDate    Code = "DSH-010002"
	ErrCodeInvalidDateRange  Code = "DSH-010003"
	ErrCodeInvalidDateFormat Code = "DSH-010004"
)

// NewDashboardError creates a new dashboard Error with the given code and message.
func NewDashboardError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
