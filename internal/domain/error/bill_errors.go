package error

import "errors"

// Bill domain errors.
var (
	// ErrBillNotFound is returned when a bill is not found or its card is not owned by the user.
	ErrBillNotFound = errors.New("bill not found")

	// ErrBillAlreadyPaid is returned when settling or changing a bill that is already paid.
	ErrBillAlreadyPaid = errors.New("bill already paid")
)

const (
	// Validation errors (01XXXX)
	ErrCodeBillAlreadyPaid Code = "BIL-010001"
	ErrCodeInvalidPaidDate Code = "BIL-010002"

	// Not found errors (02XXXX)
	ErrCodeBillNotFound Code = "BIL-020001"
)

// NewBillError creates a new bill Error with the given code and message.
func NewBillError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
