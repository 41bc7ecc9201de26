package error

import "errors"

// Card domain errors.
var (
	// ErrCardNotFound is returned when a card is not found or not owned by the user.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidCardDay is returned when the closing or due day is outside 1..31.
	ErrInvalidCardDay = errors.New("invalid card day")

	// ErrInvalidCardLimit is returned when the card limit is negative.
	ErrInvalidCardLimit = errors.New("invalid card limit")

	// ErrInvalidCardDescription is returned when the card description is empty or too long.
	ErrInvalidCardDescription = errors.New("invalid card description")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCardDay         Code = "CRD-010001"
	ErrCodeInvalidCardLimit       Code = "CRD-010002"
	ErrCodeInvalidCardDescription Code = "CRD-010003"
	ErrCodeMissingCardFields      Code = "CRD-010004"

	// Not found errors (02XXXX)
	ErrCodeCardNotFound Code = "CRD-020001"
)

// NewCardError creates a new card Error with the given code and message.
func NewCardError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
