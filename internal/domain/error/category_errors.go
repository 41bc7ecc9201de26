package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when a category with the same name already exists for the user.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrBuiltinCategoryReadOnly is returned when modifying a default category.
	ErrBuiltinCategoryReadOnly = errors.New("default categories cannot be modified")

	// ErrInvalidCategoryValue is returned when the category budget value is negative.
	ErrInvalidCategoryValue = errors.New("invalid category value")
)

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong     Code = "CAT-010001"
	ErrCodeInvalidCategoryType     Code = "CAT-010002"
	ErrCodeCategoryNameExists      Code = "CAT-010003"
	ErrCodeBuiltinCategoryReadOnly Code = "CAT-010004"
	ErrCodeInvalidCategoryValue    Code = "CAT-010005"
	ErrCodeMissingCategoryFields   Code = "CAT-010006"

	// Not found errors (02XXXX)
	ErrCodeCategoryNotFound Code = "CAT-020001"
)

// NewCategoryError creates a new category Error with the given code and message.
func NewCategoryError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
