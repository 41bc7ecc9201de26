package error

import "errors"

// Bank account domain errors.
var (
	// ErrBankInfoNotFound is returned when a bank account is not found or not owned by the user.
	ErrBankInfoNotFound = errors.New("bank account not found")

	// ErrInvalidBankAccountType is returned when the account type is not checking or savings.
	ErrInvalidBankAccountType = errors.New("invalid bank account type")

	// ErrInvalidBankName is returned when the account name is empty or too long.
	ErrInvalidBankName = errors.New("invalid bank account name")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBankAccountType Code = "BNK-010001"
	ErrCodeInvalidBankName        Code = "BNK-010002"
	ErrCodeMissingBankFields      Code = "BNK-010003"

	// Not found errors (02XXXX)
	ErrCodeBankInfoNotFound Code = "BNK-020001"
)

// NewBankError creates a new bank account Error with the given code and message.
func NewBankError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
