package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionStatus is returned when the transaction status is invalid.
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrMissingBankAccount is returned when a transaction needs a bank account and none is given.
	ErrMissingBankAccount = errors.New("bank account is required")

	// ErrMissingCard is returned when a card expense has no card.
	ErrMissingCard = errors.New("card is required")

	// ErrInvalidTransfer is returned when a transfer has no destination or the destination equals the source.
	ErrInvalidTransfer = errors.New("invalid transfer")

	// ErrInvalidRecurrence is returned when recurrence metadata is inconsistent.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrBillPaymentLocked is returned when an edit would detach a bill payment from its bill.
	ErrBillPaymentLocked = errors.New("bill payment cannot be changed")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   Code = "TXN-010001"
	ErrCodeInvalidTransactionDate   Code = "TXN-010002"
	ErrCodeInvalidTransactionAmount Code = "TXN-010003"
	ErrCodeInvalidTransactionStatus Code = "TXN-010004"
	ErrCodeDescriptionTooLong       Code = "TXN-010005"
	ErrCodeMissingBankAccount       Code = "TXN-010006"
	ErrCodeMissingCard              Code = "TXN-010007"
	ErrCodeInvalidTransfer          Code = "TXN-010008"
	ErrCodeInvalidRecurrence        Code = "TXN-010009"
	ErrCodeMissingTransactionFields Code = "TXN-010010"
	ErrCodeBillPaymentLocked        Code = "TXN-010011"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound Code = "TXN-020001"
	ErrCodeTxnCategoryNotFound Code = "TXN-020002"
	ErrCodeTxnBankInfoNotFound Code = "TXN-020003"
	ErrCodeTxnCardNotFound     Code = "TXN-020004"
)

// NewTransactionError creates a new transaction Error with the given code and message.
func NewTransactionError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
