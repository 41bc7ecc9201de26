package error

import "errors"

// Billing domain errors.
var (
	// ErrQuotaExceeded is returned when creating an entity beyond the plan's quota.
	ErrQuotaExceeded = errors.New("plan quota exceeded")

	// ErrUnknownPlan is returned when a plan name has no configured price.
	ErrUnknownPlan = errors.New("unknown plan")

	// ErrNoBillingCustomer is returned when the user has no billing customer yet.
	ErrNoBillingCustomer = errors.New("no billing customer")

	// ErrInvalidWebhook is returned when a webhook payload or signature is rejected.
	ErrInvalidWebhook = errors.New("invalid webhook")

	// ErrBillingProviderFailure is returned when the billing provider call fails.
	ErrBillingProviderFailure = errors.New("billing provider failure")

	// ErrSuggestionsUnavailable is returned when the suggestion service is not configured or fails.
	ErrSuggestionsUnavailable = errors.New("suggestion service unavailable")
)

const (
	// Validation errors (01XXXX)
	ErrCodeUnknownPlan       Code = "BLG-010001"
	ErrCodeInvalidWebhook    Code = "BLG-010002"
	ErrCodeNoBillingCustomer Code = "BLG-010003"

	// Limit errors (04XXXX)
	ErrCodeQuotaExceeded Code = "BLG-040001"

	// External service errors (05XXXX)
	ErrCodeBillingProviderFailure Code = "BLG-050001"
	ErrCodeSuggestionsUnavailable Code = "BLG-050002"
)

// NewBillingError creates a new billing Error with the given code and message.
func NewBillingError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
