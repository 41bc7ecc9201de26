package error

import "errors"

// Email domain errors.
var (
	// ErrEmailSendFailed is returned when the email provider rejects or fails a send.
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrTemplateRenderFailed is returned when an email template cannot be rendered.
	ErrTemplateRenderFailed = errors.New("failed to render email template")
)

const (
	ErrCodeTemplateRenderFailed  Code = "EML-010001"
	ErrCodePermanentEmailFailure Code = "EML-050001"
	ErrCodeTemporaryEmailFailure Code = "EML-050002"
)

// NewEmailError creates a new email Error with the given code and message.
func NewEmailError(code Code, message string, err error) *Error {
	return New(code, message, err)
}
