package error

import "errors"

// Auth domain errors.
var (
	// ErrUnauthorized is returned when an operation runs without an authenticated principal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyExists is returned when registering with an email already in use.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when registering with a username already in use.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidUsername is returned when the username format is invalid.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrWeakPassword is returned when the password does not meet strength requirements.
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrInvalidToken is returned when a token is malformed, expired or revoked.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEmail      Code = "AUT-010001"
	ErrCodeInvalidUsername   Code = "AUT-010002"
	ErrCodeWeakPassword      Code = "AUT-010003"
	ErrCodeEmailExists       Code = "AUT-010004"
	ErrCodeUsernameExists    Code = "AUT-010005"
	ErrCodeMissingAuthFields Code = "AUT-010006"

	// Not found errors (02XXXX)
	ErrCodeUserNotFound Code = "AUT-020001"

	// Unauthorized errors (03XXXX)
	ErrCodeUnauthorized       Code = "AUT-030001"
	ErrCodeInvalidCredentials Code = "AUT-030002"
	ErrCodeInvalidToken       Code = "AUT-030003"
	ErrCodeMissingToken       Code = "AUT-030004"
	ErrCodeRateLimited        Code = "AUT-030005"
)

// NewAuthError creates a new auth Error with the given code and message.
func NewAuthError(code Code, message string, err error) *Error {
	return New(code, message, err)
}

// NewUnauthorizedError is returned by every operation invoked without a principal.
func NewUnauthorizedError() *Error {
	return New(ErrCodeUnauthorized, "authentication required", ErrUnauthorized)
}
