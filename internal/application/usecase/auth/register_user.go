// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	User *entity.User
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	billing         adapter.BillingProvider
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
// billing may be nil when no billing provider is configured.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	billing adapter.BillingProvider,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		billing:         billing,
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if username == "" || email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingAuthFields,
			"username, email and password are required",
			nil,
		)
	}

	if !usernameRegex.MatchString(username) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidUsername,
			"username must have 3 to 30 letters, digits, dots, dashes or underscores",
			domainerror.ErrInvalidUsername,
		)
	}

	if !emailRegex.MatchString(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	exists, err = uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameExists,
			"username already exists",
			domainerror.ErrUsernameAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, email, passwordHash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.attachBillingCustomer(ctx, user)

	slog.Info("User registered", "user_id", user.ID)

	return &RegisterUserOutput{
		User: user,
	}, nil
}

// attachBillingCustomer creates the billing customer of a new user.
// Failures are logged; checkout creates the customer later.
func (uc *RegisterUserUseCase) attachBillingCustomer(ctx context.Context, user *entity.User) {
	if uc.billing == nil {
		return
	}

	customerID, err := uc.billing.CreateCustomer(ctx, user.Email, user.Username, user.ID.String())
	if err != nil {
		slog.Warn("Failed to create billing customer", "user_id", user.ID, "error", err)
		return
	}

	user.StripeCustomerID = customerID
	if err := uc.userRepo.Update(ctx, user); err != nil {
		slog.Warn("Failed to store billing customer", "user_id", user.ID, "error", err)
	}
}
