package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// RedirectURLs holds the pages the billing provider sends the user back to.
type RedirectURLs struct {
	SuccessURL      string
	CancelURL       string
	PortalReturnURL string
}

func providerFailure(err error) *domainerror.Error {
	return domainerror.NewBillingError(
		domainerror.ErrCodeBillingProviderFailure,
		"the billing provider is unavailable, please try again later",
		errors.Join(domainerror.ErrBillingProviderFailure, err),
	)
}

func findUser(ctx context.Context, userRepo adapter.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ensureCustomer returns the billing customer of user, creating it when missing.
func ensureCustomer(ctx context.Context, userRepo adapter.UserRepository, provider adapter.BillingProvider, user *entity.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	customerID, err := provider.CreateCustomer(ctx, user.Email, user.Username, user.ID.String())
	if err != nil {
		return "", providerFailure(err)
	}

	user.StripeCustomerID = customerID
	if err := userRepo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to store billing customer: %w", err)
	}
	return customerID, nil
}

func unknownPlan() *domainerror.Error {
	return domainerror.NewBillingError(
		domainerror.ErrCodeUnknownPlan,
		"unknown plan",
		domainerror.ErrUnknownPlan,
	)
}
