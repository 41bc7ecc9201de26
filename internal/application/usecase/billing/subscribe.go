package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// SubscribeInput represents the input for subscribing without hosted checkout.
type SubscribeInput struct {
	Principal entity.Principal
	PriceID   string
}

// SubscribeOutput represents the created subscription.
type SubscribeOutput struct {
	SubscriptionID string
	Plan           entity.PlanName
}

// SubscribeUseCase subscribes the user's billing customer to a price directly.
type SubscribeUseCase struct {
	userRepo adapter.UserRepository
	provider adapter.BillingProvider
	plans    *PlanCatalog
}

// NewSubscribeUseCase creates a new SubscribeUseCase instance.
func NewSubscribeUseCase(userRepo adapter.UserRepository, provider adapter.BillingProvider, plans *PlanCatalog) *SubscribeUseCase {
	return &SubscribeUseCase{
		userRepo: userRepo,
		provider: provider,
		plans:    plans,
	}
}

// Execute creates the subscription and stores it on the user.
func (uc *SubscribeUseCase) Execute(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	if !uc.plans.IsKnownPrice(input.PriceID) {
		return nil, unknownPlan()
	}

	user, err := findUser(ctx, uc.userRepo, input.Principal.UserID)
	if err != nil {
		return nil, err
	}

	customerID, err := ensureCustomer(ctx, uc.userRepo, uc.provider, user)
	if err != nil {
		return nil, err
	}

	subscriptionID, err := uc.provider.CreateSubscription(ctx, customerID, input.PriceID)
	if err != nil {
		return nil, providerFailure(err)
	}

	user.StripeSubscriptionID = subscriptionID
	user.StripePriceID = input.PriceID
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	plan := uc.plans.PlanForPrice(input.PriceID)
	slog.Info("User subscribed", "user_id", user.ID, "plan", plan)

	return &SubscribeOutput{
		SubscriptionID: subscriptionID,
		Plan:           plan,
	}, nil
}
