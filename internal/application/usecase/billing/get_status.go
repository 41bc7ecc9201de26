package billing

import (
	"context"
	"fmt"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/dashboard"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// GetStatusInput represents the input for the subscription status.
type GetStatusInput struct {
	Principal entity.Principal
}

// ResourceUsage is the quota usage of one counted resource.
type ResourceUsage struct {
	Resource entity.QuotaResource
	dashboard.QuotaUsage
}

// GetStatusOutput represents the plan of the user and how much of it is used.
type GetStatusOutput struct {
	Plan           entity.PlanName
	PriceID        string
	SubscriptionID string
	Usage          []ResourceUsage
}

// GetStatusUseCase reports the subscription and quota usage of the user.
type GetStatusUseCase struct {
	userRepo  adapter.UserRepository
	usageRepo adapter.UsageRepository
	plans     *PlanCatalog
}

// NewGetStatusUseCase creates a new GetStatusUseCase instance.
func NewGetStatusUseCase(userRepo adapter.UserRepository, usageRepo adapter.UsageRepository, plans *PlanCatalog) *GetStatusUseCase {
	return &GetStatusUseCase{
		userRepo:  userRepo,
		usageRepo: usageRepo,
		plans:     plans,
	}
}

// Execute computes the status.
func (uc *GetStatusUseCase) Execute(ctx context.Context, input GetStatusInput) (*GetStatusOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	user, err := findUser(ctx, uc.userRepo, input.Principal.UserID)
	if err != nil {
		return nil, err
	}

	plan := uc.plans.PlanForPrice(user.StripePriceID)
	quota := entity.QuotaFor(plan)

	output := &GetStatusOutput{
		Plan:           plan,
		PriceID:        user.StripePriceID,
		SubscriptionID: user.StripeSubscriptionID,
		Usage:          make([]ResourceUsage, 0, len(entity.QuotaResources)),
	}
	for _, resource := range entity.QuotaResources {
		current, err := uc.usageRepo.CountOwned(ctx, user.ID, resource)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", resource, err)
		}
		output.Usage = append(output.Usage, ResourceUsage{
			Resource:   resource,
			QuotaUsage: dashboard.ComputeQuotaUsage(current, quota.Limit(resource)),
		})
	}

	return output, nil
}
