package billing

import (
	"context"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// OpenPortalInput represents the input for opening the billing portal.
type OpenPortalInput struct {
	Principal entity.Principal
}

// OpenPortalOutput holds the portal page to redirect to.
type OpenPortalOutput struct {
	URL string
}

// OpenPortalUseCase opens the hosted billing portal of the user.
type OpenPortalUseCase struct {
	userRepo adapter.UserRepository
	provider adapter.BillingProvider
	urls     RedirectURLs
}

// NewOpenPortalUseCase creates a new OpenPortalUseCase instance.
func NewOpenPortalUseCase(userRepo adapter.UserRepository, provider adapter.BillingProvider, urls RedirectURLs) *OpenPortalUseCase {
	return &OpenPortalUseCase{
		userRepo: userRepo,
		provider: provider,
		urls:     urls,
	}
}

// Execute opens the portal. Users without a billing customer have nothing to manage.
func (uc *OpenPortalUseCase) Execute(ctx context.Context, input OpenPortalInput) (*OpenPortalOutput, error) {
	if !input.Principal.Authenticated() {
		return nil, domainerror.NewUnauthorizedError()
	}

	user, err := findUser(ctx, uc.userRepo, input.Principal.UserID)
	if err != nil {
		return nil, err
	}

	if user.StripeCustomerID == "" {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeNoBillingCustomer,
			"there is no subscription to manage yet",
			domainerror.ErrNoBillingCustomer,
		)
	}

	session, err := uc.provider.CreatePortalSession(ctx, user.StripeCustomerID, uc.urls.PortalReturnURL)
	if err != nil {
		return nil, providerFailure(err)
	}

	return &OpenPortalOutput{URL: session.URL}, nil
}
