package billing

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

// StartCheckoutInput represents the input for subscribing through hosted checkout.
type StartCheckoutInput struct {
	Principal entity.Principal
	PriceID   string
}

// StartCheckoutOutput holds the checkout page to redirect to.
type StartCheckoutOutput struct {
	SessionID string
	URL       string
}

// StartCheckoutUseCase opens a checkout session for a paid plan.
type StartCheckoutUseCase struct {
	userRepo adapter.UserRepository
	provider adapter.BillingProvider
	plans    *PlanCatalog
	urls     RedirectURLs
}

// NewStartCheckoutUseCase creates a new StartCheckoutUseCase instance.
func NewStartCheckoutUseCase(
	userRepo adapter.UserRepository,
	provider adapter.BillingProvider,
	plans *PlanCatalog,
	urls RedirectURLs,
) *StartCheckoutUseCase {
	return &StartCheckoutUseCase{
		userRepo: userRepo,
		provider: provider,
		plans:    plans,
		urls:     urls,
	}
}

// Execute ensures the user has a billing customer and opens the checkout.
func (uc *StartCheckoutUseCase) Execute(ctx context.Context, input StartCheckoutInput) (*StartCheckoutOutput, error) {
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

	session, err := uc.provider.CreateCheckoutSession(ctx, adapter.CheckoutSessionInput{
		CustomerID: customerID,
		PriceID:    input.PriceID,
		UserID:     user.ID.String(),
		SuccessURL: uc.urls.SuccessURL,
		CancelURL:  uc.urls.CancelURL,
	})
	if err != nil {
		return nil, providerFailure(err)
	}

	slog.Info("Checkout started",
		"user_id", user.ID,
		"plan", uc.plans.PlanForPrice(input.PriceID),
		"session_id", session.ID,
	)

	return &StartCheckoutOutput{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
