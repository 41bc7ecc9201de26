package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
)

const subscriptionStatusCanceled = "canceled"

// HandleWebhookInput represents a raw webhook delivery.
type HandleWebhookInput struct {
	Payload   []byte
	Signature string
}

// HandleWebhookOutput reports what the delivery changed.
type HandleWebhookOutput struct {
	EventType adapter.BillingEventType
	Handled   bool
}

// HandleWebhookUseCase keeps stored subscriptions in sync with the billing provider.
type HandleWebhookUseCase struct {
	userRepo adapter.UserRepository
	provider adapter.BillingProvider
	plans    *PlanCatalog
}

// NewHandleWebhookUseCase creates a new HandleWebhookUseCase instance.
func NewHandleWebhookUseCase(userRepo adapter.UserRepository, provider adapter.BillingProvider, plans *PlanCatalog) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		userRepo: userRepo,
		provider: provider,
		plans:    plans,
	}
}

// Execute verifies and applies a webhook. Events for unknown users are acknowledged and ignored.
func (uc *HandleWebhookUseCase) Execute(ctx context.Context, input HandleWebhookInput) (*HandleWebhookOutput, error) {
	event, err := uc.provider.ParseWebhook(input.Payload, input.Signature)
	if err != nil {
		return nil, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidWebhook,
			"invalid webhook signature or payload",
			errors.Join(domainerror.ErrInvalidWebhook, err),
		)
	}

	output := &HandleWebhookOutput{EventType: event.Type}

	switch event.Type {
	case adapter.BillingEventCheckoutCompleted:
		output.Handled, err = uc.checkoutCompleted(ctx, event)
	case adapter.BillingEventSubscriptionUpdated:
		output.Handled, err = uc.subscriptionUpdated(ctx, event)
	case adapter.BillingEventSubscriptionDeleted:
		event.SubscriptionStatus = subscriptionStatusCanceled
		output.Handled, err = uc.subscriptionUpdated(ctx, event)
	default:
		slog.Debug("Ignoring billing event", "event_id", event.ID, "type", event.Type)
	}
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (uc *HandleWebhookUseCase) checkoutCompleted(ctx context.Context, event *adapter.BillingEvent) (bool, error) {
	user, err := uc.userForEvent(ctx, event)
	if err != nil || user == nil {
		return false, err
	}

	priceID := event.PriceID
	if priceID == "" && event.SubscriptionID != "" {
		prices, err := uc.provider.ListSubscriptionItems(ctx, event.SubscriptionID)
		if err != nil {
			return false, providerFailure(err)
		}
		priceID = uc.firstKnownPrice(prices)
	}

	user.StripeCustomerID = event.CustomerID
	user.StripeSubscriptionID = event.SubscriptionID
	user.StripePriceID = priceID
	return true, uc.save(ctx, user, event)
}

func (uc *HandleWebhookUseCase) subscriptionUpdated(ctx context.Context, event *adapter.BillingEvent) (bool, error) {
	user, err := uc.userForEvent(ctx, event)
	if err != nil || user == nil {
		return false, err
	}

	if event.SubscriptionStatus == subscriptionStatusCanceled {
		user.StripeSubscriptionID = ""
		user.StripePriceID = ""
	} else {
		user.StripeSubscriptionID = event.SubscriptionID
		user.StripePriceID = event.PriceID
	}
	return true, uc.save(ctx, user, event)
}

// userForEvent finds the user by checkout reference, then by customer.
// A nil user with a nil error means the event belongs to nobody we know.
func (uc *HandleWebhookUseCase) userForEvent(ctx context.Context, event *adapter.BillingEvent) (*entity.User, error) {
	if id, err := uuid.Parse(event.ClientReferenceID); err == nil {
		user, err := uc.userRepo.FindByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
	}

	user, err := uc.userRepo.FindByStripeCustomerID(ctx, event.CustomerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			slog.Warn("Billing event for unknown customer", "event_id", event.ID, "type", event.Type)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (uc *HandleWebhookUseCase) firstKnownPrice(prices []string) string {
	for _, price := range prices {
		if uc.plans.IsKnownPrice(price) {
			return price
		}
	}
	if len(prices) > 0 {
		return prices[0]
	}
	return ""
}

func (uc *HandleWebhookUseCase) save(ctx context.Context, user *entity.User, event *adapter.BillingEvent) error {
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}

	slog.Info("Subscription synced",
		"event_id", event.ID,
		"type", event.Type,
		"user_id", user.ID,
		"plan", uc.plans.PlanForPrice(user.StripePriceID),
	)
	return nil
}
