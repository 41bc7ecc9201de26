package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/subscriptionitem"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/finance-tracker/moneyflow/config"
	"github.com/finance-tracker/moneyflow/internal/application/adapter"
)

const userIDMetadataKey = "moneyflow_user_id"

// stripeBilling implements adapter.BillingProvider with Stripe.
type stripeBilling struct {
	webhookSecret string
}

// NewStripeBilling creates a Stripe billing provider. The secret key is set globally
// on the stripe package, as the resource clients expect.
func NewStripeBilling(cfg config.StripeConfig) adapter.BillingProvider {
	stripe.Key = cfg.SecretKey
	return &stripeBilling{webhookSecret: cfg.WebhookSecret}
}

// CreateCustomer creates a customer and returns its id.
func (s *stripeBilling) CreateCustomer(ctx context.Context, email, username, userID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(username),
		Metadata: map[string]string{
			userIDMetadataKey: userID,
		},
	}
	params.Context = ctx

	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return cust.ID, nil
}

// CreateSubscription subscribes the customer to a price and returns the subscription id.
func (s *stripeBilling) CreateSubscription(ctx context.Context, customerID, priceID string) (string, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	params.Context = ctx

	sub, err := subscription.New(params)
	if err != nil {
		return "", fmt.Errorf("create subscription: %w", err)
	}
	return sub.ID, nil
}

// ListSubscriptionItems returns the price ids of the subscription items.
func (s *stripeBilling) ListSubscriptionItems(ctx context.Context, subscriptionID string) ([]string, error) {
	params := &stripe.SubscriptionItemListParams{
		Subscription: stripe.String(subscriptionID),
	}
	params.Context = ctx

	var prices []string
	iter := subscriptionitem.List(params)
	for iter.Next() {
		if item := iter.SubscriptionItem(); item.Price != nil {
			prices = append(prices, item.Price.ID)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list subscription items: %w", err)
	}
	return prices, nil
}

// CreateCheckoutSession opens a hosted checkout for a subscription.
func (s *stripeBilling) CreateCheckoutSession(ctx context.Context, input adapter.CheckoutSessionInput) (*adapter.BillingSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:          stripe.String(input.CustomerID),
		ClientReferenceID: stripe.String(input.UserID),
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(input.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				userIDMetadataKey: input.UserID,
			},
		},
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &adapter.BillingSession{ID: sess.ID, URL: sess.URL}, nil
}

// CreatePortalSession opens the hosted billing portal for a customer.
func (s *stripeBilling) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*adapter.BillingSession, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create portal session: %w", err)
	}
	return &adapter.BillingSession{ID: sess.ID, URL: sess.URL}, nil
}

// ParseWebhook verifies the signature of a webhook payload and decodes it.
func (s *stripeBilling) ParseWebhook(payload []byte, signature string) (*adapter.BillingEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("verify webhook: %w", err)
	}
	return decodeBillingEvent(event)
}

// stripeObject holds the fields of checkout sessions and subscriptions the app reads.
type stripeObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`
	Status            string `json:"status"`
	ClientReferenceID string `json:"client_reference_id"`
	Items             struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

func decodeBillingEvent(event stripe.Event) (*adapter.BillingEvent, error) {
	result := &adapter.BillingEvent{
		ID:   event.ID,
		Type: adapter.BillingEventType(event.Type),
	}
	if event.Data == nil {
		return result, nil
	}

	var obj stripeObject
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		return nil, fmt.Errorf("decode %s: %w", event.Type, err)
	}

	result.CustomerID = obj.Customer
	result.ClientReferenceID = obj.ClientReferenceID

	switch result.Type {
	case adapter.BillingEventCheckoutCompleted:
		result.SubscriptionID = obj.Subscription
	case adapter.BillingEventSubscriptionUpdated, adapter.BillingEventSubscriptionDeleted:
		result.SubscriptionID = obj.ID
		result.SubscriptionStatus = obj.Status
		if len(obj.Items.Data) > 0 {
			result.PriceID = obj.Items.Data[0].Price.ID
		}
	}
	return result, nil
}
