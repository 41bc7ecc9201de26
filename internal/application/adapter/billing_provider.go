// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

//go:generate mockgen -source=billing_provider.go -destination=mock_billing_provider.go -package=adapter

import (
	"context"
)

// BillingEventType identifies a webhook event from the billing provider.
type BillingEventType string

const (
	BillingEventCheckoutCompleted   BillingEventType = "checkout.session.completed"
	BillingEventSubscriptionUpdated BillingEventType = "customer.subscription.updated"
	BillingEventSubscriptionDeleted BillingEventType = "customer.subscription.deleted"
)

// BillingEvent is a verified webhook event reduced to the fields the app uses.
type BillingEvent struct {
	ID                 string
	Type               BillingEventType
	CustomerID         string
	SubscriptionID     string
	PriceID            string
	SubscriptionStatus string
	ClientReferenceID  string
}

// CheckoutSessionInput represents the input for opening a checkout session.
type CheckoutSessionInput struct {
	CustomerID string
	PriceID    string
	UserID     string
	SuccessURL string
	CancelURL  string
}

// BillingSession is a hosted page the user is redirected to.
type BillingSession struct {
	ID  string
	URL string
}

// BillingProvider defines the interface for the subscription billing provider.
type BillingProvider interface {
	// CreateCustomer creates a customer and returns its id.
	CreateCustomer(ctx context.Context, email, username, userID string) (string, error)

	// CreateSubscription subscribes the customer to a price and returns the subscription id.
	CreateSubscription(ctx context.Context, customerID, priceID string) (string, error)

	// ListSubscriptionItems returns the price ids of the subscription items.
	ListSubscriptionItems(ctx context.Context, subscriptionID string) ([]string, error)

	// CreateCheckoutSession opens a hosted checkout for a subscription.
	CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*BillingSession, error)

	// CreatePortalSession opens the hosted billing portal for a customer.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (*BillingSession, error)

	// ParseWebhook verifies the signature of a webhook payload and decodes it.
	ParseWebhook(payload []byte, signature string) (*BillingEvent, error)
}
