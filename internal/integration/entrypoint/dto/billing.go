package dto

import (
	"github.com/finance-tracker/moneyflow/internal/application/usecase/billing"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/dashboard"
)

// SubscribeRequest represents the request body for starting a subscription.
type SubscribeRequest struct {
	PriceID string `json:"priceId" binding:"required"`
}

// RedirectResponse holds a hosted billing page.
type RedirectResponse struct {
	SessionID string `json:"sessionId,omitempty"`
	URL       string `json:"url"`
}

// SubscriptionResponse represents a subscription created without checkout.
type SubscriptionResponse struct {
	SubscriptionID string `json:"subscriptionId"`
	Plan           string `json:"plan"`
}

// QuotaResponse represents the usage of one counted resource.
type QuotaResponse struct {
	Resource string `json:"resource"`
	dashboard.QuotaUsage
}

// BillingStatusResponse represents the plan of the user and its usage.
type BillingStatusResponse struct {
	Plan           string          `json:"plan"`
	PriceID        string          `json:"priceId"`
	SubscriptionID string          `json:"subscriptionId"`
	Quotas         []QuotaResponse `json:"quotas"`
}

// ToBillingStatusResponse converts the subscription status.
func ToBillingStatusResponse(output *billing.GetStatusOutput) *BillingStatusResponse {
	quotas := make([]QuotaResponse, len(output.Usage))
	for i, u := range output.Usage {
		quotas[i] = QuotaResponse{Resource: string(u.Resource), QuotaUsage: u.QuotaUsage}
	}
	return &BillingStatusResponse{
		Plan:           string(output.Plan),
		PriceID:        output.PriceID,
		SubscriptionID: output.SubscriptionID,
		Quotas:         quotas,
	}
}
