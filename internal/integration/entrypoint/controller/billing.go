package controller

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/moneyflow/internal/application/usecase/billing"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/middleware"
)

// maxWebhookBody bounds the webhook payload read into memory.
const maxWebhookBody = 64 << 10

// BillingController handles subscription endpoints and provider webhooks.
type BillingController struct {
	checkoutUseCase  *billing.StartCheckoutUseCase
	subscribeUseCase *billing.SubscribeUseCase
	portalUseCase    *billing.OpenPortalUseCase
	statusUseCase    *billing.GetStatusUseCase
	webhookUseCase   *billing.HandleWebhookUseCase
}

// NewBillingController creates a new billing controller instance.
func NewBillingController(
	checkoutUseCase *billing.StartCheckoutUseCase,
	subscribeUseCase *billing.SubscribeUseCase,
	portalUseCase *billing.OpenPortalUseCase,
	statusUseCase *billing.GetStatusUseCase,
	webhookUseCase *billing.HandleWebhookUseCase,
) *BillingController {
	return &BillingController{
		checkoutUseCase:  checkoutUseCase,
		subscribeUseCase: subscribeUseCase,
		portalUseCase:    portalUseCase,
		statusUseCase:    statusUseCase,
		webhookUseCase:   webhookUseCase,
	}
}

// Checkout handles POST /billing/checkout requests.
func (c *BillingController) Checkout(ctx *gin.Context) {
	var req dto.SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.checkoutUseCase.Execute(ctx.Request.Context(), billing.StartCheckoutInput{
		Principal: middleware.GetPrincipal(ctx),
		PriceID:   req.PriceID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.RedirectResponse{SessionID: output.SessionID, URL: output.URL}, "")
}

// Subscribe handles POST /billing/subscribe requests.
func (c *BillingController) Subscribe(ctx *gin.Context) {
	var req dto.SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.subscribeUseCase.Execute(ctx.Request.Context(), billing.SubscribeInput{
		Principal: middleware.GetPrincipal(ctx),
		PriceID:   req.PriceID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusCreated, dto.SubscriptionResponse{
		SubscriptionID: output.SubscriptionID,
		Plan:           string(output.Plan),
	}, "Assinatura criada com sucesso")
}

// Portal handles POST /billing/portal requests.
func (c *BillingController) Portal(ctx *gin.Context) {
	output, err := c.portalUseCase.Execute(ctx.Request.Context(), billing.OpenPortalInput{
		Principal: middleware.GetPrincipal(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.RedirectResponse{URL: output.URL}, "")
}

// Status handles GET /billing/status requests.
func (c *BillingController) Status(ctx *gin.Context) {
	output, err := c.statusUseCase.Execute(ctx.Request.Context(), billing.GetStatusInput{
		Principal: middleware.GetPrincipal(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, http.StatusOK, dto.ToBillingStatusResponse(output), "")
}

// Webhook handles POST /billing/webhook requests from the billing provider.
// The raw body is needed to verify the signature.
func (c *BillingController) Webhook(ctx *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
	if err != nil {
		respondBindError(ctx, err)
		return
	}

	output, err := c.webhookUseCase.Execute(ctx.Request.Context(), billing.HandleWebhookInput{
		Payload:   payload,
		Signature: ctx.GetHeader("Stripe-Signature"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	slog.Debug("Billing webhook processed", "type", output.EventType, "handled", output.Handled)
	ctx.JSON(http.StatusOK, gin.H{"received": true})
}
