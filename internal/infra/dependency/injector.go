// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/config"
	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/auth"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/bank"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/bill"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/billing"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/card"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/category"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/dashboard"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/notification"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/transaction"
	"github.com/finance-tracker/moneyflow/internal/infra/server/router"
	"github.com/finance-tracker/moneyflow/internal/integration/adapters"
	"github.com/finance-tracker/moneyflow/internal/integration/email"
	"github.com/finance-tracker/moneyflow/internal/integration/email/templates"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence"
)

// Externals holds the third-party services. Nil fields are built from the config.
type Externals struct {
	Billing     adapter.BillingProvider
	Suggester   adapter.CategorySuggestionService
	EmailSender adapter.EmailSender
}

// Jobs holds the use cases run by the scheduler.
type Jobs struct {
	EnsureBills     *bill.EnsureBillsThroughUseCase
	RefreshStatuses *bill.RefreshStatusesUseCase
	SendReminders   *notification.SendBillRemindersUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
	Jobs   *Jobs
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, ext Externals) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	usageRepo := persistence.NewUsageRepository(db)
	bankRepo := persistence.NewBankInfoRepository(db)
	cardRepo := persistence.NewCardRepository(db)
	billRepo := persistence.NewBillRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)
	ledger := persistence.NewLedger(db)
	tokenRepo := persistence.NewTokenRepository(redisClient)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT, tokenRepo)

	billingProvider := ext.Billing
	if billingProvider == nil {
		billingProvider = adapters.NewStripeBilling(cfg.Stripe)
	}
	// Registration only creates billing customers when billing is configured
	var registrationBilling adapter.BillingProvider
	if ext.Billing != nil || cfg.Stripe.SecretKey != "" {
		registrationBilling = billingProvider
	}

	suggester := ext.Suggester
	if suggester == nil {
		suggester = adapters.NewGeminiService(cfg.Gemini)
	}

	jobs, err := NewJobs(cfg, db, ext)
	if err != nil {
		return nil, err
	}

	plans := billing.NewPlanCatalog(cfg.Stripe.BasicPriceID, cfg.Stripe.ProPriceID)
	quota := billing.NewQuotaGuard(userRepo, usageRepo, plans)
	resolver := category.NewResolver(categoryRepo)
	redirects := billing.RedirectURLs{
		SuccessURL:      cfg.Stripe.SuccessURL,
		CancelURL:       cfg.Stripe.CancelURL,
		PortalReturnURL: cfg.Stripe.PortalReturnURL,
	}

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(
			func() bool {
				sqlDB, err := db.DB()
				if err != nil {
					return false
				}
				return sqlDB.Ping() == nil
			},
			func() bool {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return redisClient.Ping(ctx).Err() == nil
			},
		),
		Auth: controller.NewAuthController(
			auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
			auth.NewRefreshTokenUseCase(userRepo, tokenService),
			auth.NewLogoutUserUseCase(tokenService),
		),
		User: controller.NewUserController(
			auth.NewRegisterUserUseCase(userRepo, passwordService, registrationBilling),
		),
		Bank: controller.NewBankController(
			bank.NewCreateBankUseCase(bankRepo, quota),
			bank.NewListBanksUseCase(bankRepo),
			bank.NewUpdateBankUseCase(bankRepo),
			bank.NewDeleteBankUseCase(ledger),
		),
		Card: controller.NewCardController(
			card.NewCreateCardUseCase(ledger, bankRepo, quota),
			card.NewListCardsUseCase(cardRepo),
			card.NewUpdateCardUseCase(ledger, cardRepo, bankRepo),
			card.NewDeleteCardUseCase(ledger),
			bill.NewListBillsUseCase(cardRepo, billRepo),
			bill.NewBillTransactionsUseCase(billRepo, transactionRepo, resolver),
			bill.NewPayBillUseCase(ledger),
		),
		Category: controller.NewCategoryController(
			category.NewListCategoriesUseCase(categoryRepo),
			category.NewCreateCategoryUseCase(categoryRepo, quota),
			category.NewUpdateCategoryUseCase(categoryRepo),
			category.NewDeleteCategoryUseCase(categoryRepo),
		),
		Transaction: controller.NewTransactionController(
			transaction.NewListTransactionsUseCase(transactionRepo, resolver),
			transaction.NewCreateTransactionUseCase(ledger, bankRepo, cardRepo, resolver, quota),
			transaction.NewUpdateTransactionUseCase(ledger, transactionRepo, bankRepo, cardRepo, resolver),
			transaction.NewDeleteTransactionUseCase(ledger, transactionRepo),
			transaction.NewBulkDeleteTransactionsUseCase(ledger, transactionRepo),
			transaction.NewBulkCategorizeTransactionsUseCase(ledger, resolver),
			transaction.NewSuggestCategoriesUseCase(transactionRepo, categoryRepo, suggester),
		),
		Dashboard: controller.NewDashboardController(
			dashboard.NewTotalForPeriodUseCase(dashboardRepo),
			dashboard.NewSavingsForPeriodUseCase(dashboardRepo),
			dashboard.NewExpensePercentageByCategoryUseCase(dashboardRepo, resolver),
			dashboard.NewLastNTransactionsUseCase(dashboardRepo, resolver),
			dashboard.NewBalanceOverviewUseCase(dashboardRepo),
			dashboard.NewMonthlySeriesUseCase(dashboardRepo),
			dashboard.NewOverviewUseCase(dashboardRepo, resolver),
			dashboard.NewGetDataRangeUseCase(dashboardRepo),
		),
		Billing: controller.NewBillingController(
			billing.NewStartCheckoutUseCase(userRepo, billingProvider, plans, redirects),
			billing.NewSubscribeUseCase(userRepo, billingProvider, plans),
			billing.NewOpenPortalUseCase(userRepo, billingProvider, redirects),
			billing.NewGetStatusUseCase(userRepo, usageRepo, plans),
			billing.NewHandleWebhookUseCase(userRepo, billingProvider, plans),
		),
	}

	loginRateLimiter := middleware.NewRateLimiter(cfg.Server.LoginMaxAttempts, cfg.Server.LoginWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: router.NewRouter(controllers, loginRateLimiter, authMiddleware),
		Jobs:   jobs,
	}, nil
}

// NewJobs wires the scheduler use cases. It needs no Redis connection.
func NewJobs(cfg *config.Config, db *gorm.DB, ext Externals) (*Jobs, error) {
	userRepo := persistence.NewUserRepository(db)
	cardRepo := persistence.NewCardRepository(db)
	billRepo := persistence.NewBillRepository(db)

	emailService, err := newEmailService(cfg.Email, ext.EmailSender)
	if err != nil {
		return nil, err
	}

	return &Jobs{
		EnsureBills:     bill.NewEnsureBillsThroughUseCase(cardRepo, billRepo),
		RefreshStatuses: bill.NewRefreshStatusesUseCase(cardRepo, billRepo),
		SendReminders:   notification.NewSendBillRemindersUseCase(billRepo, cardRepo, userRepo, emailService),
	}, nil
}

func newEmailService(cfg config.EmailConfig, sender adapter.EmailSender) (*email.Service, error) {
	if sender == nil {
		if cfg.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
			sender = email.LogSender{}
		} else {
			resendClient, err := email.NewResendClient(cfg)
			if err != nil {
				return nil, err
			}
			sender = resendClient
		}
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return email.NewService(sender, renderer, cfg.AppBaseURL), nil
}
