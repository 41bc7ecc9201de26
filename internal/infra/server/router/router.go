// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/moneyflow/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	bankController        *controller.BankController
	cardController        *controller.CardController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	dashboardController   *controller.DashboardController
	billingController     *controller.BillingController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	User        *controller.UserController
	Bank        *controller.BankController
	Card        *controller.CardController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Dashboard   *controller.DashboardController
	Billing     *controller.BillingController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      controllers.Health,
		authController:        controllers.Auth,
		userController:        controllers.User,
		bankController:        controllers.Bank,
		cardController:        controllers.Card,
		categoryController:    controllers.Category,
		transactionController: controllers.Transaction,
		dashboardController:   controllers.Dashboard,
		billingController:     controllers.Billing,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupPublicRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupPublicRoutes configures the routes reachable without a token.
func (r *Router) setupPublicRoutes() {
	r.engine.POST("/user", r.userController.Register)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	// Signed by the billing provider instead of a user token
	v1.POST("/billing/webhook", r.billingController.Webhook)

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	banks := protected.Group("/banks")
	{
		banks.GET("", r.bankController.List)
		banks.POST("", r.bankController.Create)
		banks.PUT("/:id", r.bankController.Update)
		banks.DELETE("/:id", r.bankController.Delete)
	}

	cards := protected.Group("/cards")
	{
		cards.GET("", r.cardController.List)
		cards.POST("", r.cardController.Create)
		cards.PUT("/:id", r.cardController.Update)
		cards.DELETE("/:id", r.cardController.Delete)
		cards.GET("/:id/bills", r.cardController.ListBills)
	}

	bills := protected.Group("/bills")
	{
		bills.GET("/:id/transactions", r.cardController.BillTransactions)
		bills.POST("/:id/pay", r.cardController.PayBill)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/category-suggestions", r.transactionController.SuggestCategories)
		transactions.POST("/bulk-delete", r.transactionController.BulkDelete)
		transactions.POST("/bulk-categorize", r.transactionController.BulkCategorize)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/total", r.dashboardController.Total)
		dashboard.GET("/savings", r.dashboardController.Savings)
		dashboard.GET("/categories", r.dashboardController.ExpensesByCategory)
		dashboard.GET("/recent", r.dashboardController.Recent)
		dashboard.GET("/balances", r.dashboardController.Balances)
		dashboard.GET("/monthly", r.dashboardController.MonthlySeries)
		dashboard.GET("/overview", r.dashboardController.Overview)
		dashboard.GET("/data-range", r.dashboardController.DataRange)
	}

	billing := protected.Group("/billing")
	{
		billing.GET("/status", r.billingController.Status)
		billing.POST("/checkout", r.billingController.Checkout)
		billing.POST("/subscribe", r.billingController.Subscribe)
		billing.POST("/portal", r.billingController.Portal)
	}
}
