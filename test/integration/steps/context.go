//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/moneyflow/config"
	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/infra/dependency"
	"github.com/finance-tracker/moneyflow/internal/integration/adapters"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence/model"
	"github.com/finance-tracker/moneyflow/test/integration/mock"
)

const (
	testPassword      = "Secret123"
	testWebhookSecret = "whsec_test"
	testBasicPrice    = "price_basic"
	testProPrice      = "price_pro"
)

// suiteResources are shared by every scenario.
type suiteResources struct {
	db        *mock.Db
	redis     *mock.Redis
	api       *mock.ApiMock
	clock     *mock.Time
	suggester *fakeSuggester
	injector  *dependency.Injector
	server    *httptest.Server
}

var resources *suiteResources

// testContext holds the state of one scenario.
type testContext struct {
	*suiteResources

	client       *http.Client
	headers      map[string]string
	accessToken  string
	refreshToken string
	saved        map[string]string
	response     *response
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite starts the API with its stores and external services mocked.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		res, err := newSuiteResources()
		if err != nil {
			panic(fmt.Sprintf("failed to start test suite: %v", err))
		}
		resources = res
	})

	ctx.AfterSuite(func() {
		if resources == nil {
			return
		}
		resources.server.Close()
		resources.api.Close()
		resources.redis.Close()
	})
}

func newSuiteResources() (*suiteResources, error) {
	api := mock.NewApiServer()
	api.Start()

	env := map[string]string{
		"ENV":                   "test",
		"LOGIN_MAX_ATTEMPTS":    "0",
		"JWT_SECRET":            "test-jwt-secret-key-for-testing-purposes",
		"STRIPE_SECRET_KEY":     "sk_test_moneyflow",
		"STRIPE_WEBHOOK_SECRET": testWebhookSecret,
		"STRIPE_PRICE_BASIC":    testBasicPrice,
		"STRIPE_PRICE_PRO":      testProPrice,
		"RESEND_API_KEY":        "re_test_moneyflow",
		"RESEND_BASE_URL":       api.GetUrl() + "/",
		"APP_BASE_URL":          "https://app.moneyflow.test",
	}
	for key, value := range env {
		if err := os.Setenv(key, value); err != nil {
			return nil, err
		}
	}
	cfg := config.Load()

	// Stripe clients read the global backend, so point it at the mock
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(api.GetUrl()),
		MaxNetworkRetries: stripe.Int64(0),
	}))

	db, err := mock.NewDb(model.All()...)
	if err != nil {
		return nil, err
	}
	redis, err := mock.NewRedis()
	if err != nil {
		return nil, err
	}

	suggester := &fakeSuggester{}
	injector, err := dependency.NewInjector(cfg, db.DbConn, redis.Client, dependency.Externals{
		Billing:   adapters.NewStripeBilling(cfg.Stripe),
		Suggester: suggester,
	})
	if err != nil {
		return nil, err
	}

	return &suiteResources{
		db:        db,
		redis:     redis,
		api:       api,
		clock:     mock.NewTime(),
		suggester: suggester,
		injector:  injector,
		server:    httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
	}, nil
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a card "([^"]*)" closing on day (\d+) and due on day (\d+) was created on "([^"]*)"$`, test.aCardWasCreatedOn)
	ctx.Given(`^a card expense of "([^"]*)" on "([^"]*)" was made with card "([^"]*)"$`, test.aCardExpenseWasMade)
	ctx.Given(`^the suggestion service proposes category "([^"]*)" for every transaction$`, test.theSuggestionServiceProposes)
	ctx.Given(`^the suggestion service is unavailable$`, test.theSuggestionServiceIsUnavailable)
	ctx.Given(`^the external API answers "([^"]*)" "([^"]*)" with status (\d+) and body:$`, test.theExternalAPIAnswers)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)
	ctx.When(`^the billing provider sends a "([^"]*)" event with:$`, test.theBillingProviderSendsAnEvent)
	ctx.When(`^the bill jobs run on "([^"]*)"$`, test.theBillJobsRunOn)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// External API assertion steps
	ctx.Then(`^the external API should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, test.theExternalAPIShouldHaveReceived)
	ctx.Then(`^the last "([^"]*)" request to "([^"]*)" should contain "([^"]*)"$`, test.theLastRequestShouldContain)
}

func (t *testContext) before() error {
	t.suiteResources = resources
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.saved = make(map[string]string)
	t.response = nil

	t.api.Reset()
	t.suggester.reset()
	if err := t.redis.Clear(); err != nil {
		return err
	}
	return t.db.Reset()
}

// fakeSuggester answers category suggestions without calling a model.
type fakeSuggester struct {
	categoryName string
	unavailable  bool
}

func (f *fakeSuggester) reset() {
	f.categoryName = ""
	f.unavailable = false
}

func (f *fakeSuggester) IsAvailable() bool {
	return !f.unavailable
}

func (f *fakeSuggester) Suggest(_ context.Context, request *adapter.CategorySuggestionRequest) ([]*adapter.CategorySuggestion, error) {
	var categoryFound *adapter.CategoryForAI
	for _, category := range request.Categories {
		if category.Name == f.categoryName {
			categoryFound = category
			break
		}
	}
	if categoryFound == nil {
		return nil, nil
	}

	suggestions := make([]*adapter.CategorySuggestion, 0, len(request.Transactions))
	for _, txn := range request.Transactions {
		suggestions = append(suggestions, &adapter.CategorySuggestion{
			TransactionID: txn.ID,
			CategoryID:    categoryFound.ID,
			Confidence:    0.9,
			Reasoning:     "matched by description",
		})
	}
	return suggestions, nil
}

func hashPassword(password string) string {
	hashed, err := adapters.NewPasswordServiceWithCost(bcrypt.MinCost).HashPassword(password)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return hashed
}
