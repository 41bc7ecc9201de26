package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/infra/db/dbtest"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence"
)

const (
	basicPrice = "price_basic"
	proPrice   = "price_pro"
)

type fixture struct {
	userRepo  adapter.UserRepository
	usageRepo adapter.UsageRepository
	bankRepo  adapter.BankInfoRepository
	provider  *adapter.MockBillingProvider
	plans     *PlanCatalog
	user      *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	ctrl := gomock.NewController(t)

	f := &fixture{
		userRepo:  persistence.NewUserRepository(db),
		usageRepo: persistence.NewUsageRepository(db),
		bankRepo:  persistence.NewBankInfoRepository(db),
		provider:  adapter.NewMockBillingProvider(ctrl),
		plans:     NewPlanCatalog(basicPrice, proPrice),
		user:      entity.NewUser("alice", "alice@example.com", "hash"),
	}
	require.NoError(t, f.userRepo.Create(context.Background(), f.user))
	return f
}

func (f *fixture) reload(t *testing.T) *entity.User {
	t.Helper()
	user, err := f.userRepo.FindByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	return user
}

func (f *fixture) setCustomer(t *testing.T, customerID string) {
	t.Helper()
	f.user.StripeCustomerID = customerID
	require.NoError(t, f.userRepo.Update(context.Background(), f.user))
}

func TestPlanCatalog(t *testing.T) {
	plans := NewPlanCatalog(basicPrice, "")

	assert.Equal(t, entity.PlanBasic, plans.PlanForPrice(basicPrice))
	assert.Equal(t, entity.PlanFree, plans.PlanForPrice(""))
	assert.Equal(t, entity.PlanFree, plans.PlanForPrice("price_other"))
	assert.False(t, plans.IsKnownPrice(""))

	_, ok := plans.PriceForPlan(entity.PlanPro)
	assert.False(t, ok)
	price, ok := plans.PriceForPlan(entity.PlanBasic)
	assert.True(t, ok)
	assert.Equal(t, basicPrice, price)
}

func TestQuotaGuard_Reserve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	guard := NewQuotaGuard(f.userRepo, f.usageRepo, f.plans)

	for i := 0; i < 2; i++ {
		bank := entity.NewBankInfo(f.user.ID, "Bank", entity.BankAccountChecking, decimal.Zero, "")
		require.NoError(t, f.bankRepo.Create(ctx, bank))
	}

	_, err := guard.Reserve(ctx, f.user.ID, entity.QuotaBankAccounts, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrQuotaExceeded))
	assert.Equal(t, domainerror.KindLimitExceeded, domainerror.KindOf(err))

	release, err := guard.Reserve(ctx, f.user.ID, entity.QuotaCards, 1)
	require.NoError(t, err)
	release()

	f.user.StripePriceID = proPrice
	require.NoError(t, f.userRepo.Update(ctx, f.user))
	release, err = guard.Reserve(ctx, f.user.ID, entity.QuotaBankAccounts, 50)
	require.NoError(t, err)
	release()
	assert.Empty(t, guard.locks.held)
}

func TestQuotaGuard_ReserveWaitsForPendingInsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	guard := NewQuotaGuard(f.userRepo, f.usageRepo, f.plans)

	require.NoError(t, f.bankRepo.Create(ctx, entity.NewBankInfo(f.user.ID, "Bank", entity.BankAccountChecking, decimal.Zero, "")))

	release, err := guard.Reserve(ctx, f.user.ID, entity.QuotaBankAccounts, 1)
	require.NoError(t, err)

	second := make(chan error, 1)
	go func() {
		next, err := guard.Reserve(ctx, f.user.ID, entity.QuotaBankAccounts, 1)
		if err == nil {
			next()
		}
		second <- err
	}()

	select {
	case err := <-second:
		t.Fatalf("second reservation returned before the first was released: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, f.bankRepo.Create(ctx, entity.NewBankInfo(f.user.ID, "Bank 2", entity.BankAccountChecking, decimal.Zero, "")))
	release()

	select {
	case err := <-second:
		assert.True(t, errors.Is(err, domainerror.ErrQuotaExceeded))
	case <-time.After(time.Second):
		t.Fatal("second reservation never returned")
	}
}

func TestStartCheckoutUseCase(t *testing.T) {
	urls := RedirectURLs{SuccessURL: "https://app/success", CancelURL: "https://app/cancel"}

	t.Run("creates the customer before the session", func(t *testing.T) {
		f := newFixture(t)
		uc := NewStartCheckoutUseCase(f.userRepo, f.provider, f.plans, urls)

		gomock.InOrder(
			f.provider.EXPECT().
				CreateCustomer(gomock.Any(), "alice@example.com", "alice", f.user.ID.String()).
				Return("cus_1", nil),
			f.provider.EXPECT().
				CreateCheckoutSession(gomock.Any(), adapter.CheckoutSessionInput{
					CustomerID: "cus_1",
					PriceID:    basicPrice,
					UserID:     f.user.ID.String(),
					SuccessURL: urls.SuccessURL,
					CancelURL:  urls.CancelURL,
				}).
				Return(&adapter.BillingSession{ID: "cs_1", URL: "https://checkout/cs_1"}, nil),
		)

		output, err := uc.Execute(context.Background(), StartCheckoutInput{
			Principal: f.user.Principal(),
			PriceID:   basicPrice,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://checkout/cs_1", output.URL)
		assert.Equal(t, "cus_1", f.reload(t).StripeCustomerID)
	})

	t.Run("reuses an existing customer", func(t *testing.T) {
		f := newFixture(t)
		f.setCustomer(t, "cus_existing")
		uc := NewStartCheckoutUseCase(f.userRepo, f.provider, f.plans, urls)

		f.provider.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(&adapter.BillingSession{ID: "cs_2", URL: "u"}, nil)

		_, err := uc.Execute(context.Background(), StartCheckoutInput{
			Principal: f.user.Principal(),
			PriceID:   proPrice,
		})
		require.NoError(t, err)
	})

	t.Run("rejects an unknown price", func(t *testing.T) {
		f := newFixture(t)
		uc := NewStartCheckoutUseCase(f.userRepo, f.provider, f.plans, urls)

		_, err := uc.Execute(context.Background(), StartCheckoutInput{
			Principal: f.user.Principal(),
			PriceID:   "price_other",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrUnknownPlan))
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("maps provider failures", func(t *testing.T) {
		f := newFixture(t)
		f.setCustomer(t, "cus_1")
		uc := NewStartCheckoutUseCase(f.userRepo, f.provider, f.plans, urls)

		f.provider.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("timeout"))

		_, err := uc.Execute(context.Background(), StartCheckoutInput{
			Principal: f.user.Principal(),
			PriceID:   basicPrice,
		})
		require.Error(t, err)
		assert.Equal(t, domainerror.KindExternalService, domainerror.KindOf(err))
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newFixture(t)
		uc := NewStartCheckoutUseCase(f.userRepo, f.provider, f.plans, urls)

		_, err := uc.Execute(context.Background(), StartCheckoutInput{PriceID: basicPrice})
		assert.Equal(t, domainerror.KindUnauthorized, domainerror.KindOf(err))
	})
}

func TestSubscribeUseCase(t *testing.T) {
	f := newFixture(t)
	f.setCustomer(t, "cus_1")
	uc := NewSubscribeUseCase(f.userRepo, f.provider, f.plans)

	f.provider.EXPECT().CreateSubscription(gomock.Any(), "cus_1", proPrice).Return("sub_1", nil)

	output, err := uc.Execute(context.Background(), SubscribeInput{
		Principal: f.user.Principal(),
		PriceID:   proPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPro, output.Plan)

	stored := f.reload(t)
	assert.Equal(t, "sub_1", stored.StripeSubscriptionID)
	assert.Equal(t, proPrice, stored.StripePriceID)
}

func TestOpenPortalUseCase(t *testing.T) {
	urls := RedirectURLs{PortalReturnURL: "https://app/settings"}

	t.Run("requires a billing customer", func(t *testing.T) {
		f := newFixture(t)
		uc := NewOpenPortalUseCase(f.userRepo, f.provider, urls)

		_, err := uc.Execute(context.Background(), OpenPortalInput{Principal: f.user.Principal()})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrNoBillingCustomer))
	})

	t.Run("opens the portal", func(t *testing.T) {
		f := newFixture(t)
		f.setCustomer(t, "cus_1")
		uc := NewOpenPortalUseCase(f.userRepo, f.provider, urls)

		f.provider.EXPECT().
			CreatePortalSession(gomock.Any(), "cus_1", urls.PortalReturnURL).
			Return(&adapter.BillingSession{ID: "bps_1", URL: "https://portal"}, nil)

		output, err := uc.Execute(context.Background(), OpenPortalInput{Principal: f.user.Principal()})
		require.NoError(t, err)
		assert.Equal(t, "https://portal", output.URL)
	})
}

func TestGetStatusUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewGetStatusUseCase(f.userRepo, f.usageRepo, f.plans)

	bank := entity.NewBankInfo(f.user.ID, "Bank", entity.BankAccountChecking, decimal.Zero, "")
	require.NoError(t, f.bankRepo.Create(ctx, bank))

	output, err := uc.Execute(ctx, GetStatusInput{Principal: f.user.Principal()})
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, output.Plan)
	require.Len(t, output.Usage, len(entity.QuotaResources))

	usage := make(map[entity.QuotaResource]ResourceUsage)
	for _, u := range output.Usage {
		usage[u.Resource] = u
	}
	assert.Equal(t, int64(1), usage[entity.QuotaBankAccounts].Current)
	assert.Equal(t, int64(2), usage[entity.QuotaBankAccounts].Available)
	assert.Equal(t, 50.0, usage[entity.QuotaBankAccounts].Usage)
	assert.Equal(t, 0.0, usage[entity.QuotaTransactions].Usage)

	f.user.StripePriceID = proPrice
	require.NoError(t, f.userRepo.Update(ctx, f.user))

	output, err = uc.Execute(ctx, GetStatusInput{Principal: f.user.Principal()})
	require.NoError(t, err)
	assert.Equal(t, entity.PlanPro, output.Plan)
	for _, u := range output.Usage {
		assert.Equal(t, entity.Unlimited, u.Available)
		assert.Equal(t, 0.0, u.Usage)
	}
}

func TestHandleWebhookUseCase(t *testing.T) {
	t.Run("rejects an invalid signature", func(t *testing.T) {
		f := newFixture(t)
		uc := NewHandleWebhookUseCase(f.userRepo, f.provider, f.plans)

		f.provider.EXPECT().ParseWebhook([]byte("{}"), "bad").Return(nil, errors.New("signature mismatch"))

		_, err := uc.Execute(context.Background(), HandleWebhookInput{Payload: []byte("{}"), Signature: "bad"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidWebhook))
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("checkout completion stores the subscription", func(t *testing.T) {
		f := newFixture(t)
		uc := NewHandleWebhookUseCase(f.userRepo, f.provider, f.plans)

		f.provider.EXPECT().ParseWebhook(gomock.Any(), gomock.Any()).Return(&adapter.BillingEvent{
			ID:                "evt_1",
			Type:              adapter.BillingEventCheckoutCompleted,
			CustomerID:        "cus_1",
			SubscriptionID:    "sub_1",
			ClientReferenceID: f.user.ID.String(),
		}, nil)
		f.provider.EXPECT().ListSubscriptionItems(gomock.Any(), "sub_1").Return([]string{"price_addon", basicPrice}, nil)

		output, err := uc.Execute(context.Background(), HandleWebhookInput{})
		require.NoError(t, err)
		assert.True(t, output.Handled)

		stored := f.reload(t)
		assert.Equal(t, "cus_1", stored.StripeCustomerID)
		assert.Equal(t, "sub_1", stored.StripeSubscriptionID)
		assert.Equal(t, basicPrice, stored.StripePriceID)
	})

	t.Run("subscription update changes the plan", func(t *testing.T) {
		f := newFixture(t)
		f.setCustomer(t, "cus_1")
		uc := NewHandleWebhookUseCase(f.userRepo, f.provider, f.plans)

		f.provider.EXPECT().ParseWebhook(gomock.Any(), gomock.Any()).Return(&adapter.BillingEvent{
			ID:                 "evt_2",
			Type:               adapter.BillingEventSubscriptionUpdated,
			CustomerID:         "cus_1",
			SubscriptionID:     "sub_1",
			PriceID:            proPrice,
			SubscriptionStatus: "active",
		}, nil)

		_, err := uc.Execute(context.Background(), HandleWebhookInput{})
		require.NoError(t, err)
		assert.Equal(t, proPrice, f.reload(t).StripePriceID)
	})

	t.Run("deletion downgrades to free", func(t *testing.T) {
		f := newFixture(t)
		f.user.StripeCustomerID = "cus_1"
		f.user.StripeSubscriptionID = "sub_1"
		f.user.StripePriceID = proPrice
		require.NoError(t, f.userRepo.Update(context.Background(), f.user))
		uc := NewHandleWebhookUseCase(f.userRepo, f.provider, f.plans)

		f.provider.EXPECT().ParseWebhook(gomock.Any(), gomock.Any()).Return(&adapter.BillingEvent{
			ID:             "evt_3",
			Type:           adapter.BillingEventSubscriptionDeleted,
			CustomerID:     "cus_1",
			SubscriptionID: "sub_1",
		}, nil)

		_, err := uc.Execute(context.Background(), HandleWebhookInput{})
		require.NoError(t, err)

		stored := f.reload(t)
		assert.Empty(t, stored.StripeSubscriptionID)
		assert.Empty(t, stored.StripePriceID)
		assert.Equal(t, "cus_1", stored.StripeCustomerID)
	})

	t.Run("unknown customers are ignored", func(t *testing.T) {
		f := newFixture(t)
		uc := NewHandleWebhookUseCase(f.userRepo, f.provider, f.plans)

		f.provider.EXPECT().ParseWebhook(gomock.Any(), gomock.Any()).Return(&adapter.BillingEvent{
			ID:         "evt_4",
			Type:       adapter.BillingEventSubscriptionUpdated,
			CustomerID: "cus_unknown",
		}, nil)

		output, err := uc.Execute(context.Background(), HandleWebhookInput{})
		require.NoError(t, err)
		assert.False(t, output.Handled)
	})

	t.Run("other events are acknowledged", func(t *testing.T) {
		f := newFixture(t)
		uc := NewHandleWebhookUseCase(f.userRepo, f.provider, f.plans)

		f.provider.EXPECT().ParseWebhook(gomock.Any(), gomock.Any()).Return(&adapter.BillingEvent{
			ID:   "evt_5",
			Type: adapter.BillingEventType("invoice.paid"),
		}, nil)

		output, err := uc.Execute(context.Background(), HandleWebhookInput{})
		require.NoError(t, err)
		assert.False(t, output.Handled)
	})
}
