package bank

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/infra/db/dbtest"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence"
)

type quotaFunc func(resource entity.QuotaResource, adding int64) error

func (f quotaFunc) Reserve(_ context.Context, _ uuid.UUID, resource entity.QuotaResource, adding int64) (func(), error) {
	if err := f(resource, adding); err != nil {
		return nil, err
	}
	return func() {}, nil
}

func TestBankUseCases(t *testing.T) {
	gdb := dbtest.New(t)
	ctx := context.Background()
	repo := persistence.NewBankInfoRepository(gdb)
	user := entity.Principal{UserID: uuid.New(), Email: "ana@example.com", Username: "ana"}

	var created *entity.BankInfo

	t.Run("create trims and stores the initial balance", func(t *testing.T) {
		var checked entity.QuotaResource
		quota := quotaFunc(func(resource entity.QuotaResource, adding int64) error {
			checked = resource
			return nil
		})

		out, err := NewCreateBankUseCase(repo, quota).Execute(ctx, CreateBankInput{
			Principal:       user,
			Name:            "  Nubank ",
			Type:            entity.BankAccountChecking,
			InitialBalance:  decimal.NewFromInt(250),
			BankInstitution: "Nu",
		})
		require.NoError(t, err)
		assert.Equal(t, "Nubank", out.BankInfo.Name)
		assert.Equal(t, entity.QuotaBankAccounts, checked)
		created = out.BankInfo
	})

	t.Run("create validates input", func(t *testing.T) {
		uc := NewCreateBankUseCase(repo, nil)
		tests := []struct {
			name  string
			input CreateBankInput
		}{
			{"missing name", CreateBankInput{Principal: user, Type: entity.BankAccountChecking}},
			{"long name", CreateBankInput{Principal: user, Name: strings.Repeat("b", MaxNameLength+1), Type: entity.BankAccountChecking}},
			{"unknown type", CreateBankInput{Principal: user, Name: "X", Type: "brokerage"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(ctx, tt.input)
				assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
			})
		}
	})

	t.Run("create respects the quota", func(t *testing.T) {
		quota := quotaFunc(func(entity.QuotaResource, int64) error {
			return domainerror.NewBillingError(domainerror.ErrCodeQuotaExceeded, "limit", domainerror.ErrQuotaExceeded)
		})
		_, err := NewCreateBankUseCase(repo, quota).Execute(ctx, CreateBankInput{
			Principal: user, Name: "Other", Type: entity.BankAccountSavings,
		})
		assert.Equal(t, domainerror.KindLimitExceeded, domainerror.KindOf(err))
	})

	t.Run("list sums balances", func(t *testing.T) {
		_, err := NewCreateBankUseCase(repo, nil).Execute(ctx, CreateBankInput{
			Principal: user, Name: "Savings", Type: entity.BankAccountSavings, InitialBalance: decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		out, err := NewListBanksUseCase(repo).Execute(ctx, ListBanksInput{Principal: user})
		require.NoError(t, err)
		assert.Len(t, out.BankInfos, 2)
		assert.True(t, out.TotalBalance.Equal(decimal.NewFromInt(300)), "got %s", out.TotalBalance)
	})

	t.Run("update keeps the balance", func(t *testing.T) {
		out, err := NewUpdateBankUseCase(repo).Execute(ctx, UpdateBankInput{
			Principal:  user,
			BankInfoID: created.ID,
			Name:       "Nubank PJ",
			Type:       entity.BankAccountSavings,
		})
		require.NoError(t, err)
		assert.Equal(t, "Nubank PJ", out.BankInfo.Name)
		assert.True(t, out.BankInfo.CurrentBalance.Equal(decimal.NewFromInt(250)))
	})

	t.Run("update of another user's account is not found", func(t *testing.T) {
		_, err := NewUpdateBankUseCase(repo).Execute(ctx, UpdateBankInput{
			Principal:  entity.Principal{UserID: uuid.New()},
			BankInfoID: created.ID,
			Name:       "Mine",
			Type:       entity.BankAccountChecking,
		})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})

	t.Run("delete", func(t *testing.T) {
		uc := NewDeleteBankUseCase(persistence.NewLedger(gdb))
		require.NoError(t, uc.Execute(ctx, DeleteBankInput{Principal: user, BankInfoID: created.ID}))

		err := uc.Execute(ctx, DeleteBankInput{Principal: user, BankInfoID: created.ID})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))

		err = uc.Execute(ctx, DeleteBankInput{BankInfoID: created.ID})
		assert.Equal(t, domainerror.KindUnauthorized, domainerror.KindOf(err))
	})
}
