package bill

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/category"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/infra/db/dbtest"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence"
)

type fixture struct {
	db        *gorm.DB
	ledger    adapter.Ledger
	cards     adapter.CardRepository
	bills     adapter.BillRepository
	txns      adapter.TransactionRepository
	principal entity.Principal
	bank      *entity.BankInfo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := dbtest.New(t)
	principal := entity.Principal{UserID: uuid.New(), Email: "ana@example.com", Username: "ana"}
	bank := entity.NewBankInfo(principal.UserID, "Main", entity.BankAccountChecking, decimal.NewFromInt(1000), "Bank")
	require.NoError(t, persistence.NewBankInfoRepository(gdb).Create(context.Background(), bank))

	return &fixture{
		db:        gdb,
		ledger:    persistence.NewLedger(gdb),
		cards:     persistence.NewCardRepository(gdb),
		bills:     persistence.NewBillRepository(gdb),
		txns:      persistence.NewTransactionRepository(gdb),
		principal: principal,
		bank:      bank,
	}
}

// newCard creates a card closing on day 3 and due on day 10, as if created on createdAt.
func (f *fixture) newCard(t *testing.T, createdAt time.Time) *entity.Card {
	t.Helper()
	card := entity.NewCard(f.principal.UserID, "Visa", decimal.NewFromInt(5000), "visa", 3, 10, &f.bank.ID)
	card.CreatedAt = createdAt
	require.NoError(t, f.ledger.CreateCardWithBills(context.Background(), card, FirstBills(card, createdAt)))
	return card
}

func (f *fixture) purchase(t *testing.T, card *entity.Card, amount int64, day time.Time, categoryID *uuid.UUID) *entity.Transaction {
	t.Helper()
	txn := entity.NewTransaction(f.principal.UserID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
		decimal.NewFromInt(amount), "Purchase", day)
	txn.CardID = &card.ID
	txn.CategoryID = categoryID
	require.NoError(t, f.ledger.Book(context.Background(), []*entity.Transaction{txn}))
	return txn
}

func (f *fixture) billFor(t *testing.T, card *entity.Card, reference string) *entity.Bill {
	t.Helper()
	bills, err := f.bills.FindByCard(context.Background(), card.ID)
	require.NoError(t, err)
	for _, bill := range bills {
		if bill.Reference == reference {
			return bill
		}
	}
	t.Fatalf("no bill with reference %s", reference)
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestFirstBills(t *testing.T) {
	card := entity.NewCard(uuid.New(), "Visa", decimal.Zero, "visa", 3, 10, nil)

	bills := FirstBills(card, date(2025, time.April, 15))
	require.Len(t, bills, 2)

	assert.Equal(t, date(2025, time.April, 10), bills[0].DueDate)
	assert.Equal(t, date(2025, time.May, 10), bills[1].DueDate)
	for _, bill := range bills {
		assert.Equal(t, entity.BillStatusOpen, bill.Status)
		assert.True(t, bill.Amount.IsZero())
	}

	december := FirstBills(card, date(2025, time.December, 31))
	assert.Equal(t, "2026-01", december[1].Reference)
}

func TestListBillsUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.newCard(t, date(2025, time.April, 15))
	uc := NewListBillsUseCase(f.cards, f.bills)

	t.Run("lists bills with closing dates", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListBillsInput{Principal: f.principal, CardID: card.ID})
		require.NoError(t, err)
		require.Len(t, out.Bills, 2)
		assert.Equal(t, "2025-04", out.Bills[0].Reference)
		assert.Equal(t, date(2025, time.April, 3), out.Bills[0].ClosingDate)
	})

	t.Run("other user's card is not found", func(t *testing.T) {
		other := entity.Principal{UserID: uuid.New()}
		_, err := uc.Execute(ctx, ListBillsInput{Principal: other, CardID: card.ID})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListBillsInput{CardID: card.ID})
		assert.Equal(t, domainerror.KindUnauthorized, domainerror.KindOf(err))
	})
}

func TestBillTransactionsUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.newCard(t, date(2025, time.April, 1))

	food := entity.BuiltinCategoryID("food")
	f.purchase(t, card, 120, date(2025, time.April, 1), &food)
	f.purchase(t, card, 30, date(2025, time.April, 2), nil)
	f.purchase(t, card, 99, date(2025, time.April, 20), nil)

	bill := f.billFor(t, card, "2025-04")
	_, err := NewPayBillUseCase(f.ledger).Execute(ctx, PayBillInput{
		Principal:  f.principal,
		BillID:     bill.ID,
		BankInfoID: f.bank.ID,
		PaidDate:   date(2025, time.April, 9),
	})
	require.NoError(t, err)

	uc := NewBillTransactionsUseCase(f.bills, f.txns, category.NewResolver(persistence.NewCategoryRepository(f.db)))
	out, err := uc.Execute(ctx, BillTransactionsInput{Principal: f.principal, BillID: bill.ID})
	require.NoError(t, err)

	require.Len(t, out.Transactions, 2)
	names := map[string]bool{}
	for _, item := range out.Transactions {
		names[item.CategoryName] = true
	}
	assert.True(t, names["Food"])
	assert.True(t, names[entity.UncategorizedName])

	require.NotNil(t, out.Payment)
	assert.True(t, out.Payment.Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, entity.BillStatusPaid, out.Bill.Status)

	_, err = uc.Execute(ctx, BillTransactionsInput{Principal: entity.Principal{UserID: uuid.New()}, BillID: bill.ID})
	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
}

func TestPayBillUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.newCard(t, date(2025, time.April, 1))
	f.purchase(t, card, 200, date(2025, time.April, 1), nil)
	bill := f.billFor(t, card, "2025-04")
	uc := NewPayBillUseCase(f.ledger)

	t.Run("paid date is required", func(t *testing.T) {
		_, err := uc.Execute(ctx, PayBillInput{Principal: f.principal, BillID: bill.ID, BankInfoID: f.bank.ID})
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("unknown bank account", func(t *testing.T) {
		_, err := uc.Execute(ctx, PayBillInput{
			Principal:  f.principal,
			BillID:     bill.ID,
			BankInfoID: uuid.New(),
			PaidDate:   date(2025, time.April, 9),
		})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})

	t.Run("settles the bill", func(t *testing.T) {
		out, err := uc.Execute(ctx, PayBillInput{
			Principal:  f.principal,
			BillID:     bill.ID,
			BankInfoID: f.bank.ID,
			PaidDate:   date(2025, time.April, 9),
		})
		require.NoError(t, err)
		assert.Equal(t, entity.BillStatusPaid, out.Bill.Status)
		require.NotNil(t, out.Payment)
		assert.Equal(t, "Pagamento Fatura de Abril/2025", out.Payment.Description)

		bank, err := persistence.NewBankInfoRepository(f.db).FindByIDAndUser(ctx, f.bank.ID, f.principal.UserID)
		require.NoError(t, err)
		assert.True(t, bank.CurrentBalance.Equal(decimal.NewFromInt(800)), "got %s", bank.CurrentBalance)
	})

	t.Run("cannot pay twice", func(t *testing.T) {
		_, err := uc.Execute(ctx, PayBillInput{
			Principal:  f.principal,
			BillID:     bill.ID,
			BankInfoID: f.bank.ID,
			PaidDate:   date(2025, time.April, 10),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerror.ErrBillAlreadyPaid)
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("unknown bill", func(t *testing.T) {
		_, err := uc.Execute(ctx, PayBillInput{
			Principal:  f.principal,
			BillID:     uuid.New(),
			BankInfoID: f.bank.ID,
			PaidDate:   date(2025, time.April, 9),
		})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})
}

func TestEnsureBillsThroughUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.newCard(t, date(2025, time.January, 20))
	uc := NewEnsureBillsThroughUseCase(f.cards, f.bills)

	out, err := uc.Execute(ctx, EnsureBillsThroughInput{Month: time.April, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 1, out.CardsProcessed)
	assert.Equal(t, 2, out.BillsCreated)

	bills, err := f.bills.FindByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, bills, 4)
	assert.Equal(t, "2025-01", bills[0].Reference)
	assert.Equal(t, "2025-04", bills[3].Reference)

	again, err := uc.Execute(ctx, EnsureBillsThroughInput{Month: time.April, Year: 2025})
	require.NoError(t, err)
	assert.Zero(t, again.BillsCreated)

	_, err = uc.Execute(ctx, EnsureBillsThroughInput{Month: 13, Year: 2025})
	assert.Error(t, err)
}

func TestRefreshStatusesUseCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.newCard(t, date(2025, time.April, 1))
	uc := NewRefreshStatusesUseCase(f.cards, f.bills)

	tests := []struct {
		name string
		now  time.Time
		want entity.BillStatus
	}{
		{"before closing stays open", date(2025, time.April, 2), entity.BillStatusOpen},
		{"from closing date the bill is closed", date(2025, time.April, 3), entity.BillStatusClosed},
		{"on due date still closed", date(2025, time.April, 10), entity.BillStatusClosed},
		{"after due date the bill is late", date(2025, time.April, 11), entity.BillStatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, RefreshStatusesInput{Now: tt.now})
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.billFor(t, card, "2025-04").Status)
		})
	}

	t.Run("paid bills are left alone", func(t *testing.T) {
		may := f.billFor(t, card, "2025-05")
		_, _, err := f.ledger.SettleBill(ctx, adapter.SettleBillInput{
			UserID:     f.principal.UserID,
			BillID:     may.ID,
			BankInfoID: f.bank.ID,
			PaidAt:     date(2025, time.May, 1),
		})
		require.NoError(t, err)

		out, err := uc.Execute(ctx, RefreshStatusesInput{Now: date(2025, time.June, 30)})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Checked)
		assert.Equal(t, entity.BillStatusPaid, f.billFor(t, card, "2025-05").Status)
	})
}
