package persistence

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
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/infra/db/dbtest"
)

type ledgerFixture struct {
	db     *gorm.DB
	ledger adapter.Ledger
	userID uuid.UUID
	bank   *entity.BankInfo
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	gdb := dbtest.New(t)
	userID := uuid.New()
	bank := entity.NewBankInfo(userID, "Main", entity.BankAccountChecking, decimal.NewFromInt(1000), "Bank")
	require.NoError(t, NewBankInfoRepository(gdb).Create(context.Background(), bank))

	return &ledgerFixture{db: gdb, ledger: NewLedger(gdb), userID: userID, bank: bank}
}

func (f *ledgerFixture) balanceOf(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	bank, err := NewBankInfoRepository(f.db).FindByIDAndUser(context.Background(), id, f.userID)
	require.NoError(t, err)
	return bank.CurrentBalance
}

func (f *ledgerFixture) newCard(t *testing.T, closingDay, dueDay int) *entity.Card {
	t.Helper()
	card := entity.NewCard(f.userID, "Visa", decimal.NewFromInt(5000), "visa", closingDay, dueDay, &f.bank.ID)
	require.NoError(t, f.ledger.CreateCardWithBills(context.Background(), card, nil))
	return card
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestLedger_BookAdjustsBalances(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	savings := entity.NewBankInfo(f.userID, "Savings", entity.BankAccountSavings, decimal.Zero, "Bank")
	require.NoError(t, NewBankInfoRepository(f.db).Create(ctx, savings))

	income := entity.NewTransaction(f.userID, entity.TransactionTypeIncome, entity.TransactionStatusCompleted,
		decimal.NewFromInt(500), "Salary", date(2025, time.March, 5))
	income.BankInfoID = &f.bank.ID

	pending := entity.NewTransaction(f.userID, entity.TransactionTypeExpense, entity.TransactionStatusPending,
		decimal.NewFromInt(80), "Gym", date(2025, time.March, 6))
	pending.BankInfoID = &f.bank.ID

	transfer := entity.NewTransaction(f.userID, entity.TransactionTypeTransfer, entity.TransactionStatusCompleted,
		decimal.NewFromInt(300), "Save", date(2025, time.March, 7))
	transfer.BankInfoID = &f.bank.ID
	transfer.DestinationBankInfoID = &savings.ID

	require.NoError(t, f.ledger.Book(ctx, []*entity.Transaction{income, pending, transfer}))

	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(1200)), "got %s", f.balanceOf(t, f.bank.ID))
	assert.True(t, f.balanceOf(t, savings.ID).Equal(decimal.NewFromInt(300)))

	require.NoError(t, f.ledger.Unbook(ctx, transfer))
	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(1500)))
	assert.True(t, f.balanceOf(t, savings.ID).Equal(decimal.Zero))
}

func TestLedger_BookRejectsForeignAccount(t *testing.T) {
	f := newLedgerFixture(t)
	foreign := uuid.New()

	txn := entity.NewTransaction(f.userID, entity.TransactionTypeIncome, entity.TransactionStatusCompleted,
		decimal.NewFromInt(10), "x", date(2025, time.March, 1))
	txn.BankInfoID = &foreign

	err := f.ledger.Book(context.Background(), []*entity.Transaction{txn})
	assert.ErrorIs(t, err, domainerror.ErrBankInfoNotFound)
	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(1000)))
}

func TestLedger_CardExpenseGoesToCycleBill(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	card := f.newCard(t, 3, 10)
	bills := NewBillRepository(f.db)

	before := entity.NewTransaction(f.userID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
		decimal.NewFromInt(100), "Market", date(2025, time.April, 2))
	before.CardID = &card.ID
	onClosing := entity.NewTransaction(f.userID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
		decimal.NewFromInt(40), "Fuel", date(2025, time.April, 3))
	onClosing.CardID = &card.ID

	require.NoError(t, f.ledger.Book(ctx, []*entity.Transaction{before, onClosing}))
	require.NotNil(t, before.BillID)
	require.NotNil(t, onClosing.BillID)
	assert.NotEqual(t, *before.BillID, *onClosing.BillID)

	april, err := bills.FindByIDAndUser(ctx, *before.BillID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "2025-04", april.Reference)
	assert.True(t, april.Amount.Equal(decimal.NewFromInt(100)))

	may, err := bills.FindByIDAndUser(ctx, *onClosing.BillID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "2025-05", may.Reference)

	// Card expenses never touch the bank balance directly.
	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(1000)))

	updated := *before
	updated.Amount = decimal.NewFromInt(250)
	require.NoError(t, f.ledger.Rebook(ctx, before, &updated))

	april, err = bills.FindByIDAndUser(ctx, *before.BillID, f.userID)
	require.NoError(t, err)
	assert.True(t, april.Amount.Equal(decimal.NewFromInt(250)), "got %s", april.Amount)

	require.NoError(t, f.ledger.Unbook(ctx, &updated))
	april, err = bills.FindByIDAndUser(ctx, *before.BillID, f.userID)
	require.NoError(t, err)
	assert.True(t, april.Amount.IsZero())
}

func TestLedger_SettleBill(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	card := f.newCard(t, 3, 10)

	purchase := entity.NewTransaction(f.userID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
		decimal.NewFromInt(400), "TV", date(2025, time.March, 1))
	purchase.CardID = &card.ID
	require.NoError(t, f.ledger.Book(ctx, []*entity.Transaction{purchase}))

	input := adapter.SettleBillInput{
		UserID:     f.userID,
		BillID:     *purchase.BillID,
		BankInfoID: f.bank.ID,
		PaidAt:     date(2025, time.March, 9),
	}

	bill, payment, err := f.ledger.SettleBill(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPaid, bill.Status)
	require.NotNil(t, payment)
	assert.Equal(t, entity.TransactionTypeExpense, payment.Type)
	assert.Equal(t, "Pagamento Fatura de Março/2025", payment.Description)
	assert.Equal(t, bill.ID, *payment.BillID)
	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(600)))

	t.Run("paying twice fails without side effects", func(t *testing.T) {
		_, _, err := f.ledger.SettleBill(ctx, input)
		assert.ErrorIs(t, err, domainerror.ErrBillAlreadyPaid)
		assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(600)))
	})

	t.Run("another user cannot pay", func(t *testing.T) {
		other := input
		other.UserID = uuid.New()
		_, _, err := f.ledger.SettleBill(ctx, other)
		assert.ErrorIs(t, err, domainerror.ErrBillNotFound)
	})

	t.Run("deleting the payment reopens the bill", func(t *testing.T) {
		require.NoError(t, f.ledger.Unbook(ctx, payment))
		reopened, err := NewBillRepository(f.db).FindByIDAndUser(ctx, bill.ID, f.userID)
		require.NoError(t, err)
		assert.Equal(t, entity.BillStatusOpen, reopened.Status)
		assert.Nil(t, reopened.PaidAt)
		assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(1000)))
	})
}

func TestLedger_RebookPaymentAwayFromBillReopensIt(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	card := f.newCard(t, 3, 10)

	purchase := entity.NewTransaction(f.userID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
		decimal.NewFromInt(300), "TV", date(2025, time.March, 1))
	purchase.CardID = &card.ID
	require.NoError(t, f.ledger.Book(ctx, []*entity.Transaction{purchase}))

	bill, payment, err := f.ledger.SettleBill(ctx, adapter.SettleBillInput{
		UserID:     f.userID,
		BillID:     *purchase.BillID,
		BankInfoID: f.bank.ID,
		PaidAt:     date(2025, time.March, 9),
	})
	require.NoError(t, err)

	updated := *payment
	updated.Type = entity.TransactionTypeIncome
	updated.Amount = decimal.NewFromInt(1)
	updated.BillID = nil
	require.NoError(t, f.ledger.Rebook(ctx, payment, &updated))

	stored, err := NewBillRepository(f.db).FindByIDAndUser(ctx, bill.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusOpen, stored.Status)
	assert.Nil(t, stored.PaidAt)
	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(1001)))
}

func TestLedger_UpdateCardReschedulesUpcomingBills(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	bills := NewBillRepository(f.db)
	card := f.newCard(t, 3, 10)

	march := entity.NewBillForCard(card, time.March, 2025)
	april := entity.NewBillForCard(card, time.April, 2025)
	may := entity.NewBillForCard(card, time.May, 2025)
	_, err := bills.CreateIfMissing(ctx, []*entity.Bill{march, april, may})
	require.NoError(t, err)
	_, _, err = f.ledger.SettleBill(ctx, adapter.SettleBillInput{
		UserID: f.userID, BillID: may.ID, BankInfoID: f.bank.ID, PaidAt: date(2025, time.March, 20),
	})
	require.NoError(t, err)

	card.DueDay = 31
	card.UpdatedAt = date(2025, time.April, 1)
	moved, err := f.ledger.UpdateCard(ctx, card, date(2025, time.April, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	dueDates := map[string]time.Time{}
	stored, err := bills.FindByCard(ctx, card.ID)
	require.NoError(t, err)
	for _, b := range stored {
		dueDates[b.Reference] = b.DueDate
	}
	assert.Equal(t, date(2025, time.March, 10), dueDates["2025-03"], "past bill")
	assert.Equal(t, date(2025, time.April, 30), dueDates["2025-04"], "due day clamps to the month")
	assert.Equal(t, date(2025, time.May, 10), dueDates["2025-05"], "paid bill")

	t.Run("unknown card", func(t *testing.T) {
		other := *card
		other.UserID = uuid.New()
		_, err := f.ledger.UpdateCard(ctx, &other, date(2025, time.April, 1))
		assert.ErrorIs(t, err, domainerror.ErrCardNotFound)
	})
}

func TestLedger_SettleBillRequiresOwnedAccount(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	card := f.newCard(t, 3, 10)

	bill := entity.NewBillForCard(card, time.March, 2025)
	_, err := NewBillRepository(f.db).CreateIfMissing(ctx, []*entity.Bill{bill})
	require.NoError(t, err)

	_, _, err = f.ledger.SettleBill(ctx, adapter.SettleBillInput{
		UserID:     f.userID,
		BillID:     bill.ID,
		BankInfoID: uuid.New(),
		PaidAt:     date(2025, time.March, 9),
	})
	assert.ErrorIs(t, err, domainerror.ErrBankInfoNotFound)

	stored, err := NewBillRepository(f.db).FindByIDAndUser(ctx, bill.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusOpen, stored.Status)
}

func TestLedger_SettleZeroBillBooksNothing(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	card := f.newCard(t, 3, 10)

	bill := entity.NewBillForCard(card, time.March, 2025)
	_, err := NewBillRepository(f.db).CreateIfMissing(ctx, []*entity.Bill{bill})
	require.NoError(t, err)

	paid, payment, err := f.ledger.SettleBill(ctx, adapter.SettleBillInput{
		UserID:     f.userID,
		BillID:     bill.ID,
		BankInfoID: f.bank.ID,
		PaidAt:     date(2025, time.March, 9),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPaid, paid.Status)
	assert.Nil(t, payment)
	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(1000)))
}

func TestLedger_DeleteBankCascade(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	banks := NewBankInfoRepository(f.db)

	savings := entity.NewBankInfo(f.userID, "Savings", entity.BankAccountSavings, decimal.Zero, "Bank")
	require.NoError(t, banks.Create(ctx, savings))
	card := f.newCard(t, 3, 10)

	transfer := entity.NewTransaction(f.userID, entity.TransactionTypeTransfer, entity.TransactionStatusCompleted,
		decimal.NewFromInt(200), "Save", date(2025, time.March, 7))
	transfer.BankInfoID = &f.bank.ID
	transfer.DestinationBankInfoID = &savings.ID

	purchase := entity.NewTransaction(f.userID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
		decimal.NewFromInt(50), "Lunch", date(2025, time.March, 1))
	purchase.CardID = &card.ID

	require.NoError(t, f.ledger.Book(ctx, []*entity.Transaction{transfer, purchase}))
	require.True(t, f.balanceOf(t, savings.ID).Equal(decimal.NewFromInt(200)))

	require.NoError(t, f.ledger.DeleteBankCascade(ctx, f.userID, f.bank.ID))

	_, err := banks.FindByIDAndUser(ctx, f.bank.ID, f.userID)
	assert.ErrorIs(t, err, domainerror.ErrBankInfoNotFound)
	assert.True(t, f.balanceOf(t, savings.ID).IsZero(), "transfer into savings must be reverted")

	_, err = NewCardRepository(f.db).FindByIDAndUser(ctx, card.ID, f.userID)
	assert.ErrorIs(t, err, domainerror.ErrCardNotFound)

	bills, err := NewBillRepository(f.db).FindByCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, bills)

	_, err = NewTransactionRepository(f.db).FindByIDAndUser(ctx, purchase.ID, f.userID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	t.Run("unknown account", func(t *testing.T) {
		err := f.ledger.DeleteBankCascade(ctx, f.userID, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrBankInfoNotFound)
	})
}

func TestLedger_DeleteCardKeepsPayments(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	card := f.newCard(t, 3, 10)

	purchase := entity.NewTransaction(f.userID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
		decimal.NewFromInt(100), "Shoes", date(2025, time.March, 1))
	purchase.CardID = &card.ID
	require.NoError(t, f.ledger.Book(ctx, []*entity.Transaction{purchase}))

	_, payment, err := f.ledger.SettleBill(ctx, adapter.SettleBillInput{
		UserID:     f.userID,
		BillID:     *purchase.BillID,
		BankInfoID: f.bank.ID,
		PaidAt:     date(2025, time.March, 9),
	})
	require.NoError(t, err)

	require.NoError(t, f.ledger.DeleteCardCascade(ctx, f.userID, card.ID))

	kept, err := NewTransactionRepository(f.db).FindByIDAndUser(ctx, payment.ID, f.userID)
	require.NoError(t, err)
	assert.Nil(t, kept.BillID)
	assert.True(t, f.balanceOf(t, f.bank.ID).Equal(decimal.NewFromInt(900)))

	err = f.ledger.DeleteCardCascade(ctx, f.userID, card.ID)
	assert.ErrorIs(t, err, domainerror.ErrCardNotFound)
}
