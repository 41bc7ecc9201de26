package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/application/usecase/bill"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
	"github.com/finance-tracker/moneyflow/internal/infra/db/dbtest"
	"github.com/finance-tracker/moneyflow/internal/integration/persistence"
)

type recordingEmails struct {
	sent   []adapter.BillReminderInput
	failOn string
}

func (r *recordingEmails) SendBillReminder(_ context.Context, input adapter.BillReminderInput) error {
	if input.UserEmail == r.failOn {
		return errors.New("mailbox unavailable")
	}
	r.sent = append(r.sent, input)
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestSendBillRemindersUseCase(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.New(t)
	ledger := persistence.NewLedger(gdb)
	userRepo := persistence.NewUserRepository(gdb)

	newUser := func(name string) *entity.User {
		user := entity.NewUser(name, name+"@example.com", "hash")
		require.NoError(t, userRepo.Create(ctx, user))
		return user
	}
	newCard := func(user *entity.User, description string) *entity.Card {
		card := entity.NewCard(user.ID, description, decimal.NewFromInt(5000), "visa", 3, 10, nil)
		card.CreatedAt = date(2025, time.April, 1)
		require.NoError(t, ledger.CreateCardWithBills(ctx, card, bill.FirstBills(card, card.CreatedAt)))
		return card
	}
	purchase := func(card *entity.Card, amount string) {
		txn := entity.NewTransaction(card.UserID, entity.TransactionTypeCardExpense, entity.TransactionStatusCompleted,
			decimal.RequireFromString(amount), "Groceries", date(2025, time.April, 1))
		txn.CardID = &card.ID
		require.NoError(t, ledger.Book(ctx, []*entity.Transaction{txn}))
	}

	ana := newUser("ana")
	bruno := newUser("bruno")
	carla := newUser("carla")

	purchase(newCard(ana, "Visa Ana"), "120.5")
	newCard(bruno, "Empty card")
	purchase(newCard(carla, "Visa Carla"), "80")

	emails := &recordingEmails{failOn: "carla@example.com"}
	uc := NewSendBillRemindersUseCase(
		persistence.NewBillRepository(gdb),
		persistence.NewCardRepository(gdb),
		userRepo,
		emails,
	)

	output, err := uc.Execute(ctx, SendBillRemindersInput{Now: date(2025, time.April, 8).Add(15 * time.Hour), DaysAhead: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, output.Found)
	assert.Equal(t, 1, output.Sent)
	assert.Equal(t, 1, output.Skipped)
	assert.Equal(t, 1, output.Failed)

	require.Len(t, emails.sent, 1)
	reminder := emails.sent[0]
	assert.Equal(t, "ana@example.com", reminder.UserEmail)
	assert.Equal(t, "Visa Ana", reminder.CardDescription)
	assert.Equal(t, "120.50", reminder.Amount)
	assert.Equal(t, date(2025, time.April, 10), reminder.DueDate)
	assert.Equal(t, 2, reminder.DaysUntilDue)
}

func TestSendBillRemindersUseCase_NothingDue(t *testing.T) {
	gdb := dbtest.New(t)
	emails := &recordingEmails{}
	uc := NewSendBillRemindersUseCase(
		persistence.NewBillRepository(gdb),
		persistence.NewCardRepository(gdb),
		persistence.NewUserRepository(gdb),
		emails,
	)

	output, err := uc.Execute(context.Background(), SendBillRemindersInput{})
	require.NoError(t, err)
	assert.Zero(t, output.Found)
	assert.Empty(t, emails.sent)
}
