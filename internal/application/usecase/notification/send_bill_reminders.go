// Package notification contains use cases that reach users outside of the API.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// DefaultDaysAhead is how far ahead reminders look when no window is configured.
const DefaultDaysAhead = 3

// SendBillRemindersInput represents the input for the reminder run.
type SendBillRemindersInput struct {
	Now       time.Time
	DaysAhead int
}

// SendBillRemindersOutput summarizes a reminder run.
type SendBillRemindersOutput struct {
	Found   int
	Sent    int
	Skipped int
	Failed  int
}

// SendBillRemindersUseCase emails the owners of unpaid bills that are due soon.
type SendBillRemindersUseCase struct {
	billRepo     adapter.BillRepository
	cardRepo     adapter.CardRepository
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
}

// NewSendBillRemindersUseCase creates a new SendBillRemindersUseCase instance.
func NewSendBillRemindersUseCase(
	billRepo adapter.BillRepository,
	cardRepo adapter.CardRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *SendBillRemindersUseCase {
	return &SendBillRemindersUseCase{
		billRepo:     billRepo,
		cardRepo:     cardRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Execute sends one reminder per unpaid bill due in [today, today+DaysAhead].
// Failures on individual bills are logged and counted, never returned.
func (uc *SendBillRemindersUseCase) Execute(ctx context.Context, input SendBillRemindersInput) (*SendBillRemindersOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	daysAhead := input.DaysAhead
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}

	today := entity.DateOnly(now)
	bills, err := uc.billRepo.FindUnpaidDueBetween(ctx, today, today.AddDate(0, 0, daysAhead))
	if err != nil {
		return nil, fmt.Errorf("failed to find bills due soon: %w", err)
	}

	output := &SendBillRemindersOutput{Found: len(bills)}
	users := make(map[uuid.UUID]*entity.User)

	for _, bill := range bills {
		if !bill.Amount.IsPositive() {
			output.Skipped++
			continue
		}

		if err := uc.remind(ctx, bill, today, users); err != nil {
			output.Failed++
			slog.Error("Failed to send bill reminder", "bill_id", bill.ID, "error", err)
			continue
		}
		output.Sent++
	}

	slog.Info("Bill reminders processed",
		"found", output.Found,
		"sent", output.Sent,
		"skipped", output.Skipped,
		"failed", output.Failed,
	)

	return output, nil
}

func (uc *SendBillRemindersUseCase) remind(ctx context.Context, bill *entity.Bill, today time.Time, users map[uuid.UUID]*entity.User) error {
	user, ok := users[bill.UserID]
	if !ok {
		var err error
		user, err = uc.userRepo.FindByID(ctx, bill.UserID)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}
		users[bill.UserID] = user
	}

	card, err := uc.cardRepo.FindByIDAndUser(ctx, bill.CardID, bill.UserID)
	if err != nil {
		return fmt.Errorf("failed to find card: %w", err)
	}

	dueDate := entity.DateOnly(bill.DueDate)
	return uc.emailService.SendBillReminder(ctx, adapter.BillReminderInput{
		UserEmail:       user.Email,
		UserName:        user.Username,
		CardDescription: card.Description,
		BillDescription: bill.Description,
		Amount:          bill.Amount.StringFixed(2),
		DueDate:         dueDate,
		DaysUntilDue:    int(dueDate.Sub(today).Hours() / 24),
	})
}
