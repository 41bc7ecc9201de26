package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/email/templates"
)

// Service composes application emails and hands them to the sender.
type Service struct {
	sender     adapter.EmailSender
	renderer   *templates.Renderer
	appBaseURL string
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer, appBaseURL string) *Service {
	return &Service{
		sender:     sender,
		renderer:   renderer,
		appBaseURL: strings.TrimSuffix(appBaseURL, "/"),
	}
}

// SendBillReminder renders and sends a reminder for an upcoming bill.
func (s *Service) SendBillReminder(ctx context.Context, input adapter.BillReminderInput) error {
	data := templates.BillReminderData{
		UserName:        input.UserName,
		CardDescription: input.CardDescription,
		BillDescription: input.BillDescription,
		Amount:          formatBRL(input.Amount),
		DueDate:         input.DueDate.Format("02/01/2006"),
		DueIn:           dueIn(input.DaysUntilDue),
		BillsURL:        s.appBaseURL + "/cards",
	}

	html, text, err := s.renderer.Render(templates.BillReminder, data)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render bill reminder",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	result, err := s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.UserEmail,
		Name:    input.UserName,
		Subject: fmt.Sprintf("%s vence %s - MoneyFlow", input.BillDescription, data.DueIn),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return err
	}

	slog.Info("Bill reminder sent",
		"recipient", input.UserEmail,
		"bill", input.BillDescription,
		"resend_id", result.ResendID,
	)
	return nil
}

// formatBRL turns "1234.50" into "R$ 1234,50".
func formatBRL(amount string) string {
	return "R$ " + strings.Replace(amount, ".", ",", 1)
}

func dueIn(days int) string {
	switch {
	case days <= 0:
		return "hoje"
	case days == 1:
		return "amanha"
	default:
		return fmt.Sprintf("em %d dias", days)
	}
}

var _ adapter.EmailService = (*Service)(nil)
