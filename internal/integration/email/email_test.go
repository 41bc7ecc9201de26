package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
	domainerror "github.com/finance-tracker/moneyflow/internal/domain/error"
	"github.com/finance-tracker/moneyflow/internal/integration/email/templates"
)

func newTestService(t *testing.T) (*Service, *MockEmailSender) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	sender := NewMockEmailSender()
	return NewService(sender, renderer, "https://app.example.com/"), sender
}

func reminderInput() adapter.BillReminderInput {
	return adapter.BillReminderInput{
		UserEmail:       "ana@example.com",
		UserName:        "ana",
		CardDescription: "Visa <Gold>",
		BillDescription: "Fatura de Abril/2025",
		Amount:          "120.50",
		DueDate:         time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
		DaysUntilDue:    2,
	}
}

func TestService_SendBillReminder(t *testing.T) {
	svc, sender := newTestService(t)

	if err := svc.SendBillReminder(context.Background(), reminderInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.SentEmails))
	}

	sent := sender.SentEmails[0]
	if sent.To != "ana@example.com" {
		t.Errorf("unexpected recipient %s", sent.To)
	}
	if sent.Subject != "Fatura de Abril/2025 vence em 2 dias - MoneyFlow" {
		t.Errorf("unexpected subject %q", sent.Subject)
	}
	for _, want := range []string{"R$ 120,50", "10/04/2025", "https://app.example.com/cards"} {
		if !strings.Contains(sent.Text, want) {
			t.Errorf("expected text to contain %q", want)
		}
		if !strings.Contains(sent.HTML, want) {
			t.Errorf("expected html to contain %q", want)
		}
	}
	if strings.Contains(sent.HTML, "<Gold>") {
		t.Error("expected html to escape the card description")
	}
	if !strings.Contains(sent.Text, "Visa <Gold>") {
		t.Error("expected text to keep the card description as is")
	}
}

func TestService_SendBillReminder_SenderFailure(t *testing.T) {
	svc, sender := newTestService(t)
	sender.FailError = errors.New("rate limited")

	err := svc.SendBillReminder(context.Background(), reminderInput())
	if domainerror.KindOf(err) != domainerror.KindExternalService {
		t.Errorf("expected external service error, got %v", err)
	}
}

func TestDueIn(t *testing.T) {
	tests := map[int]string{0: "hoje", 1: "amanha", 5: "em 5 dias"}
	for days, want := range tests {
		if got := dueIn(days); got != want {
			t.Errorf("dueIn(%d) = %q, want %q", days, got, want)
		}
	}
}

func TestIsPermanentError(t *testing.T) {
	if !isPermanentError(errors.New("422 validation_error")) {
		t.Error("expected 422 to be permanent")
	}
	if isPermanentError(errors.New("503 service unavailable")) {
		t.Error("expected 503 to be temporary")
	}
	if isPermanentError(nil) {
		t.Error("expected nil to be temporary")
	}
}
