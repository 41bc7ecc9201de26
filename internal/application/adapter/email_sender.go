// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BillReminderInput represents the data of a bill reminder email.
type BillReminderInput struct {
	UserEmail       string
	UserName        string
	CardDescription string
	BillDescription string
	Amount          string
	DueDate         time.Time
	DaysUntilDue    int
}

// EmailService defines the interface for composing and sending application emails.
type EmailService interface {
	// SendBillReminder renders and sends a reminder for an upcoming bill.
	SendBillReminder(ctx context.Context, input BillReminderInput) error
}
