package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a user of the application. Billing fields mirror the
// customer, subscription and price held by the billing provider.
type User struct {
	ID                   uuid.UUID
	Username             string
	Email                string
	PasswordHash         string
	StripeCustomerID     string
	StripeSubscriptionID string
	StripePriceID        string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewUser creates a new User entity.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Principal returns the acting identity of the user.
func (u *User) Principal() Principal {
	return Principal{
		UserID:               u.ID,
		Email:                u.Email,
		Username:             u.Username,
		StripeSubscriptionID: u.StripeSubscriptionID,
	}
}
