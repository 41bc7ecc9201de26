package entity

import "github.com/google/uuid"

// Principal is the authenticated identity an operation acts on behalf of.
// It is built once by the auth middleware and passed explicitly to use cases.
type Principal struct {
	UserID               uuid.UUID
	Email                string
	Username             string
	StripeSubscriptionID string
}

// Authenticated reports whether the principal carries a user id.
func (p Principal) Authenticated() bool {
	return p.UserID != uuid.Nil
}
