// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/moneyflow/internal/domain/entity"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	TokenID              string
	UserID               uuid.UUID
	Email                string
	Username             string
	StripeSubscriptionID string
	ExpiresAt            time.Time
}

// Principal returns the identity carried by the claims.
func (c *TokenClaims) Principal() entity.Principal {
	return entity.Principal{
		UserID:               c.UserID,
		Email:                c.Email,
		Username:             c.Username,
		StripeSubscriptionID: c.StripeSubscriptionID,
	}
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateTokenPair generates a new access and refresh token pair.
	GenerateTokenPair(ctx context.Context, principal entity.Principal) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken validates a refresh token that has not been revoked.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a refresh token until it expires.
	InvalidateRefreshToken(ctx context.Context, token string) error
}

// TokenStore keeps revoked token ids.
type TokenStore interface {
	// Revoke marks the token id as revoked for ttl.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token id has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
