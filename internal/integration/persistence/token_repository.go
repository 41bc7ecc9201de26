package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/moneyflow/internal/application/adapter"
)

const revokedTokenPrefix = "auth:revoked:"

// tokenRepository implements the adapter.TokenStore interface with Redis.
// Revoked ids expire together with the token they refer to.
type tokenRepository struct {
	client *redis.Client
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(client *redis.Client) adapter.TokenStore {
	return &tokenRepository{
		client: client,
	}
}

// Revoke marks the token id as revoked for ttl.
func (r *tokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (r *tokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
