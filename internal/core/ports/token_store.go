package ports

import (
	"context"
	"time"
)

// TokenStore records revoked access tokens until they would have expired.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
