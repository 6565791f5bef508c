package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTokenNotFound is returned when a refresh token is not in the
	// registry: never issued, already rotated, or revoked.
	ErrTokenNotFound = errors.New("refresh token not found")
	// ErrTokenExpired is returned when a registry entry has outlived its
	// expiry. The stale entry is removed as a side effect of the lookup.
	ErrTokenExpired = errors.New("refresh token expired")
)

// RefreshTokenData is the registry record for an outstanding refresh token.
type RefreshTokenData struct {
	UserID    uint      `json:"user_id"`
	JTI       string    `json:"jti"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenStore holds refresh-token registry state and the revocation set.
// It is injectable so the in-process implementation can be swapped for a
// shared one in multi-instance deployments.
type TokenStore interface {
	// PutRefreshToken registers an outstanding refresh token keyed by its
	// opaque string value.
	PutRefreshToken(ctx context.Context, token string, data RefreshTokenData) error
	// GetRefreshToken returns the registry entry for token.
	GetRefreshToken(ctx context.Context, token string) (*RefreshTokenData, error)
	// ConsumeRefreshToken atomically removes and returns the registry entry.
	// Rotation relies on this being a single critical section per token:
	// under concurrent rotation of the same token exactly one caller wins.
	ConsumeRefreshToken(ctx context.Context, token string) (*RefreshTokenData, error)
	// RemoveRefreshToken drops a registry entry if present.
	RemoveRefreshToken(ctx context.Context, token string) error
	// Revoke adds a token value to the revocation set. The entry is evicted
	// after ttl, which callers set to the token's remaining lifetime.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	// IsRevoked reports revocation-set membership.
	IsRevoked(ctx context.Context, token string) (bool, error)
}
