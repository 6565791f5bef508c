package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogapi/internal/cache"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	revokedTokenKeyPrefix = "revoked_token:"
)

// RedisTokenStore backs the token registry with Redis so sessions survive
// process restarts and can be shared between instances. Eviction uses
// native key TTLs.
type RedisTokenStore struct {
	cache *cache.Client
}

var _ TokenStore = (*RedisTokenStore)(nil)

// NewRedisTokenStore creates a Redis-backed token store.
func NewRedisTokenStore(cache *cache.Client) *RedisTokenStore {
	return &RedisTokenStore{cache: cache}
}

// PutRefreshToken registers a refresh token with a TTL matching its expiry.
func (s *RedisTokenStore) PutRefreshToken(ctx context.Context, token string, data RefreshTokenData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+token, payload, ttl)
}

// GetRefreshToken returns the registry entry for token.
func (s *RedisTokenStore) GetRefreshToken(ctx context.Context, token string) (*RefreshTokenData, error) {
	raw, err := s.cache.Get(ctx, refreshTokenKeyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	return decodeRefreshToken(raw)
}

// ConsumeRefreshToken removes and returns the registry entry atomically
// via GETDEL.
func (s *RedisTokenStore) ConsumeRefreshToken(ctx context.Context, token string) (*RefreshTokenData, error) {
	raw, err := s.cache.GetDel(ctx, refreshTokenKeyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	return decodeRefreshToken(raw)
}

// RemoveRefreshToken drops a registry entry.
func (s *RedisTokenStore) RemoveRefreshToken(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+token)
}

// Revoke adds token to the revocation set until ttl elapses.
func (s *RedisTokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+token, []byte("1"), ttl)
}

// IsRevoked reports revocation-set membership. Errors propagate so a Redis
// outage never admits a revoked token.
func (s *RedisTokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	raw, err := s.cache.Get(ctx, revokedTokenKeyPrefix+token)
	if err != nil {
		return false, fmt.Errorf("lookup revocation: %w", err)
	}
	return raw != nil, nil
}

func decodeRefreshToken(raw []byte) (*RefreshTokenData, error) {
	if raw == nil {
		// Redis expired the key or it was never there; both are terminal.
		return nil, ErrTokenNotFound
	}
	var data RefreshTokenData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal token data: %w", err)
	}
	return &data, nil
}
