package auth

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

// MemoryTokenStore keeps the refresh registry and revocation set in process
// memory. State is lost on restart, which invalidates all outstanding
// refresh tokens. A background sweeper evicts expired entries so neither
// map grows without bound.
type MemoryTokenStore struct {
	mu      sync.Mutex
	refresh map[string]RefreshTokenData
	revoked map[string]time.Time

	stop chan struct{}
	once sync.Once
}

var _ TokenStore = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore creates an empty store and starts its sweeper.
func NewMemoryTokenStore() *MemoryTokenStore {
	s := &MemoryTokenStore{
		refresh: make(map[string]RefreshTokenData),
		revoked: make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Close stops the background sweeper.
func (s *MemoryTokenStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// PutRefreshToken registers a refresh token.
func (s *MemoryTokenStore) PutRefreshToken(_ context.Context, token string, data RefreshTokenData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[token] = data
	return nil
}

// GetRefreshToken returns the registry entry, removing it lazily when it
// has expired.
func (s *MemoryTokenStore) GetRefreshToken(_ context.Context, token string) (*RefreshTokenData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.refresh[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	if time.Now().After(data.ExpiresAt) {
		delete(s.refresh, token)
		return nil, ErrTokenExpired
	}
	return &data, nil
}

// ConsumeRefreshToken removes and returns the registry entry under a single
// lock acquisition, so double rotation of the same token cannot both succeed.
func (s *MemoryTokenStore) ConsumeRefreshToken(_ context.Context, token string) (*RefreshTokenData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.refresh[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	delete(s.refresh, token)
	if time.Now().After(data.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return &data, nil
}

// RemoveRefreshToken drops a registry entry.
func (s *MemoryTokenStore) RemoveRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, token)
	return nil
}

// Revoke adds token to the revocation set until ttl elapses.
func (s *MemoryTokenStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past its own expiry; verification fails without the set.
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports revocation-set membership.
func (s *MemoryTokenStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *MemoryTokenStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, data := range s.refresh {
		if now.After(data.ExpiresAt) {
			delete(s.refresh, token)
		}
	}
	for token, deadline := range s.revoked {
		if now.After(deadline) {
			delete(s.revoked, token)
		}
	}
}
