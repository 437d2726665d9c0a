package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const pendingMarker = "pending"

type expiring struct {
	value string
	until time.Time
}

// TokenStore keeps revoked tokens, one-time tokens and idempotency keys with
// expiry, for runs without Redis.
type TokenStore struct {
	mu   sync.Mutex
	keys map[string]expiring
	now  func() time.Time
}

var (
	_ ports.TokenRevoker      = (*TokenStore)(nil)
	_ ports.OneTimeTokenStore = (*TokenStore)(nil)
	_ ports.IdempotencyStore  = (*TokenStore)(nil)
)

func NewTokenStore() *TokenStore {
	return &TokenStore{keys: make(map[string]expiring), now: time.Now}
}

func (s *TokenStore) get(key string) (string, bool) {
	e, ok := s.keys[key]
	if !ok {
		return "", false
	}
	if s.now().After(e.until) {
		delete(s.keys, key)
		return "", false
	}
	return e.value, true
}

func (s *TokenStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys["revoked:"+tokenID] = expiring{value: "1", until: until}
	return nil
}

func (s *TokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.get("revoked:" + tokenID)
	return ok, nil
}

func (s *TokenStore) Issue(_ context.Context, purpose ports.TokenPurpose, userID string, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	token := hex.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[fmt.Sprintf("otp:%s:%s", purpose, token)] = expiring{value: userID, until: s.now().Add(ttl)}
	return token, nil
}

func (s *TokenStore) Consume(_ context.Context, purpose ports.TokenPurpose, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("otp:%s:%s", purpose, token)
	userID, ok := s.get(key)
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(s.keys, key)
	return userID, nil
}

func (s *TokenStore) Reserve(_ context.Context, clientID, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey(clientID, key)
	if v, ok := s.get(k); ok {
		if v == pendingMarker {
			return "", false, domain.ErrPurchaseInProgress
		}
		return v, false, nil
	}
	s.keys[k] = expiring{value: pendingMarker, until: s.now().Add(ttl)}
	return "", true, nil
}

func (s *TokenStore) Complete(_ context.Context, clientID, key, orderID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[idemKey(clientID, key)] = expiring{value: orderID, until: s.now().Add(ttl)}
	return nil
}

func (s *TokenStore) Release(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, idemKey(clientID, key))
	return nil
}

func idemKey(clientID, key string) string {
	return "idem:" + clientID + ":" + key
}
