package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

const pendingMarker = "pending"

// TokenStore backs token revocation, one-time tokens and purchase
// idempotency keys with Redis. Key formats:
//
//	revoked:<jti>
//	otp:<purpose>:<token>
//	idem:<client_id>:<key>
type TokenStore struct {
	client *redis.Client
}

var (
	_ ports.TokenRevoker      = (*TokenStore)(nil)
	_ ports.OneTimeTokenStore = (*TokenStore)(nil)
	_ ports.IdempotencyStore  = (*TokenStore)(nil)
)

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke denylists a token ID until the token would have expired.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, "revoked:"+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, "revoked:"+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *TokenStore) Issue(ctx context.Context, purpose ports.TokenPurpose, userID string, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	token := hex.EncodeToString(b)
	if err := s.client.Set(ctx, otpKey(purpose, token), userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Consume returns the user ID bound to token and deletes it atomically.
func (s *TokenStore) Consume(ctx context.Context, purpose ports.TokenPurpose, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, otpKey(purpose, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("consume token: %w", err)
	}
	return userID, nil
}

func (s *TokenStore) Reserve(ctx context.Context, clientID, key string, ttl time.Duration) (string, bool, error) {
	k := idemKey(clientID, key)
	ok, err := s.client.SetNX(ctx, k, pendingMarker, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if ok {
		return "", true, nil
	}

	v, err := s.client.Get(ctx, k).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// expired between SETNX and GET
		return "", false, domain.ErrPurchaseInProgress
	case err != nil:
		return "", false, fmt.Errorf("read idempotency key: %w", err)
	case v == pendingMarker:
		return "", false, domain.ErrPurchaseInProgress
	}
	return v, false, nil
}

func (s *TokenStore) Complete(ctx context.Context, clientID, key, orderID string, ttl time.Duration) error {
	return s.client.Set(ctx, idemKey(clientID, key), orderID, ttl).Err()
}

func (s *TokenStore) Release(ctx context.Context, clientID, key string) error {
	return s.client.Del(ctx, idemKey(clientID, key)).Err()
}

func otpKey(purpose ports.TokenPurpose, token string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, token)
}

func idemKey(clientID, key string) string {
	return fmt.Sprintf("idem:%s:%s", clientID, key)
}
