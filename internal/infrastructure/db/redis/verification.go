package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumedTTL keeps the used-marker a little longer than the 24h token
// expiry, after which the token is dead anyway.
const consumedTTL = 25 * time.Hour

// VerificationStore records one-time redemption of email-verification link
// tokens. Key format: verify:used:<sha256(token)>.
type VerificationStore struct {
	client *redis.Client
}

// NewVerificationStore creates a VerificationStore wrapping the given client.
func NewVerificationStore(client *redis.Client) *VerificationStore {
	return &VerificationStore{client: client}
}

// Consume atomically marks the token as used. It returns true on first
// redemption and false when the token was already consumed.
func (s *VerificationStore) Consume(ctx context.Context, linkToken string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(linkToken), "1", consumedTTL).Result()
	if err != nil {
		return false, fmt.Errorf("consume verification token: %w", err)
	}
	return ok, nil
}

func (s *VerificationStore) key(linkToken string) string {
	sum := sha256.Sum256([]byte(linkToken))
	return "verify:used:" + hex.EncodeToString(sum[:])
}
