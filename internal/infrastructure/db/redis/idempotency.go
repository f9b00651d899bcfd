package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps client-supplied idempotency keys to the message id
// created for them, so a retried POST /messages returns the original message
// instead of creating a duplicate. Key format: idem:msg:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the message id recorded for key, or "" when the key is unseen.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, nil
}

// Record stores the message id for key (expires after idempotencyTTL).
func (s *IdempotencyStore) Record(ctx context.Context, key, messageID string) error {
	return s.client.Set(ctx, s.key(key), messageID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:msg:" + key
}
