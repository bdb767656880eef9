package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	pendingMarker         = "pending"
)

// IdempotencyStore remembers which resource a create request produced.
// A key holds "pending" while its first request runs.
// Key format: idem:<resource>:<subject>:<idempotency_key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key with a pending marker using SETNX. When the key is
// already held it returns the stored resource id, or "" while the holder
// has not completed.
func (s *IdempotencyStore) Reserve(ctx context.Context, resource, subject, key string) (string, bool, error) {
	k := s.key(resource, subject, key)
	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}
	id, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// released between SETNX and GET; the holder failed
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return storedID(id), false, nil
}

// Complete replaces the reservation with the created resource id.
func (s *IdempotencyStore) Complete(ctx context.Context, resource, subject, key, id string) error {
	if err := s.client.Set(ctx, s.key(resource, subject, key), id, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a reservation whose create failed.
func (s *IdempotencyStore) Release(ctx context.Context, resource, subject, key string) error {
	if err := s.client.Del(ctx, s.key(resource, subject, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

// storedID maps the pending marker to "".
func storedID(v string) string {
	if v == pendingMarker {
		return ""
	}
	return v
}

func (s *IdempotencyStore) key(resource, subject, key string) string {
	return fmt.Sprintf("idem:%s:%s:%s", resource, subject, key)
}
