package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingMarker holds a claimed key until the job id is known. Job ids are
// "<nanos>-<seq>" so the marker never collides with a real value.
const pendingMarker = "pending"

// IdempotencyStore remembers Idempotency-Key results in Redis.
// Key format: idem:<scope>:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	scope  string
}

// NewIdempotencyStore creates a store whose keys are namespaced by scope
// (e.g. "post_job").
func NewIdempotencyStore(client redis.Cmdable, scope string) *IdempotencyStore {
	return &IdempotencyStore{client: client, scope: scope}
}

// Claim reserves key with SET NX. A losing caller gets the stored job id, or
// "" while the winner is still posting.
func (s *IdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	k := s.key(key)

	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, ttl).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency claim: %w", err)
		}
		if ok {
			return "", true, nil
		}

		v, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("idempotency claim: %w", err)
		}
		if v == pendingMarker {
			return "", false, nil
		}
		return v, false, nil
	}
	return "", false, nil
}

// Complete replaces the pending marker with the job id.
func (s *IdempotencyStore) Complete(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return fmt.Sprintf("idem:%s:%s", s.scope, key)
}
