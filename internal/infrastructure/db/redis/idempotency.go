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
	// claimLease bounds how long an unbound claim blocks retries when the
	// request that made it never reaches Bind or Release.
	claimLease = 30 * time.Second
)

// IdempotencyStore records Idempotency-Key claims in Redis so retried creates
// can be answered with the first resource.
// Key format: idem:<scope>:<key>; value is the created resource ID, or empty
// while the first request is still in flight. An empty claim lives for the
// lease only; Bind extends the key to the full TTL.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
	lease  time.Duration
}

// NewIdempotencyStore wraps client. ttl <= 0 uses defaultIdempotencyTTL.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl, lease: min(claimLease, ttl)}
}

// Claim reserves key in scope for the claim lease. A claim that expires
// between SETNX and GET is retried once.
func (s *IdempotencyStore) Claim(ctx context.Context, scope, key string) (string, bool, error) {
	k := s.key(scope, key)
	for attempt := 0; attempt < 2; attempt++ {
		claimed, err := s.client.SetNX(ctx, k, "", s.lease).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency claim: %w", err)
		}
		if claimed {
			return "", true, nil
		}

		id, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("idempotency lookup: %w", err)
		}
		return id, false, nil
	}
	return "", false, nil
}

// Bind stores the resource ID under a claimed key and refreshes its expiry.
func (s *IdempotencyStore) Bind(ctx context.Context, scope, key, resourceID string) error {
	if err := s.client.Set(ctx, s.key(scope, key), resourceID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency bind: %w", err)
	}
	return nil
}

// Release removes a claim.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
