package ports

import "context"

// IdempotencyStore remembers which resource a client-supplied Idempotency-Key
// produced, so a retried create returns the first record.
type IdempotencyStore interface {
	// Claim reserves key within scope. When the key was already claimed it
	// returns claimed=false and the bound resource ID, which is empty while
	// the first request is still in flight.
	Claim(ctx context.Context, scope, key string) (resourceID string, claimed bool, err error)
	// Bind records the resource created under a claimed key.
	Bind(ctx context.Context, scope, key, resourceID string) error
	// Release drops a claim so the client may retry after a failure.
	Release(ctx context.Context, scope, key string) error
}
