package ports

import (
	"context"
	"time"
)

// IdempotencyStore remembers which result a client-supplied Idempotency-Key
// produced. A key is claimed before the work starts and completed once the
// result is known, so two requests carrying the same key never both do the work.
type IdempotencyStore interface {
	// Claim reserves key for the caller and reports claimed=true on success.
	// When the key is already taken it returns the stored value, or "" while
	// the request holding the claim has not completed yet.
	Claim(ctx context.Context, key string, ttl time.Duration) (stored string, claimed bool, err error)
	// Complete stores value under a key the caller claimed.
	Complete(ctx context.Context, key, value string, ttl time.Duration) error
	// Release drops a claim whose request failed so the key can be retried.
	Release(ctx context.Context, key string) error
}
