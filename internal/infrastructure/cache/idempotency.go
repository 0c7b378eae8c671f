// Package cache provides small Redis-backed and in-memory stores used for
// request deduplication. The payment webhook handler uses an
// IdempotencyStore to drop repeated Midtrans notifications.
package cache

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed keys for a TTL so repeats can be
// acknowledged without reprocessing.
type IdempotencyStore interface {
	// MarkProcessed records the key. Returns true if the key is new,
	// false if it was already recorded.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// IsProcessed reports whether the key is recorded and unexpired.
	IsProcessed(ctx context.Context, key string) (bool, error)
	Close() error
}
