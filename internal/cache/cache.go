package cache

import (
	"context"
	"time"
)

// Store keeps list-fetch results for a bounded time.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate drops every entry under prefix.
	Invalidate(ctx context.Context, prefix string) error
}
