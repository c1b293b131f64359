package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encodable values under string keys with the TTL configured on the
// implementation.
type Cache interface {
	// Get decodes the value stored under key into dest, or returns ErrMiss.
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}
