// Package redis provides the cache service used for message-list
// caching, presence, and refresh-token bookkeeping.
package redis

import (
	"context"
	"time"
)

// CacheService is the synchronous cache surface. Keeping it an
// interface lets tests substitute a map-backed fake.
type CacheService interface {
	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns the value, or "" with nil error when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// GetOrError returns the value, or a CodeNotFound error when absent.
	GetOrError(ctx context.Context, key string) (string, error)

	// Delete removes a key if present.
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching the glob pattern.
	DeleteByPattern(ctx context.Context, pattern string) error

	// AddToSet, GetSetMembers and RemoveFromSet manage unordered sets;
	// used for the online-user roster.
	AddToSet(ctx context.Context, key string, members ...interface{}) error
	GetSetMembers(ctx context.Context, key string) ([]string, error)
	RemoveFromSet(ctx context.Context, key string, members ...interface{}) error
}

// AsyncCacheService adds non-blocking task submission for cache
// refreshes off the request path.
type AsyncCacheService interface {
	CacheService
	SubmitTask(action func())
}
