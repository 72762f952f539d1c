package types

import "time"

// Entry is the unit of storage: one resolved value and when it goes stale.
// Entries are never mutated after they are stored; a write replaces the
// pointer held by the shard, so readers may use an Entry after releasing the
// shard lock.
type Entry[V any] struct {
	Value     V
	CreatedAt time.Time
	ExpireAt  time.Time // zero => never expires
}

const (
	// DefaultExpiration asks the cache to apply its configured default TTL.
	DefaultExpiration time.Duration = 0

	// NoExpiration stores an entry that never goes stale, whatever the default.
	NoExpiration time.Duration = -1
)
