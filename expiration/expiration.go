// This file defines how cache entries expire over time.

package expiration

import "time"

/*
Strategy is the interface that all expiration rules must follow. The cache
asks it two questions: when does an entry written now go stale, and is an
entry stale at a given instant. Staleness is a pure function of the clock:
nothing about an entry changes when it crosses its expiry.
*/
type Strategy interface {

	// ExpireAt returns the absolute expiry for an entry written at now with
	// the given per-write ttl. The zero time means "never expires".
	ExpireAt(now time.Time, ttl time.Duration) time.Time

	// IsExpired reports whether an entry with the given expiry is stale at now.
	IsExpired(expireAt, now time.Time) bool
}

// IsExpired is the staleness rule shared by every read and sweep path: an
// entry with an expiry is stale from that instant on. An entry is fresh only
// while now is strictly before its expiry.
func IsExpired(expireAt, now time.Time) bool {
	return !expireAt.IsZero() && !now.Before(expireAt)
}
