package api

import (
	"context"
	"time"

	"github.com/krisalay/remote-cache/types"
)

/*
Cache defines the PUBLIC API of the remote cache.
This is a contract that guarantees certain behaviors, without exposing internals.
Sharding, locking, miss coalescing, expiry arithmetic and resolver deadlines
are hidden behind this interface.
*/
type Cache[K types.Key, V any] interface {

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		-------------------
		1. If the key exists and is NOT stale:
		   - Return the value immediately (cache hit)

		2. If the key does NOT exist or is stale:
		   - Resolve it (concurrent misses share one resolver call)
		   - Store it with the default TTL
		   - Return it

		3. If the resolver fails:
		   - The key is evicted
		   - The zero value is returned
	*/
	Get(ctx context.Context, key K) (V, error)

	/*
		Set stores a key-value pair unconditionally.

		TTL:
		----
		- DefaultExpiration (0): the cache default; never if the default is 0
		- NoExpiration (-1): never expires
		- anything else: now + ttl

		Returns true when an existing entry was overwritten.
	*/
	Set(key K, value V, ttl time.Duration) bool

	/*
		Reload resolves the key even if a fresh entry exists and replaces it.
		A failed reload evicts the key.
	*/
	Reload(ctx context.Context, key K) (V, error)

	/*
		ReloadAll reloads the given keys sequentially, or every cached key
		when keys is nil. Returns the number of keys processed.
	*/
	ReloadAll(ctx context.Context, keys []K) (int, error)

	/*
		Invalidate deletes a key from the cache immediately.
		Removing a non-existing key is safe and returns false.
	*/
	Invalidate(key K) bool

	// Reset deletes every key and returns how many were deleted.
	Reset() int

	/*
		Size returns the number of stored entries.
		Stale entries that were not swept yet are counted.
	*/
	Size() int

	/*
		Clean sweeps stale entries and returns how many were removed.
		Nothing calls it automatically; schedule it yourself if needed.
	*/
	Clean() int

	/*
		TTL returns the remaining time-to-live for a key.

		RETURN VALUES (Redis-compatible semantics):
		-------------------------------------------
		> 0   : Duration remaining before expiration
		-1    : Key exists but has no TTL
		-2    : Key does not exist or is already stale
	*/
	TTL(key K) time.Duration
}
