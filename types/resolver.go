package types

import "context"

// Resolver is the contract between the cache and the data source it fronts.
type Resolver[K Key, V any] interface {

	/*
		Resolve is called when the cache misses, when an entry went stale,
		and on every explicit reload.
		1. Cache checks memory → key absent or stale
		2. Cache calls Resolve(key)
		3. Resolver fetches from DB/API
		4. Cache stores the result with an expiry
		5. Cache returns the value

		A successful call may return a "not found" value (a nil pointer, an
		empty slice); the cache stores it like any other value. Returning an
		error evicts the key instead.
	*/
	Resolve(ctx context.Context, key K) (V, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc[K Key, V any] func(ctx context.Context, key K) (V, error)

// Resolve calls f(ctx, key).
func (f ResolverFunc[K, V]) Resolve(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}
