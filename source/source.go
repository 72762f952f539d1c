// Package source holds resolvers backed by real data stores. Each type
// implements types.Resolver and can be handed straight to cache.Options.
//
// A key the store does not hold resolves to a nil value with a nil error, so
// the cache remembers the absence until it expires. Errors are reserved for
// storage failures, which make the cache evict the key.
package source
