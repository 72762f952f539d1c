package cache

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krisalay/remote-cache/types"
)

// DefaultShards is used when Options.Shards is zero.
const DefaultShards = 16

// Options configures a RemoteCache. It is read once by New; changing it
// afterwards has no effect on the cache.
type Options[K types.Key, V any] struct {

	// Resolver fetches a value on miss, on stale read and on reload. Required.
	Resolver types.Resolver[K, V]

	// TTL is the default lifespan applied by writes that pass
	// DefaultExpiration. Zero means such entries never expire.
	TTL time.Duration

	// Capacity is the declared maximum entry count. It is stored and
	// reported by Capacity() but no eviction policy enforces it.
	Capacity int

	// Shards is the number of lock stripes, rounded up to a power of two.
	Shards int

	// ResolveTimeout bounds each resolver call on top of the caller's context.
	ResolveTimeout time.Duration

	// PropagateErrors makes Get, Reload and ReloadAll return resolver
	// failures as *types.ResolveError. By default failures are swallowed:
	// the key is evicted and the zero value comes back with a nil error.
	PropagateErrors bool

	// DisableCoalescing lets concurrent misses for one key each call the
	// resolver instead of sharing a single in-flight call.
	DisableCoalescing bool

	Metrics types.Metrics
	Logger  *zap.Logger

	// Clock overrides time.Now, mostly for tests.
	Clock func() time.Time
}

func (o *Options[K, V]) validate() error {
	if o.Resolver == nil {
		return types.ErrNoResolver
	}
	if f, ok := o.Resolver.(types.ResolverFunc[K, V]); ok && f == nil {
		return types.ErrNoResolver
	}
	switch {
	case o.TTL < 0:
		return errors.Wrapf(types.ErrInvalidOptions, "ttl %v is negative", o.TTL)
	case o.Capacity < 0:
		return errors.Wrapf(types.ErrInvalidOptions, "capacity %d is negative", o.Capacity)
	case o.Shards < 0:
		return errors.Wrapf(types.ErrInvalidOptions, "shards %d is negative", o.Shards)
	case o.ResolveTimeout < 0:
		return errors.Wrapf(types.ErrInvalidOptions, "resolve timeout %v is negative", o.ResolveTimeout)
	}
	return nil
}
