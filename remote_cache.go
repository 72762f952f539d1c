package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/remote-cache/engine"
	"github.com/krisalay/remote-cache/expiration"
	"github.com/krisalay/remote-cache/shard"
	"github.com/krisalay/remote-cache/types"
)

// Re-exported so callers of Set do not need to import types.
const (
	DefaultExpiration = types.DefaultExpiration
	NoExpiration      = types.NoExpiration
)

/*
RemoteCache is a lazy-loading, time-expiring cache in front of a resolver.
This struct is the orchestrator that connects:
- shards (storage + locking)
- engine (expiry arithmetic, resolver calls, metrics, logging)
- singleflight (miss coalescing)

All methods are safe for concurrent use. Expired entries stay in memory
until Get replaces them or Clean sweeps them; nothing runs in the background.
*/
type RemoteCache[K types.Key, V any] struct {
	shards   []*shard.Shard[K, V]
	engine   *engine.Engine[K, V]
	selector shard.Selector[K, V]

	// capacity is advisory only.
	capacity int
	ttl      time.Duration

	propagate bool
	coalesce  bool

	// sf collapses concurrent misses for the same key into one resolver call.
	sf singleflight.Group
}

// New builds a cache from opts. It fails when no resolver is given or a
// numeric option is negative.
func New[K types.Key, V any](opts Options[K, V]) (*RemoteCache[K, V], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := opts.Shards
	if n == 0 {
		n = DefaultShards
	}
	n = shard.NextPowerOfTwo(n)

	eng := engine.New(
		&expiration.ExpireAfterWrite{TTL: opts.TTL},
		opts.Resolver,
		opts.ResolveTimeout,
		opts.Metrics,
		opts.Logger,
		opts.Clock,
	)
	eng.Logger.Debug("cache created",
		zap.Duration("ttl", opts.TTL),
		zap.Int("capacity", opts.Capacity),
		zap.Int("shards", n),
	)

	return &RemoteCache[K, V]{
		shards:    shard.NewShards[K, V](n),
		engine:    eng,
		selector:  shard.HashSelector[K, V]{},
		capacity:  opts.Capacity,
		ttl:       opts.TTL,
		propagate: opts.PropagateErrors,
		coalesce:  !opts.DisableCoalescing,
	}, nil
}

/*
Get returns the cached value for key while it is fresh. A missing or stale
entry is resolved through Reload, so a miss and a resolver that found nothing
look the same to the caller.

When ctx ends while a shared resolve is still running, Get returns ctx.Err()
and leaves the key alone; the resolve finishes for the other callers.
*/
func (c *RemoteCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	ks := types.KeyString(key)
	sh := c.selector.Select(ks, c.shards)

	sh.Mu.RLock()
	ent, ok := sh.Store.Get(key)
	sh.Mu.RUnlock()

	if ok {
		if !c.engine.IsExpired(ent) {
			c.engine.Metrics.Hit()
			return ent.Value, nil
		}
		c.engine.Metrics.Expire()
	}

	c.engine.Metrics.Miss()

	if !c.coalesce {
		return c.reload(ctx, ks, key)
	}

	/*
		singleflight ensures that:
		- If 100 goroutines miss on the same key,
		  only ONE of them calls the resolver.
		- Others wait for and share its result.

		The flight is detached from any single caller's cancellation, and
		each caller stops waiting when its own ctx ends. ResolveTimeout
		still bounds the shared call.
	*/
	ch := c.sf.DoChan(ks, func() (any, error) {
		return c.reload(context.WithoutCancel(ctx), ks, key)
	})

	select {
	case res := <-ch:
		val, _ := res.Val.(V)
		return val, res.Err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

/*
Set stores value under key unconditionally and reports whether an existing
entry was replaced. ttl is DefaultExpiration, NoExpiration, or a custom
lifespan measured from now.
*/
func (c *RemoteCache[K, V]) Set(key K, value V, ttl time.Duration) bool {
	return c.set(types.KeyString(key), key, value, ttl)
}

// SetDefault is Set with DefaultExpiration.
func (c *RemoteCache[K, V]) SetDefault(key K, value V) bool {
	return c.Set(key, value, DefaultExpiration)
}

func (c *RemoteCache[K, V]) set(ks string, key K, value V, ttl time.Duration) bool {
	ent := c.engine.NewEntry(value, ttl)
	sh := c.selector.Select(ks, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()
	return sh.Store.Put(key, ent)
}

/*
Reload calls the resolver for key once, ignoring any cached entry. On success
the value is stored with the default TTL and returned. On failure the key is
evicted and the zero value is returned; the error is nil unless the cache was
built with PropagateErrors.
*/
func (c *RemoteCache[K, V]) Reload(ctx context.Context, key K) (V, error) {
	return c.reload(ctx, types.KeyString(key), key)
}

func (c *RemoteCache[K, V]) reload(ctx context.Context, ks string, key K) (V, error) {
	v, err := c.engine.Resolve(ctx, key)
	if err != nil {
		c.delete(ks, key)
		var zero V
		if c.propagate {
			return zero, err
		}
		return zero, nil
	}

	c.set(ks, key, v, DefaultExpiration)
	return v, nil
}

/*
ReloadAll reloads keys one after another and returns how many it processed,
successful or not. A nil keys reloads every key present when the call starts;
the key list is copied first because reloading mutates the cache.

It stops early only when ctx is done. With PropagateErrors the resolver
failures are joined into the returned error.
*/
func (c *RemoteCache[K, V]) ReloadAll(ctx context.Context, keys []K) (int, error) {
	if keys == nil {
		keys = c.Keys()
	}

	var errs []error
	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			return i, errors.Join(append(errs, err)...)
		}
		if _, err := c.Reload(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	c.engine.Logger.Debug("reloaded keys",
		zap.Int("count", len(keys)),
		zap.Int("failed", len(errs)),
	)
	return len(keys), errors.Join(errs...)
}

// Invalidate removes key and reports whether it was present. Removing an
// absent key is a no-op.
func (c *RemoteCache[K, V]) Invalidate(key K) bool {
	return c.delete(types.KeyString(key), key)
}

func (c *RemoteCache[K, V]) delete(ks string, key K) bool {
	sh := c.selector.Select(ks, c.shards)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()
	return sh.Store.Delete(key)
}

// Reset removes every entry and returns how many were removed. All shards
// are locked for the duration, so no caller sees a half-cleared cache.
func (c *RemoteCache[K, V]) Reset() int {
	shard.LockAll(c.shards)
	n := 0
	for _, sh := range c.shards {
		n += sh.Store.Clear()
	}
	shard.UnlockAll(c.shards)

	c.engine.Logger.Debug("cache reset", zap.Int("removed", n))
	return n
}

// Size returns how many entries are stored, including stale entries that
// have not been swept yet.
func (c *RemoteCache[K, V]) Size() int {
	shard.RLockAll(c.shards)
	defer shard.RUnlockAll(c.shards)

	return c.sizeLocked()
}

// Clean removes every stale entry and returns how many it removed. Entries
// that never expire are kept. It is never called automatically.
func (c *RemoteCache[K, V]) Clean() int {
	now := c.engine.Now()
	stale := func(_ K, ent *types.Entry[V]) bool {
		return c.engine.Expiration.IsExpired(ent.ExpireAt, now)
	}

	n := 0
	for _, sh := range c.shards {
		sh.Mu.Lock()
		n += sh.Store.DeleteFunc(stale)
		sh.Mu.Unlock()
	}

	for i := 0; i < n; i++ {
		c.engine.Metrics.Expire()
	}
	c.engine.Logger.Debug("swept stale entries", zap.Int("removed", n))
	return n
}

// Keys returns a snapshot of every stored key, stale ones included.
func (c *RemoteCache[K, V]) Keys() []K {
	shard.RLockAll(c.shards)
	defer shard.RUnlockAll(c.shards)

	keys := make([]K, 0, c.sizeLocked())
	for _, sh := range c.shards {
		keys = sh.Store.Keys(keys)
	}
	return keys
}

func (c *RemoteCache[K, V]) sizeLocked() int {
	n := 0
	for _, sh := range c.shards {
		n += sh.Store.Len()
	}
	return n
}

/*
TTL returns the remaining lifetime of key:
> 0 : time left before the entry goes stale
-1  : the entry exists and never expires
-2  : no entry, or the entry is already stale
*/
func (c *RemoteCache[K, V]) TTL(key K) time.Duration {
	sh := c.selector.Select(types.KeyString(key), c.shards)

	sh.Mu.RLock()
	ent, ok := sh.Store.Get(key)
	sh.Mu.RUnlock()

	if !ok {
		return -2
	}
	if ent.ExpireAt.IsZero() {
		return -1
	}
	now := c.engine.Now()
	if c.engine.Expiration.IsExpired(ent.ExpireAt, now) {
		return -2
	}
	return ent.ExpireAt.Sub(now)
}

// Capacity returns the declared capacity. It is not enforced.
func (c *RemoteCache[K, V]) Capacity() int {
	return c.capacity
}

// DefaultTTL returns the lifespan applied by DefaultExpiration writes.
func (c *RemoteCache[K, V]) DefaultTTL() time.Duration {
	return c.ttl
}
