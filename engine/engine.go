package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krisalay/remote-cache/expiration"
	"github.com/krisalay/remote-cache/types"
)

/*
Engine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache, NOT storage.

It decides:
- When an entry is stale
- What expiry a write gets
- How the resolver is invoked (deadline, panics, failures)
- How metrics and logs are recorded

It does NOT:
- Store data
- Handle sharding
- Handle locking
*/
type Engine[K types.Key, V any] struct {

	// Expiration computes expiries on write and staleness on read.
	Expiration expiration.Strategy

	// Resolver is how the cache talks to the outside world when it does NOT have the data.
	Resolver types.Resolver[K, V]

	// Timeout bounds each resolver call. Zero leaves only the caller's context.
	Timeout time.Duration

	// Metrics records hits, misses, reloads, failures and expirations.
	Metrics types.Metrics

	// Logger receives resolver failures and bulk-operation summaries.
	Logger *zap.Logger

	// Clock is the source of "now" for every expiry decision.
	Clock func() time.Time
}

/*
New creates an Engine. Nil metrics, logger and clock are replaced with
no-op/wall-clock defaults so the rest of the code never checks for nil.
*/
func New[K types.Key, V any](
	exp expiration.Strategy,
	resolver types.Resolver[K, V],
	timeout time.Duration,
	metrics types.Metrics,
	logger *zap.Logger,
	clock func() time.Time,
) *Engine[K, V] {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}

	return &Engine[K, V]{
		Expiration: exp,
		Resolver:   resolver,
		Timeout:    timeout,
		Metrics:    metrics,
		Logger:     logger,
		Clock:      clock,
	}
}

func (e *Engine[K, V]) Now() time.Time {
	return e.Clock()
}

// IsExpired checks whether an entry is stale right now.
func (e *Engine[K, V]) IsExpired(ent *types.Entry[V]) bool {
	return e.Expiration.IsExpired(ent.ExpireAt, e.Now())
}

// NewEntry builds the entry stored by a write with the given per-write ttl.
func (e *Engine[K, V]) NewEntry(value V, ttl time.Duration) *types.Entry[V] {
	now := e.Now()
	return &types.Entry[V]{
		Value:     value,
		CreatedAt: now,
		ExpireAt:  e.Expiration.ExpireAt(now, ttl),
	}
}

type result[V any] struct {
	value V
	err   error
}

/*
Resolve invokes the resolver exactly once for key.

The call runs on its own goroutine so the deadline holds even when the
resolver ignores its context; such a goroutine is left to finish on its own
and its result is discarded. A panicking resolver counts as a failure.

Failures come back as *types.ResolveError. Whether the caller sees them is
the cache's decision, not the engine's.
*/
func (e *Engine[K, V]) Resolve(ctx context.Context, key K) (V, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	e.Metrics.Reload()
	start := time.Now()

	done := make(chan result[V], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result[V]{err: errors.Errorf("resolver panic: %v", r)}
			}
		}()
		v, err := e.Resolver.Resolve(ctx, key)
		done <- result[V]{value: v, err: err}
	}()

	var res result[V]
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	e.Metrics.ObserveResolve(time.Since(start))

	if res.err != nil {
		ks := types.KeyString(key)
		e.Metrics.ResolveFailure()
		e.Logger.Warn("resolve failed, evicting key",
			zap.String("key", ks),
			zap.Error(res.err),
		)
		var zero V
		return zero, &types.ResolveError{Key: ks, Err: res.err}
	}
	return res.value, nil
}
