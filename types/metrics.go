package types

import "time"

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the entry lifecycle. The cache will call these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when Get returns a fresh cached value.
	Hit()

	// Miss is called when Get finds no entry, or only a stale one, and has to resolve.
	Miss()

	// Expire is called for every stale entry Get replaces and every entry Clean sweeps.
	Expire()

	// Reload is called each time the resolver is invoked.
	Reload()

	// ResolveFailure is called when a resolver call fails and its key is evicted.
	ResolveFailure()

	// ObserveResolve records how long one resolver call took, failed or not.
	ObserveResolve(time.Duration)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

Callers that do not care about metrics still get a working cache
without nil checks on the hot path.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()                         {}
func (NoopMetrics) Miss()                        {}
func (NoopMetrics) Expire()                      {}
func (NoopMetrics) Reload()                      {}
func (NoopMetrics) ResolveFailure()              {}
func (NoopMetrics) ObserveResolve(time.Duration) {}
