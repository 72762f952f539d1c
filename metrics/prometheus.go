// Package metrics provides a Prometheus implementation of types.Metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krisalay/remote-cache/types"
)

// Prometheus holds the cache counters and the resolver latency histogram.
type Prometheus struct {
	Hits            prometheus.Counter
	Misses          prometheus.Counter
	Expirations     prometheus.Counter
	Reloads         prometheus.Counter
	ResolveFailures prometheus.Counter
	ResolveLatency  prometheus.Histogram
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the cache metrics under namespace with reg.
// A nil reg creates unregistered collectors.
func NewPrometheus(namespace string, reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		Hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of reads served from a fresh entry",
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of reads that found no fresh entry",
		}),
		Expirations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_expirations_total",
			Help:      "Total number of stale entries replaced on read or swept",
		}),
		Reloads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_resolves_total",
			Help:      "Total number of resolver invocations",
		}),
		ResolveFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_resolve_failures_total",
			Help:      "Total number of failed resolver invocations",
		}),
		ResolveLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_resolve_latency_seconds",
			Help:      "Resolver call latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
	}
}

func (p *Prometheus) Hit()            { p.Hits.Inc() }
func (p *Prometheus) Miss()           { p.Misses.Inc() }
func (p *Prometheus) Expire()         { p.Expirations.Inc() }
func (p *Prometheus) Reload()         { p.Reloads.Inc() }
func (p *Prometheus) ResolveFailure() { p.ResolveFailures.Inc() }

func (p *Prometheus) ObserveResolve(d time.Duration) {
	p.ResolveLatency.Observe(d.Seconds())
}
