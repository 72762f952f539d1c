package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	cache "github.com/krisalay/remote-cache"
	"github.com/krisalay/remote-cache/metrics"
	"github.com/krisalay/remote-cache/source"
)

// ================= CONFIG =================

const (
	envDB          = "REMOTE_CACHE_DB"
	envTTL         = "REMOTE_CACHE_TTL"
	envMetricsAddr = "REMOTE_CACHE_METRICS_ADDR"
)

func defaultString(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func defaultDBPath() string {
	return filepath.Join(os.TempDir(), "remote-cache-demo.bbolt")
}

// ================= SLOW SOURCE =================

// slowSource wraps the bolt resolver with latency and a call counter so the
// walkthrough can show when the resolver actually runs.
type slowSource struct {
	store *source.Bolt
	delay time.Duration
	calls atomic.Int64
}

func (s *slowSource) Resolve(ctx context.Context, key string) (string, error) {
	s.calls.Add(1)
	fmt.Println("SOURCE → resolve:", key)
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	v, err := s.store.Resolve(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// ================= MAIN =================

func main() {
	ctx := context.Background()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbPath := defaultString(os.Getenv(envDB), defaultDBPath())
	ttl, err := time.ParseDuration(defaultString(os.Getenv(envTTL), "2s"))
	if err != nil {
		logger.Fatal("bad ttl", zap.String("env", envTTL), zap.Error(err))
	}

	fmt.Println("\n==================== SYSTEM BOOT ====================")
	fmt.Println("SOURCE     : bbolt", dbPath)
	fmt.Println("DEFAULT TTL:", ttl)
	fmt.Println("CAPACITY   : 20 keys (advisory)")

	// ---------------- Backing Source ----------------
	store, err := source.OpenBolt(dbPath, "demo")
	if err != nil {
		logger.Fatal("open source", zap.Error(err))
	}
	defer store.Close()

	for k, v := range map[string]string{"a": "alpha", "b": "beta"} {
		if err := store.Put(k, []byte(v)); err != nil {
			logger.Fatal("seed source", zap.String("key", k), zap.Error(err))
		}
	}
	if err := store.Delete("missing"); err != nil {
		logger.Fatal("seed source", zap.String("key", "missing"), zap.Error(err))
	}

	src := &slowSource{store: store, delay: 50 * time.Millisecond}

	// ---------------- Metrics ----------------
	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheus("demo", reg)

	if addr := os.Getenv(envMetricsAddr); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics server", zap.Error(err))
			}
		}()
		fmt.Println("METRICS    :", addr+"/metrics")
	}

	// ---------------- Cache ----------------
	c, err := cache.New(cache.Options[string, string]{
		Resolver:       src,
		TTL:            ttl,
		Capacity:       20,
		Shards:         4,
		ResolveTimeout: time.Second,
		Metrics:        m,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("create cache", zap.Error(err))
	}

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	v, _ := c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a =", v)

	// ====================================================
	fmt.Println("\n==================== 2) CACHE HIT ====================")
	v, _ = c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a =", v)

	// ====================================================
	fmt.Println("\n==================== 3) SET / OVERWRITE ====================")
	fmt.Println("CACHE  → SET x overwritten =", c.Set("x", "temp-value", 500*time.Millisecond))
	fmt.Println("CACHE  → SET x overwritten =", c.Set("x", "temp-value-2", 500*time.Millisecond))
	fmt.Println("CACHE  → SET pinned (no expiry) overwritten =", c.Set("pinned", "forever", cache.NoExpiration))

	// ====================================================
	fmt.Println("\n==================== 4) TTL EXPIRATION ====================")
	fmt.Println("CACHE  → TTL x =", c.TTL("x"))
	time.Sleep(time.Second)
	fmt.Println("CACHE  → TTL x after 1s =", c.TTL("x"), "(-2 = stale)")
	fmt.Println("CACHE  → SIZE (stale entries still counted) =", c.Size())
	fmt.Println("CACHE  → CLEAN removed =", c.Clean())
	fmt.Println("CACHE  → SIZE after clean =", c.Size())

	// ====================================================
	fmt.Println("\n==================== 5) SINGLEFLIGHT ====================")
	before := src.calls.Load()
	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, _ := c.Get(ctx, "b")
			fmt.Printf("GOROUTINE-%d → GET b = %v\n", id, val)
		}(i)
	}
	wg.Wait()
	fmt.Println("SOURCE → resolver calls for 5 concurrent misses =", src.calls.Load()-before)

	// ====================================================
	fmt.Println("\n==================== 6) RELOAD ====================")
	if err := store.Put("a", []byte("alpha-v2")); err != nil {
		logger.Fatal("update source", zap.Error(err))
	}
	v, _ = c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a (still cached) =", v)
	v, _ = c.Reload(ctx, "a")
	fmt.Println("CACHE  → RELOAD a =", v)

	n, _ := c.ReloadAll(ctx, nil)
	fmt.Println("CACHE  → RELOAD ALL processed =", n)

	// ====================================================
	fmt.Println("\n==================== 7) NOT FOUND / FAILURE ====================")
	before = src.calls.Load()
	v, _ = c.Get(ctx, "missing")
	fmt.Printf("CACHE  → GET missing = %q\n", v)
	v, _ = c.Get(ctx, "missing")
	fmt.Printf("CACHE  → GET missing again = %q\n", v)
	fmt.Println("SOURCE → resolver calls for 2 GETs of a missing key =", src.calls.Load()-before)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	v, _ = c.Reload(canceled, "a")
	fmt.Printf("CACHE  → RELOAD a with canceled ctx = %q\n", v)
	fmt.Println("CACHE  → TTL a after failed reload =", c.TTL("a"), "(-2 = evicted)")

	// ====================================================
	fmt.Println("\n==================== 8) INVALIDATE / RESET ====================")
	fmt.Println("CACHE  → INVALIDATE b =", c.Invalidate("b"))
	fmt.Println("CACHE  → INVALIDATE b again =", c.Invalidate("b"))
	fmt.Println("CACHE  → RESET removed =", c.Reset())
	fmt.Println("CACHE  → SIZE =", c.Size())

	// ====================================================
	printMetrics(reg)

	fmt.Println("\n==================== SHUTDOWN ====================")
	fmt.Println("SYSTEM → done")
}

func printMetrics(g prometheus.Gatherer) {
	fmt.Println("\n==================== METRICS ====================")
	families, err := g.Gather()
	if err != nil {
		fmt.Println("gather:", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%-40s: %v\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Printf("%-40s: %d samples\n", mf.GetName(), m.GetHistogram().GetSampleCount())
			}
		}
	}
}
