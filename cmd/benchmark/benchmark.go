package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	cache "github.com/krisalay/remote-cache"
	"github.com/krisalay/remote-cache/metrics"
	"github.com/krisalay/remote-cache/source"
)

// ================= BENCHMARK =================

func envInt(name string, d int) int {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil && v > 0 {
		return v
	}
	return d
}

func main() {
	ctx := context.Background()
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	// ---------------- Config ----------------
	var (
		shards     = envInt("BENCH_SHARDS", 16)
		sourceKeys = envInt("BENCH_KEYS", 10000)
		goroutines = envInt("BENCH_GOROUTINES", 200)
		opsPerG    = envInt("BENCH_OPS", 5000)
	)

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Shards       :", shards)
	fmt.Println("Source Keys  :", sourceKeys)
	fmt.Println("Goroutines   :", goroutines)
	fmt.Println("Ops/Goroutine:", opsPerG)
	fmt.Println("---------------------------------")

	// ---------------- Backing Source ----------------
	dir, err := os.MkdirTemp("", "remote-cache-bench")
	if err != nil {
		logger.Fatal("temp dir", zap.Error(err))
	}
	defer os.RemoveAll(dir)

	src, err := source.OpenSQLite(filepath.Join(dir, "bench.db"))
	if err != nil {
		logger.Fatal("open source", zap.Error(err))
	}
	defer src.Close()

	fmt.Println("Seeding source...")
	recs := make([]source.Record, sourceKeys)
	for i := range recs {
		recs[i] = source.Record{Key: fmt.Sprintf("key-%d", i), Value: strconv.Itoa(i)}
	}
	if err := src.PutAll(ctx, recs); err != nil {
		logger.Fatal("seed source", zap.Error(err))
	}
	fmt.Println("Seed complete.")

	// ---------------- Cache ----------------
	m := metrics.NewPrometheus("bench", prometheus.NewRegistry())
	c, err := cache.New(cache.Options[string, *string]{
		Resolver:       src,
		TTL:            time.Minute,
		Shards:         shards,
		ResolveTimeout: 5 * time.Second,
		Metrics:        m,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal("create cache", zap.Error(err))
	}

	// ---------------- Load Test ----------------
	fmt.Println("Running concurrency benchmark (cold cache)...")

	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerG; j++ {
				key := fmt.Sprintf("key-%d", (id+j)%sourceKeys)
				c.Get(ctx, key)
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := goroutines * opsPerG

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Printf("Hits / Misses    : %.0f / %.0f\n", testutil.ToFloat64(m.Hits), testutil.ToFloat64(m.Misses))
	fmt.Printf("Resolver Calls   : %.0f\n", testutil.ToFloat64(m.Reloads))
	fmt.Printf("Cached Entries   : %d\n", c.Size())
	fmt.Println("=========================================")
}
