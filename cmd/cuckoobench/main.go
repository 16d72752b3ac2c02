// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// The cuckoobench command runs a configurable concurrent workload
// against a cuckoo.Set and reports throughput, while exposing the
// set's live metrics over Prometheus.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"

	upstreamglog "github.com/aristanetworks/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/aristanetworks/cuckoostore/cuckoo"
	cuckoometrics "github.com/aristanetworks/cuckoostore/cuckoo/metrics"
	aglog "github.com/aristanetworks/cuckoostore/glog"
	"github.com/aristanetworks/cuckoostore/sync/semaphore"
)

func glogLevel(v int) upstreamglog.Level { return upstreamglog.Level(v) }

func main() {
	cfg := &config{}
	flag.IntVar(&cfg.InitialCapacity, "capacity", 1<<14, "initial per-table bucket capacity")
	flag.Uint64Var(&cfg.KeyRange, "key-range", 1<<20, "size of the key space workers sample from")
	flag.Float64Var(&cfg.AddRatio, "add-ratio", 1, "relative weight of add operations")
	flag.Float64Var(&cfg.RemoveRatio, "remove-ratio", 1, "relative weight of remove operations")
	flag.Float64Var(&cfg.ContainsRatio, "contains-ratio", 8, "relative weight of contains operations")
	flag.IntVar(&cfg.Workers, "workers", 8, "number of concurrent worker goroutines")
	flag.DurationVar(&cfg.Duration, "duration", 10*time.Second, "how long to run the workload")
	flag.IntVar(&cfg.MaxInflight, "max-inflight", 0, "cap on concurrent in-flight operations, 0 for unbounded")
	flag.StringVar(&cfg.ListenAddr, "listenaddr", ":8080", "address on which to expose metrics")
	flag.StringVar(&cfg.MetricsPath, "url", "/metrics", "URL where to expose the metrics")
	configFlag := flag.String("config", "", "optional YAML config file overriding any flag above")
	infoLevel := flag.Int("v", 0, "glog verbosity level for info logs")
	flag.Parse()

	logger := &aglog.Glog{InfoLevel: glogLevel(*infoLevel)}

	if *configFlag != "" {
		if err := cfg.mergeFile(*configFlag); err != nil {
			logger.Fatal(err)
		}
	}
	if err := cfg.validate(); err != nil {
		logger.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	rec := cuckoometrics.NewPrometheus(reg, "cuckoobench")

	set, err := cuckoo.New[uint64](cfg.InitialCapacity,
		cuckoo.WithHasher[uint64](cuckoo.Uint64Hasher()),
		cuckoo.WithMetrics[uint64](rec),
		cuckoo.WithLogger[uint64](logger),
	)
	if err != nil {
		logger.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
			logger.Errorf("cuckoobench: metrics server exited: %v", err)
		}
	}()

	var sem *semaphore.Weighted
	if cfg.MaxInflight > 0 {
		sem = semaphore.NewWeighted(int64(cfg.MaxInflight))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	var counts workloadCounts
	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			return runWorker(gCtx, set, cfg, sem, rand.New(rand.NewSource(int64(w)+1)), &counts)
		})
	}

	start := time.Now()
	if err := g.Wait(); err != nil && gCtx.Err() == nil {
		logger.Errorf("cuckoobench: worker failed: %v", err)
	}
	elapsed := time.Since(start)

	total := counts.adds + counts.removes + counts.contains
	fmt.Printf("cuckoobench: %d ops in %s (%.0f ops/sec)\n", total, elapsed, float64(total)/elapsed.Seconds())
	fmt.Printf("  add=%d remove=%d contains=%d size=%d\n", counts.adds, counts.removes, counts.contains, set.Size())
	logger.Infof("cuckoobench: completed %d ops across %d workers in %s", total, cfg.Workers, elapsed)
}

// workloadCounts accumulates per-kind operation counts across workers.
type workloadCounts struct {
	adds     int64
	removes  int64
	contains int64
}

// runWorker drives a closed random workload against set until ctx is
// done, sampling keys uniformly from [0, cfg.KeyRange) and choosing an
// operation kind weighted by cfg's ratios.
func runWorker(ctx context.Context, set *cuckoo.Set[uint64], cfg *config, sem *semaphore.Weighted, rng *rand.Rand, counts *workloadCounts) error {
	total := cfg.AddRatio + cfg.RemoveRatio + cfg.ContainsRatio
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if sem != nil {
			release, err := sem.Guard(ctx)
			if err != nil {
				return nil
			}
			doOp(set, cfg, total, rng, counts)
			release()
		} else {
			doOp(set, cfg, total, rng, counts)
		}
	}
}

func doOp(set *cuckoo.Set[uint64], cfg *config, total float64, rng *rand.Rand, counts *workloadCounts) {
	key := rng.Uint64() % cfg.KeyRange
	pick := rng.Float64() * total
	switch {
	case pick < cfg.AddRatio:
		set.Add(key)
		atomic.AddInt64(&counts.adds, 1)
	case pick < cfg.AddRatio+cfg.RemoveRatio:
		set.Remove(key)
		atomic.AddInt64(&counts.removes, 1)
	default:
		set.Contains(key)
		atomic.AddInt64(&counts.contains, 1)
	}
}
