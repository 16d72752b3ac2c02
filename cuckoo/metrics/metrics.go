// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package metrics defines the narrow recorder interface the cuckoo set
// reports through, plus a github.com/prometheus/client_golang-backed
// implementation. Keeping the interface here, rather than having
// package cuckoo import prometheus directly, mirrors how goarista's
// leaf packages (key, hashmap) stay free of the prometheus dependency
// that only its cmd/ binaries need.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder receives point-in-time observations from a cuckoo set. All
// methods must be safe for concurrent use.
type Recorder interface {
	// Op records the completion of a contains, add or remove call.
	Op(kind string)
	// Resize records a completed global resize, with the new capacity.
	Resize(newCapacity uint64)
	// Relocations records the number of eviction rounds a single Add
	// spent in the relocation loop.
	Relocations(rounds int)
	// SetSize records a fresh snapshot of Set.Size().
	SetSize(size int)
}

// Prometheus adapts a prometheus.Registerer into a Recorder, registering
// a counter vector, a counter, a histogram and two gauges on
// construction.
type Prometheus struct {
	ops         *prometheus.CounterVec
	resizes     prometheus.Counter
	relocations prometheus.Histogram
	capacity    prometheus.Gauge
	size        prometheus.Gauge
}

// NewPrometheus registers cuckoo set metrics with reg under the given
// metric name prefix and returns a Recorder backed by them.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	p := &Prometheus{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cuckoo_ops_total",
			Help:      "Count of completed set operations by kind.",
		}, []string{"kind"}),
		resizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cuckoo_resizes_total",
			Help:      "Count of completed global resizes.",
		}),
		relocations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cuckoo_relocation_rounds",
			Help:      "Eviction rounds spent per Add that needed relocation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cuckoo_capacity",
			Help:      "Current per-table bucket capacity.",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cuckoo_size",
			Help:      "Most recent best-effort key count.",
		}),
	}
	reg.MustRegister(p.ops, p.resizes, p.relocations, p.capacity, p.size)
	return p
}

func (p *Prometheus) Op(kind string) { p.ops.WithLabelValues(kind).Inc() }

func (p *Prometheus) Resize(newCapacity uint64) {
	p.resizes.Inc()
	p.capacity.Set(float64(newCapacity))
}

func (p *Prometheus) Relocations(rounds int) { p.relocations.Observe(float64(rounds)) }

func (p *Prometheus) SetSize(size int) { p.size.Set(float64(size)) }

// noop is the Recorder installed when no WithMetrics option is given.
type noop struct{}

func (noop) Op(string)       {}
func (noop) Resize(uint64)   {}
func (noop) Relocations(int) {}
func (noop) SetSize(int)     {}

// Noop returns a Recorder whose methods do nothing.
func Noop() Recorder { return noop{} }
