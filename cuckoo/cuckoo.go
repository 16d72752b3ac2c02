// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import (
	"fmt"
	"sync"

	"github.com/aristanetworks/cuckoostore/cuckoo/metrics"
	"github.com/aristanetworks/cuckoostore/logger"
)

// Set is a concurrent cuckoo hash set of comparable keys. The zero
// value is not usable; construct one with New.
type Set[K comparable] struct {
	hasher  Hasher[K]
	logger  logger.Logger
	metrics metrics.Recorder

	// stripeCount is S, fixed at construction and never resized. Lock
	// identity must be stable across resizes, or a thread holding
	// L[0][a], L[1][b] for a key could stop excluding other mutators of
	// that key the moment capacity changes underneath it.
	stripeCount uint64
	stripes     [2][]sync.Mutex

	// resizeSerialize keeps at most one goroutine running the resize
	// protocol at a time. It is not required for correctness (two
	// resizers would both acquire stripes[0] in the same ascending
	// order and simply serialize there). A goroutine that waited here
	// while another resized still doubles capacity again when its turn
	// comes.
	resizeSerialize sync.Mutex

	// mu guards capacity, relocationLimit and tables against any access
	// that isn't already covered by a stripe lock: namely Size(), which
	// intentionally takes a best-effort, non-linearizable snapshot (see
	// Size's doc comment) without taking any per-key stripes.
	mu              sync.RWMutex
	capacity        uint64
	relocationLimit int
	tables          [2][]slot[K]
}

// New constructs an empty Set with the given initial per-table
// capacity. initialCapacity must be positive.
func New[K comparable](initialCapacity int, opts ...Option[K]) (*Set[K], error) {
	if initialCapacity <= 0 {
		return nil, fmt.Errorf("cuckoo: initial capacity must be positive, got %d", initialCapacity)
	}

	s := &Set[K]{
		hasher:          DefaultHasher[K](),
		logger:          logger.Nop{},
		metrics:         metrics.Noop(),
		stripeCount:     uint64(initialCapacity),
		capacity:        uint64(initialCapacity),
		relocationLimit: initialCapacity / 2,
	}
	if s.relocationLimit == 0 {
		s.relocationLimit = 1
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stripeCount == 0 || s.capacity%s.stripeCount != 0 {
		return nil, fmt.Errorf("cuckoo: stripe count %d must be positive and must divide capacity %d", s.stripeCount, s.capacity)
	}

	for i := range s.tables {
		s.tables[i] = make([]slot[K], s.capacity)
		s.stripes[i] = make([]sync.Mutex, s.stripeCount)
	}
	return s, nil
}
