// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// resize doubles capacity and relocationLimit, rebuilds both tables and
// reinserts every key.
//
// It acquires every L[0] stripe in ascending index order before doing
// anything else. Because the stripe count is fixed across resizes,
// this is always the same, well-defined set of locks, and because
// every acquire(k) anywhere in this package takes an L[0] stripe before
// any other per-key work, no mutator can be mid-operation without
// already holding one of these locks — a resize simply waits for it.
//
// The source this package is modeled on re-enters the public Add path
// while holding every L[0] lock, relying on recursive mutexes so that
// doesn't self-deadlock. Plain sync.Mutex in Go isn't reentrant, so
// instead of emulating recursive locks, resize uses addLocked and
// relocateLocked: private variants of the placement and relocation
// algorithm that take no stripe locks at all. That's sound here
// specifically because holding every L[0] stripe already excludes every
// other mutator — no other goroutine can be holding (or waiting to
// grab only) an L[1] stripe without first passing through the L[0]
// stripe resize holds, so the reinsertion loop has the tables
// completely to itself.
func (s *Set[K]) resize() {
	s.resizeSerialize.Lock()
	defer s.resizeSerialize.Unlock()

	for i := range s.stripes[0] {
		s.stripes[0][i].Lock()
	}
	defer func() {
		for i := len(s.stripes[0]) - 1; i >= 0; i-- {
			s.stripes[0][i].Unlock()
		}
	}()

	s.mu.RLock()
	oldCapacity := s.capacity
	oldTables := s.tables
	s.mu.RUnlock()

	newCapacity := oldCapacity * 2
	newRelocationLimit := int(newCapacity / 2)
	if newRelocationLimit == 0 {
		newRelocationLimit = 1
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 8)
	for {
		newTables := [2][]slot[K]{
			make([]slot[K], newCapacity),
			make([]slot[K], newCapacity),
		}

		ok := s.reinsertAll(oldTables, newTables, newCapacity, newRelocationLimit)
		if ok {
			s.mu.Lock()
			s.capacity = newCapacity
			s.relocationLimit = newRelocationLimit
			s.tables = newTables
			s.mu.Unlock()

			s.metrics.Resize(newCapacity)
			s.logger.Infof("cuckoo: resized from capacity %d to %d", oldCapacity, newCapacity)
			return
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			// Adversarial hashing: even generous doubling couldn't seat
			// every key. Recovered locally by doubling once more and
			// retrying; never surfaced as a lost key, only as latency.
			s.logger.Errorf("cuckoo: resize exhausted backoff at capacity %d, doubling again", newCapacity)
			bo = backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 8)
			newCapacity *= 2
			newRelocationLimit *= 2
			continue
		}
		time.Sleep(wait)
	}
}

// reinsertAll places every key from oldTables into newTables using the
// lock-free placement and relocation variants, returning false if any
// key could not be seated (both its buckets full even after exhausting
// relocation) so the caller can retry at a larger capacity.
func (s *Set[K]) reinsertAll(oldTables, newTables [2][]slot[K], capacity uint64, relocationLimit int) bool {
	for _, table := range oldTables {
		for i := range table {
			bucket := &table[i]
			for j := 0; j < bucket.len(); j++ {
				if !addLocked(s.hasher, newTables, capacity, relocationLimit, bucket.keys[j]) {
					return false
				}
			}
		}
	}
	return true
}

// addLocked runs the same placement algorithm as Add, without ever
// taking a stripe lock: it's only safe to call while the caller already
// has exclusive access to tables (resize, holding every L[0] stripe).
func addLocked[K comparable](hasher Hasher[K], tables [2][]slot[K], capacity uint64, relocationLimit int, k K) bool {
	raw0, raw1 := hasher(k)
	idx0 := bucketIndex(raw0, capacity)
	idx1 := bucketIndex(raw1, capacity)
	b0 := &tables[0][idx0]
	b1 := &tables[1][idx1]

	switch {
	case b0.contains(k) || b1.contains(k):
		return true
	case b0.len() < Threshold:
		b0.append(k)
		return true
	case b1.len() < Threshold:
		b1.append(k)
		return true
	case b0.len() < ProbeSize:
		b0.append(k)
		return relocateLocked(hasher, tables, capacity, relocationLimit, 0, idx0)
	case b1.len() < ProbeSize:
		b1.append(k)
		return relocateLocked(hasher, tables, capacity, relocationLimit, 1, idx1)
	default:
		return false
	}
}

// relocateLocked is relocate's lock-free twin, used only during a
// resize's reinsertion pass.
func relocateLocked[K comparable](hasher Hasher[K], tables [2][]slot[K], capacity uint64, relocationLimit int, table int, idx uint64) bool {
	for round := 0; round < relocationLimit; round++ {
		other := 1 - table
		bucket := &tables[table][idx]
		v, ok := bucket.peek()
		if !ok {
			return true
		}

		raw0, raw1 := hasher(v)
		altRaw := raw1
		if table == 1 {
			altRaw = raw0
		}
		altIdx := bucketIndex(altRaw, capacity)
		alt := &tables[other][altIdx]

		bucket.remove(v)
		switch {
		case alt.len() < Threshold:
			alt.append(v)
			return true
		case alt.len() < ProbeSize:
			alt.append(v)
			table, idx = other, altIdx
		default:
			bucket.append(v)
			return false
		}
	}
	return false
}
