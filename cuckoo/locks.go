// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import "sync"

// stripeIndex reduces a raw hash to a lock stripe index. Because the
// stripe count S is fixed at construction, S divides the initial
// capacity (New checks this) and capacity only ever grows by repeated
// doubling, capacity is always a multiple of S; that
// means (raw mod capacity) mod S == raw mod S; the stripe a key maps to
// never changes across a resize, even though its bucket index does.
func stripeIndex(raw, stripeCount uint64) uint64 {
	return raw % stripeCount
}

// bucketIndex reduces a raw hash to a bucket index under the capacity
// current at the time of the call.
func bucketIndex(raw, capacity uint64) uint64 {
	return raw % capacity
}

// keyLocks resolves the pair of stripe locks that guard k's tables[0]
// and tables[1] buckets.
func (s *Set[K]) keyLocks(raw0, raw1 uint64) (l0, l1 *sync.Mutex) {
	return &s.stripes[0][stripeIndex(raw0, s.stripeCount)], &s.stripes[1][stripeIndex(raw1, s.stripeCount)]
}

// acquire locks both stripes for a key, always in table order (L[0]
// before L[1]), and returns a func that unlocks them in reverse order.
// Every per-key critical section in this package goes through acquire,
// so two goroutines can never take L[0] and L[1] in opposite orders and
// deadlock.
func (s *Set[K]) acquire(raw0, raw1 uint64) (release func()) {
	l0, l1 := s.keyLocks(raw0, raw1)
	l0.Lock()
	l1.Lock()
	return func() {
		l1.Unlock()
		l0.Unlock()
	}
}
