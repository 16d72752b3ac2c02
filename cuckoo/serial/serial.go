// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package serial implements a single-threaded cuckoo hash set. It trades
// the concurrent package's lock striping and bounded probe buckets for
// a one-slot-per-bucket, swap-on-insert table: the classic cuckoo
// hashing scheme, with no need for any synchronization.
//
// Its main use in this module is as a membership oracle in cuckoo's own
// tests: fed the same sequence of Add/Remove calls, its Contains calls
// must agree with the concurrent Set's.
package serial

import "hash/maphash"

// Set is a single-threaded cuckoo hash set of comparable keys. The zero
// value is not usable; construct one with New.
type Set[K comparable] struct {
	seed0, seed1 maphash.Seed
	capacity     int
	limit        int
	table        [2][]slot[K]
}

type slot[K comparable] struct {
	key      K
	occupied bool
}

// New constructs an empty Set with the given initial per-table
// capacity. A non-positive initialCapacity is treated as 1.
func New[K comparable](initialCapacity int) *Set[K] {
	if initialCapacity <= 0 {
		initialCapacity = 1
	}
	s := &Set[K]{
		seed0:    maphash.MakeSeed(),
		seed1:    maphash.MakeSeed(),
		capacity: initialCapacity,
		limit:    initialCapacity / 2,
	}
	if s.limit == 0 {
		s.limit = 1
	}
	s.table[0] = make([]slot[K], initialCapacity)
	s.table[1] = make([]slot[K], initialCapacity)
	return s
}

func (s *Set[K]) hash0(k K) int { return int(maphash.Comparable(s.seed0, k) % uint64(s.capacity)) }
func (s *Set[K]) hash1(k K) int { return int(maphash.Comparable(s.seed1, k) % uint64(s.capacity)) }

// Contains reports whether k is a member of the set.
func (s *Set[K]) Contains(k K) bool {
	i0, i1 := s.hash0(k), s.hash1(k)
	if s.table[0][i0].occupied && s.table[0][i0].key == k {
		return true
	}
	return s.table[1][i1].occupied && s.table[1][i1].key == k
}

// Add inserts k, returning true if it was newly inserted. It repeatedly
// swaps an unplaced key into its two candidate buckets, evicting
// whatever resident was there, until some round lands in an empty slot
// or the relocation limit is reached; at that point it resizes and
// then places the key the chain displaced last, without any locking
// because there's only one caller.
func (s *Set[K]) Add(k K) bool {
	if s.Contains(k) {
		return false
	}

	v := k
	table := 0
	for i := 0; i < s.limit; i++ {
		idx := s.indexFor(table, v)
		evicted := s.table[table][idx]
		s.table[table][idx] = slot[K]{key: v, occupied: true}
		if !evicted.occupied {
			return true
		}
		v = evicted.key
		table = 1 - table
	}
	// k is already in the table; v is the key the chain displaced last
	// and left without a slot. Resize, then place v.
	if !s.resize() {
		return false
	}
	s.Add(v)
	return true
}

func (s *Set[K]) indexFor(table int, k K) int {
	if table == 0 {
		return s.hash0(k)
	}
	return s.hash1(k)
}

// Remove deletes k, returning true if it was present.
func (s *Set[K]) Remove(k K) bool {
	i0, i1 := s.hash0(k), s.hash1(k)
	if s.table[0][i0].occupied && s.table[0][i0].key == k {
		s.table[0][i0] = slot[K]{}
		return true
	}
	if s.table[1][i1].occupied && s.table[1][i1].key == k {
		s.table[1][i1] = slot[K]{}
		return true
	}
	return false
}

// Size returns the number of keys currently stored.
func (s *Set[K]) Size() int {
	n := 0
	for _, table := range s.table {
		for _, e := range table {
			if e.occupied {
				n++
			}
		}
	}
	return n
}

// Populate adds every key in keys via Add, stopping at (and reporting)
// the first one already present.
func (s *Set[K]) Populate(keys []K) bool {
	for _, k := range keys {
		if !s.Add(k) {
			return false
		}
	}
	return true
}

// resize doubles capacity and the relocation limit, re-seeds both hash
// functions and reinserts every key, retrying at ever-larger capacities
// until every key finds a home. It mirrors the reference
// implementation's re-salting on resize: changing the hash functions,
// not just the table size, gives a stuck relocation chain a fresh
// chance to resolve.
func (s *Set[K]) resize() bool {
	for {
		newCapacity := s.capacity * 2
		newLimit := newCapacity / 2
		if newLimit == 0 {
			newLimit = 1
		}

		old := s.table
		oldCapacity := s.capacity

		next := &Set[K]{
			seed0:    maphash.MakeSeed(),
			seed1:    maphash.MakeSeed(),
			capacity: newCapacity,
			limit:    newLimit,
		}
		next.table[0] = make([]slot[K], newCapacity)
		next.table[1] = make([]slot[K], newCapacity)

		ok := true
		for t := 0; t < 2 && ok; t++ {
			for i := 0; i < oldCapacity && ok; i++ {
				if old[t][i].occupied {
					ok = next.Add(old[t][i].key)
				}
			}
		}
		if ok {
			s.seed0, s.seed1 = next.seed0, next.seed1
			s.capacity = next.capacity
			s.limit = next.limit
			s.table = next.table
			return true
		}
		// This attempt's salts couldn't seat everything even at double
		// capacity; double again and try fresh salts.
		s.capacity = newCapacity
	}
}
