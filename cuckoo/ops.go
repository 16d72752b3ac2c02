// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

// Contains reports whether k is a member of the set. The result
// reflects the true membership at the instant both of k's stripe locks
// are held; it is linearizable per key.
func (s *Set[K]) Contains(k K) bool {
	raw0, raw1 := s.hasher(k)
	release := s.acquire(raw0, raw1)
	defer release()
	defer s.metrics.Op("contains")

	b0, b1 := s.bucketsFor(raw0, raw1)
	return b0.contains(k) || b1.contains(k)
}

// bucketsFor returns the two candidate buckets for a key's raw hashes
// under the capacity current while a stripe lock is held.
func (s *Set[K]) bucketsFor(raw0, raw1 uint64) (b0, b1 *slot[K]) {
	capacity := s.capacitySnapshot()
	return &s.tables[0][bucketIndex(raw0, capacity)], &s.tables[1][bucketIndex(raw1, capacity)]
}

// Add inserts k, returning true if it was newly inserted and false if
// it was already present. It never duplicates k. It may transparently
// evict other keys (relocation) or rebuild the tables at twice the
// capacity (resize); in both cases it returns once k is durably placed.
func (s *Set[K]) Add(k K) bool {
	raw0, raw1 := s.hasher(k)
	release := s.acquire(raw0, raw1)

	b0, b1 := s.bucketsFor(raw0, raw1)
	if b0.contains(k) || b1.contains(k) {
		release()
		s.metrics.Op("add")
		return false
	}

	switch {
	case b0.len() < Threshold:
		b0.append(k)
		release()
		s.metrics.Op("add")
		return true

	case b1.len() < Threshold:
		b1.append(k)
		release()
		s.metrics.Op("add")
		return true

	case b0.len() < ProbeSize:
		b0.append(k)
		idx := bucketIndex(raw0, s.capacitySnapshot())
		release()
		s.finishPlacement(0, idx)
		s.metrics.Op("add")
		return true

	case b1.len() < ProbeSize:
		b1.append(k)
		idx := bucketIndex(raw1, s.capacitySnapshot())
		release()
		s.finishPlacement(1, idx)
		s.metrics.Op("add")
		return true

	default:
		release()
		s.resize()
		// The recursive call records its own "add" op; don't double-count.
		return s.Add(k)
	}
}

// finishPlacement runs after a key has been appended to an
// already-over-Threshold bucket: it tries to shrink that bucket back
// down via relocation, and resizes the whole set if relocation cannot
// make room. The key itself is already in the table either way; no
// caller re-adds it.
func (s *Set[K]) finishPlacement(table int, idx uint64) {
	if !s.relocate(table, idx) {
		s.resize()
	}
}

// Remove deletes k, returning true if it was present.
func (s *Set[K]) Remove(k K) bool {
	raw0, raw1 := s.hasher(k)
	release := s.acquire(raw0, raw1)
	defer release()
	defer s.metrics.Op("remove")

	b0, b1 := s.bucketsFor(raw0, raw1)
	if b0.remove(k) {
		return true
	}
	return b1.remove(k)
}

// Size returns the total number of keys, summed across both tables. It
// is a best-effort snapshot: concurrent mutators are not paused, so the
// result is exact only when the set is quiescent.
func (s *Set[K]) Size() int {
	s.mu.RLock()
	tables := s.tables
	s.mu.RUnlock()

	var n int
	for _, table := range tables {
		for i := range table {
			n += table[i].len()
		}
	}
	s.metrics.SetSize(n)
	return n
}

// Populate adds every key in keys via Add. It returns false on the
// first key that was already present, leaving every key added so far
// (including the duplicate's predecessors) in the set.
func (s *Set[K]) Populate(keys []K) bool {
	for _, k := range keys {
		if !s.Add(k) {
			return false
		}
	}
	return true
}
