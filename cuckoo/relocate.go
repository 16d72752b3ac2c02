// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

// relocate shrinks an over-Threshold bucket table[idx] by evicting its
// resident key to its alternate table, chaining further evictions if
// that alternate bucket is itself over Threshold. It holds no locks on
// entry and re-acquires the evicted key's stripes fresh on every round,
// so a concurrent resize is always free to proceed between rounds.
//
// It reports whether the chain resolved (the caller need do nothing
// further) or whether it hit the relocation limit or a fully-packed
// alternate bucket (the caller must trigger a resize).
func (s *Set[K]) relocate(table int, idx uint64) bool {
	limit := s.relocationLimitSnapshot()
	rounds := 0
	for ; rounds < limit; rounds++ {
		other := 1 - table

		v, ok := s.peekTable(table, idx)
		if !ok {
			// Another goroutine already drained this bucket below
			// Threshold; there's nothing left for us to do.
			s.metrics.Relocations(rounds)
			return true
		}

		raw0, raw1 := s.hasher(v)
		release := s.acquire(raw0, raw1)

		bucket, idxNow := s.bucketsForTable(table, raw0, raw1)
		if idxNow != idx || !bucket.contains(v) {
			// v moved or was removed between peek and acquire, or the
			// capacity changed and idx no longer names v's bucket.
			// Re-check whether this bucket still needs draining.
			if s.peekLen(table, idx) >= Threshold {
				release()
				continue
			}
			release()
			s.metrics.Relocations(rounds)
			return true
		}

		bucket.remove(v)
		altRaw := raw1
		if table == 1 {
			altRaw = raw0
		}
		altIdx := bucketIndex(altRaw, s.capacitySnapshot())
		alt := &s.tables[other][altIdx]

		switch {
		case alt.len() < Threshold:
			alt.append(v)
			release()
			s.metrics.Relocations(rounds + 1)
			return true

		case alt.len() < ProbeSize:
			alt.append(v)
			table, idx = other, altIdx
			release()
			// continue the loop from the new bucket

		default:
			// Put v back; nowhere to put it, caller must resize.
			bucket.append(v)
			release()
			s.metrics.Relocations(rounds + 1)
			return false
		}
	}
	return false
}

// bucketsForTable returns the bucket in table for the given raw hash
// pair, and its index, recomputed under a freshly read capacity. It is
// used to detect whether a resize shifted idx's meaning out from under
// a relocation chain.
func (s *Set[K]) bucketsForTable(table int, raw0, raw1 uint64) (bucket *slot[K], idx uint64) {
	raw := raw0
	if table == 1 {
		raw = raw1
	}
	idx = bucketIndex(raw, s.capacitySnapshot())
	return &s.tables[table][idx], idx
}

// peekTable non-destructively reads the first resident key of
// table[idx], without any lock: the caller re-verifies under lock
// before acting on it.
func (s *Set[K]) peekTable(table int, idx uint64) (K, bool) {
	return s.tables[table][idx].peek()
}

func (s *Set[K]) peekLen(table int, idx uint64) int {
	return s.tables[table][idx].len()
}

func (s *Set[K]) capacitySnapshot() uint64 {
	s.mu.RLock()
	c := s.capacity
	s.mu.RUnlock()
	return c
}

func (s *Set[K]) relocationLimitSnapshot() int {
	s.mu.RLock()
	l := s.relocationLimit
	s.mu.RUnlock()
	return l
}
