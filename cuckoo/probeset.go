// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

// ProbeSize is the maximum number of keys a single bucket slot may
// hold. Threshold is the size below which an Add into a bucket never
// triggers relocation.
const (
	ProbeSize = 8
	Threshold = ProbeSize / 2
)

// slot is a probe set: an inline, fixed-capacity collection of keys
// bounded at ProbeSize. Using an array instead of a linked list (the
// reference C++ implementation uses std::list) avoids a heap
// allocation per key and keeps a bucket's keys in one cache line's
// reach for small key types.
type slot[K comparable] struct {
	keys [ProbeSize]K
	n    int
}

func (s *slot[K]) len() int { return s.n }

func (s *slot[K]) full() bool { return s.n == ProbeSize }

func (s *slot[K]) contains(k K) bool {
	for i := 0; i < s.n; i++ {
		if s.keys[i] == k {
			return true
		}
	}
	return false
}

// append adds k unconditionally; callers must have checked s.full().
func (s *slot[K]) append(k K) {
	s.keys[s.n] = k
	s.n++
}

// remove deletes the first occurrence of k, reports whether it was
// present.
func (s *slot[K]) remove(k K) bool {
	for i := 0; i < s.n; i++ {
		if s.keys[i] == k {
			s.n--
			s.keys[i] = s.keys[s.n]
			var zero K
			s.keys[s.n] = zero
			return true
		}
	}
	return false
}

// peek returns the first resident key without removing it, for the
// relocation loop's non-destructive victim read.
func (s *slot[K]) peek() (K, bool) {
	if s.n == 0 {
		var zero K
		return zero, false
	}
	return s.keys[0], true
}
