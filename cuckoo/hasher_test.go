// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import "testing"

func TestDefaultHasherIndependence(t *testing.T) {
	h := DefaultHasher[int]()
	h0a, h1a := h(1)
	h0b, h1b := h(2)
	if h0a == h1a {
		t.Errorf("h0 and h1 collided for the same key; seeds may not be independent")
	}
	if h0a == h0b {
		t.Errorf("h0 collided across distinct keys 1 and 2 (possible, but vanishingly unlikely for a real hash)")
	}
}

func TestUint64HasherDeterministic(t *testing.T) {
	h := Uint64Hasher()
	a0, a1 := h(42)
	b0, b1 := h(42)
	if a0 != b0 || a1 != b1 {
		t.Errorf("Uint64Hasher not deterministic for the same key: (%d,%d) vs (%d,%d)", a0, a1, b0, b1)
	}
	if a0 == a1 {
		t.Errorf("h0 == h1 for key 42, want independent hashes")
	}
}
