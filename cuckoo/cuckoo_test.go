// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import (
	"testing"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	tests := []int{0, -1, -100}
	for _, c := range tests {
		if _, err := New[int](c); err == nil {
			t.Errorf("New(%d) expected error, got nil", c)
		}
	}
}

func TestAddContainsRemove(t *testing.T) {
	s, err := New[string](8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.Contains("a") {
		t.Fatalf("empty set contains %q", "a")
	}
	if !s.Add("a") {
		t.Fatalf("Add(%q) on fresh set returned false", "a")
	}
	if !s.Contains("a") {
		t.Fatalf("Contains(%q) false after Add", "a")
	}
	if s.Add("a") {
		t.Fatalf("Add(%q) on duplicate returned true", "a")
	}
	if !s.Remove("a") {
		t.Fatalf("Remove(%q) returned false for present key", "a")
	}
	if s.Contains("a") {
		t.Fatalf("Contains(%q) true after Remove", "a")
	}
	if s.Remove("a") {
		t.Fatalf("Remove(%q) on absent key returned true", "a")
	}
}

func TestAddManyTriggersResize(t *testing.T) {
	s, err := New[int](4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const n = 500
	for i := 0; i < n; i++ {
		if !s.Add(i) {
			t.Fatalf("Add(%d) returned false on first insertion", i)
		}
	}
	for i := 0; i < n; i++ {
		if !s.Contains(i) {
			t.Errorf("Contains(%d) false after bulk insert", i)
		}
	}
	if got := s.Size(); got != n {
		t.Errorf("Size() = %d, want %d", got, n)
	}
}

func TestRemoveDuringDenseOccupancy(t *testing.T) {
	s, err := New[int](4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const n = 200
	for i := 0; i < n; i++ {
		s.Add(i)
	}
	for i := 0; i < n; i += 2 {
		if !s.Remove(i) {
			t.Errorf("Remove(%d) returned false", i)
		}
	}
	for i := 0; i < n; i++ {
		want := i%2 != 0
		if got := s.Contains(i); got != want {
			t.Errorf("Contains(%d) = %t, want %t", i, got, want)
		}
	}
	if got, want := s.Size(), n/2; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

func TestPopulate(t *testing.T) {
	s, err := New[int](8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !s.Populate([]int{1, 2, 3}) {
		t.Fatalf("Populate of distinct keys returned false")
	}
	if s.Populate([]int{4, 2, 5}) {
		t.Fatalf("Populate with a duplicate returned true")
	}
	// Keys preceding the duplicate must still be present.
	for _, k := range []int{1, 2, 3, 4} {
		if !s.Contains(k) {
			t.Errorf("Contains(%d) false, want true after partial Populate", k)
		}
	}
	if s.Contains(5) {
		t.Errorf("Contains(5) true, want false: Populate should have stopped at the duplicate")
	}
}

func TestNewRejectsStripeCountNotDividingCapacity(t *testing.T) {
	if _, err := New[int](16, WithStripeCount[int](10)); err == nil {
		t.Fatalf("New(16, WithStripeCount(10)) expected error, got nil")
	}
}

func TestWithStripeCountSurvivesResize(t *testing.T) {
	s, err := New[int](4, WithStripeCount[int](4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 300; i++ {
		s.Add(i)
	}
	for i := 0; i < 300; i++ {
		if !s.Contains(i) {
			t.Errorf("Contains(%d) false after resize with fixed stripe count", i)
		}
	}
}

func TestUint64Hasher(t *testing.T) {
	s, err := New[uint64](8, WithHasher[uint64](Uint64Hasher()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := uint64(0); i < 100; i++ {
		if !s.Add(i) {
			t.Fatalf("Add(%d) returned false", i)
		}
	}
	for i := uint64(0); i < 100; i++ {
		if !s.Contains(i) {
			t.Errorf("Contains(%d) false", i)
		}
	}
}
