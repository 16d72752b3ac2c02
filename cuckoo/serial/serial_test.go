// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package serial

import "testing"

func TestAddContainsRemove(t *testing.T) {
	s := New[string](8)
	if s.Contains("a") {
		t.Fatalf("empty set contains %q", "a")
	}
	if !s.Add("a") {
		t.Fatalf("Add(%q) returned false on fresh set", "a")
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
}

func TestAddManyTriggersResize(t *testing.T) {
	s := New[int](4)
	const n = 400
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

func TestPopulateStopsAtDuplicate(t *testing.T) {
	s := New[int](8)
	if !s.Populate([]int{1, 2, 3}) {
		t.Fatalf("Populate of distinct keys returned false")
	}
	if s.Populate([]int{4, 2, 5}) {
		t.Fatalf("Populate with a duplicate returned true")
	}
	if !s.Contains(4) {
		t.Errorf("Contains(4) false, want true: precedes the duplicate")
	}
	if s.Contains(5) {
		t.Errorf("Contains(5) true, want false: follows the duplicate")
	}
}

func TestNewNonPositiveCapacityClampsToOne(t *testing.T) {
	s := New[int](0)
	if !s.Add(1) {
		t.Fatalf("Add(1) returned false on a clamped-capacity set")
	}
	if !s.Contains(1) {
		t.Fatalf("Contains(1) false after Add")
	}
}
