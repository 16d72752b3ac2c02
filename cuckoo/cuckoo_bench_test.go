// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import (
	"sync/atomic"
	"testing"
)

func BenchmarkAdd(b *testing.B) {
	s, err := New[int](1 << 16)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Add(i)
	}
}

func BenchmarkContains(b *testing.B) {
	s, err := New[int](1 << 16)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	const n = 1 << 15
	for i := 0; i < n; i++ {
		s.Add(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Contains(i % n)
	}
}

func BenchmarkMixed(b *testing.B) {
	s, err := New[int](1 << 16)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	const n = 1 << 15
	for i := 0; i < n; i++ {
		s.Add(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		switch i % 4 {
		case 0:
			s.Add(n + i)
		case 1:
			s.Remove(i % n)
		default:
			s.Contains(i % n)
		}
	}
}

func BenchmarkAddParallel(b *testing.B) {
	s, err := New[int](1 << 16)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	var next int64
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s.Add(int(atomic.AddInt64(&next, 1)))
		}
	})
}
