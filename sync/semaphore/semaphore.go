// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package semaphore bounds how many in-flight operations a caller allows
// against a shared resource, such as cmd/cuckoobench's -max-inflight flag
// limiting concurrent cuckoo set operations across all workers.
package semaphore

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Weighted is a wrapper around the semaphore that tracks available weight
type Weighted struct {
	sem           *semaphore.Weighted
	currentWeight int64
	mu            sync.Mutex
}

// NewWeighted initializes a new weighted semaphore with a given capacity
func NewWeighted(maxWeight int64) *Weighted {
	return &Weighted{
		sem:           semaphore.NewWeighted(maxWeight),
		currentWeight: maxWeight,
	}
}

// Acquire tries to acquire the specified weight. It blocks on the
// underlying semaphore without holding w.mu, so a blocked Acquire never
// prevents a concurrent Release from running.
func (w *Weighted) Acquire(ctx context.Context, weight int64) error {
	if err := w.sem.Acquire(ctx, weight); err != nil {
		return err
	}

	w.mu.Lock()
	w.currentWeight -= weight
	w.mu.Unlock()
	return nil
}

// Release releases the specified weight back to the semaphore
func (w *Weighted) Release(weight int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sem.Release(weight)
	w.currentWeight += weight
}

// Available returns the current available weight
func (w *Weighted) Available() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.currentWeight
}

// Guard acquires weight 1 and returns a release func, so a worker loop
// can write `release, err := w.Guard(ctx); defer release()` around a
// single cuckoo set operation instead of pairing Acquire/Release by hand.
func (w *Weighted) Guard(ctx context.Context) (release func(), err error) {
	if err := w.Acquire(ctx, 1); err != nil {
		return func() {}, err
	}
	return func() { w.Release(1) }, nil
}
