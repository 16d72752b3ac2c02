// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import (
	"github.com/aristanetworks/cuckoostore/cuckoo/metrics"
	"github.com/aristanetworks/cuckoostore/logger"
)

// Option configures a Set at construction time.
type Option[K comparable] func(*Set[K])

// WithLogger installs a logger.Logger that Set uses to report resizes
// and resize-exhaustion recovery. Without this option, Set logs
// nothing.
func WithLogger[K comparable](l logger.Logger) Option[K] {
	return func(s *Set[K]) { s.logger = l }
}

// WithHasher overrides the default maphash-based Hasher. Use this to
// plug in a faster hash for a key type that has one, such as
// cuckoo.Uint64Hasher for uint64 keys.
func WithHasher[K comparable](h Hasher[K]) Option[K] {
	return func(s *Set[K]) { s.hasher = h }
}

// WithMetrics installs a metrics.Recorder that Set reports operation
// counts, resizes and relocation chain lengths through. Without this
// option, Set uses a no-op recorder.
func WithMetrics[K comparable](rec metrics.Recorder) Option[K] {
	return func(s *Set[K]) { s.metrics = rec }
}

// WithStripeCount overrides the lock stripe count S, which otherwise
// defaults to the initial capacity. S never changes after
// construction, including across resizes: that stability is what lets
// a resize's world-lock (every L[0] stripe) remain well defined no
// matter how many times capacity has doubled.
//
// S must evenly divide the initial capacity. Bucket indices are
// reduced modulo capacity and stripe indices modulo S; every key
// mapping to a given bucket must map to the same stripe; or two keys
// sharing a bucket could be guarded by different stripes and race on
// that bucket's probe set. Since capacity only ever doubles, S
// dividing the initial capacity keeps dividing every later capacity
// too. New returns an error if this does not hold.
func WithStripeCount[K comparable](s uint64) Option[K] {
	return func(set *Set[K]) { set.stripeCount = s }
}
