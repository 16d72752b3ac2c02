// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package cuckoo

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher derives the pair of independent bucket indices for a key. Both
// returned values are raw 64-bit hashes, not yet reduced by a table
// capacity; Set reduces them with the capacity and stripe count that
// are current at the time of the call.
//
// The two values must be independent enough that collisions under one
// are uncorrelated with collisions under the other: deriving h1 by
// shifting h0 (as the reference C++ implementation this package was
// modeled on does) shares low-order bits between the two and lets them
// correlate once both are reduced modulo a small capacity.
type Hasher[K comparable] func(k K) (h0, h1 uint64)

// mix64 is the 64-bit finalizer from splitmix64/xxhash-style avalanche
// constants, used to decorrelate a second hash from a first without a
// second independent seed.
const mix64 uint64 = 0x9E3779B97F4A7C15

// DefaultHasher builds a Hasher for any comparable key type from two
// independently seeded maphash.Hash values, the same primitive
// goarista's key.Hash uses to hash arbitrary keys for its hashmap.
func DefaultHasher[K comparable]() Hasher[K] {
	seed0 := maphash.MakeSeed()
	seed1 := maphash.MakeSeed()
	return func(k K) (uint64, uint64) {
		return maphash.Comparable(seed0, k), maphash.Comparable(seed1, k)
	}
}

// Uint64Hasher builds a Hasher for uint64 keys on top of xxhash, the
// hash goarista already pulls in transitively through Sarama. h1 is
// derived by re-hashing h0 mixed with a finalizer constant rather than
// by shifting h0, so the two indices stay independent after reduction
// by a small capacity.
func Uint64Hasher() Hasher[uint64] {
	return func(k uint64) (uint64, uint64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], k)
		h0 := xxhash.Sum64(buf[:])

		binary.LittleEndian.PutUint64(buf[:], h0^mix64)
		h1 := xxhash.Sum64(buf[:])
		return h0, h1
	}
}
