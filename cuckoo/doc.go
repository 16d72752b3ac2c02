// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package cuckoo implements a concurrent cuckoo hash set: two bucket
// tables addressed by independent hash functions, bounded-size probe
// sets per bucket, a striped reentrant-free lock array covering both
// tables, and an eviction/relocation loop that falls back to a global
// resize when a bucket can no longer absorb a key.
//
// The set supports Contains, Add, Remove, Size and Populate under many
// concurrent callers. It is blocking, not lock-free, and does not
// shrink.
package cuckoo
