// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package testutil holds small test-only helpers for the cuckoo
// package's test suite: a membership-set differ for oracle equivalence
// checks, whose failure report is rendered with godebug/pretty. It plays
// the role goarista's top-level test package plays for its own test
// suites, trimmed to what a set of comparable keys needs rather than
// goarista's general reflect-based deep-equal machinery.
package testutil

import (
	"fmt"
	"sort"

	"github.com/kylelemons/godebug/pretty"
)

// DiffMembership compares two snapshots of set membership and returns a
// human-readable description of the difference, or "" if they agree.
// It is used by the concurrency tests to compare the cuckoo set's
// final membership against the oracle's.
func DiffMembership[K comparable](want, got map[K]struct{}) string {
	if len(want) == len(got) {
		agree := true
		for k := range want {
			if _, ok := got[k]; !ok {
				agree = false
				break
			}
		}
		if agree {
			return ""
		}
	}

	var missing, extra []K
	for k := range want {
		if _, ok := got[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range got {
		if _, ok := want[k]; !ok {
			extra = append(extra, k)
		}
	}
	return fmt.Sprintf("membership mismatch: missing=%s extra=%s",
		pretty.Sprint(sortedKeys(missing)), pretty.Sprint(sortedKeys(extra)))
}

func sortedKeys[K comparable](ks []K) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = fmt.Sprint(k)
	}
	sort.Strings(out)
	return out
}
