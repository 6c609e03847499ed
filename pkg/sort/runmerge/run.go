// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runmerge

import (
	"github.com/matrixorigin/runsort/pkg/sort/access"
	"github.com/matrixorigin/runsort/pkg/sort/insertion"
)

const (
	// MinMerge is the range length below which the whole range is sorted
	// as a single run by binary insertion, with no merging at all.
	MinMerge = 32

	// MinGallop is both the initial minGallop of a sort invocation and the
	// block size galloping must keep producing to stay in galloping mode.
	MinGallop = 7
)

// countRunAndMakeAscending returns the length of the maximal run starting
// at lo, reversing it first if it is descending.
//
// A descending run must be strictly descending: reversing it then never
// swaps two equal elements, which keeps the sort stable.
func countRunAndMakeAscending[T any](a *access.Seq[T], lo, hi int) int {
	runHi := lo + 1
	if runHi == hi {
		return 1
	}

	if a.Less(runHi, lo) {
		runHi++
		for runHi < hi && a.Less(runHi, runHi-1) {
			runHi++
		}
		a.Reverse(lo, runHi)
	} else {
		runHi++
		for runHi < hi && !a.Less(runHi, runHi-1) {
			runHi++
		}
	}
	return runHi - lo
}

// extendRun grows the sorted run a[lo:lo+runLen] to minRun elements, or
// to the end of the range, and returns the new length.
func extendRun[T any](a *access.Seq[T], lo, hi, runLen, minRun int) int {
	if runLen >= minRun {
		return runLen
	}
	force := minRun
	if hi-lo < force {
		force = hi - lo
	}
	insertion.SortCore(a, lo, lo+force, lo+runLen)
	return force
}

// minRunLength returns the minimum run length for a range of length n.
// For n < MinMerge it is n itself. Otherwise it is k with
// MinMerge/2 <= k <= MinMerge such that n/k is close to, but strictly
// less than, an exact power of 2.
func minRunLength(n int) int {
	r := 0
	for n >= MinMerge {
		r |= n & 1
		n >>= 1
	}
	return n + r
}
