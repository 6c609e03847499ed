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
)

// gallopLeft locates the position at which to insert key into the sorted
// a[base:base+length]. If the run holds elements equal to key, the
// leftmost position is returned: it returns k such that
// a[base:base+k] < key <= a[base+k:base+length].
//
// The search starts at hint (0 <= hint < length) and doubles its step
// away from hint until the answer is bracketed, then binary searches the
// bracket. The closer hint is to the answer, the fewer comparisons.
func gallopLeft[T any](key T, keyLoc int, a *access.Seq[T], base, length, hint int) int {
	lastOfs := 0
	ofs := 1
	if a.CompareKey(key, keyLoc, base+hint) > 0 {
		// gallop right until a[base+hint+lastOfs] < key <= a[base+hint+ofs]
		maxOfs := length - hint
		for ofs < maxOfs && a.CompareKey(key, keyLoc, base+hint+ofs) > 0 {
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 { // int overflow
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs += hint
		ofs += hint
	} else {
		// gallop left until a[base+hint-ofs] < key <= a[base+hint-lastOfs]
		maxOfs := hint + 1
		for ofs < maxOfs && a.CompareKey(key, keyLoc, base+hint-ofs) <= 0 {
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 { // int overflow
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs, ofs = hint-ofs, hint-lastOfs
	}

	// a[base+lastOfs] < key <= a[base+ofs]; the answer is in (lastOfs, ofs]
	lastOfs++
	for lastOfs < ofs {
		m := lastOfs + ((ofs - lastOfs) >> 1)
		if a.CompareKey(key, keyLoc, base+m) > 0 {
			lastOfs = m + 1
		} else {
			ofs = m
		}
	}
	return ofs
}

// gallopRight is like gallopLeft, except that if the run holds elements
// equal to key it returns the position after the rightmost one:
// a[base:base+k] <= key < a[base+k:base+length].
func gallopRight[T any](key T, keyLoc int, a *access.Seq[T], base, length, hint int) int {
	ofs := 1
	lastOfs := 0
	if a.CompareKey(key, keyLoc, base+hint) < 0 {
		// gallop left until a[base+hint-ofs] <= key < a[base+hint-lastOfs]
		maxOfs := hint + 1
		for ofs < maxOfs && a.CompareKey(key, keyLoc, base+hint-ofs) < 0 {
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 { // int overflow
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs, ofs = hint-ofs, hint-lastOfs
	} else {
		// gallop right until a[base+hint+lastOfs] <= key < a[base+hint+ofs]
		maxOfs := length - hint
		for ofs < maxOfs && a.CompareKey(key, keyLoc, base+hint+ofs) >= 0 {
			lastOfs = ofs
			ofs = (ofs << 1) + 1
			if ofs <= 0 { // int overflow
				ofs = maxOfs
			}
		}
		if ofs > maxOfs {
			ofs = maxOfs
		}
		lastOfs += hint
		ofs += hint
	}

	lastOfs++
	for lastOfs < ofs {
		m := lastOfs + ((ofs - lastOfs) >> 1)
		if a.CompareKey(key, keyLoc, base+m) < 0 {
			ofs = m
		} else {
			lastOfs = m + 1
		}
	}
	return ofs
}

// searchLeft is a plain binary search with the result of gallopLeft.
// An empty run yields 0.
func searchLeft[T any](key T, keyLoc int, a *access.Seq[T], base, length int) int {
	lo, hi := 0, length
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if a.CompareKey(key, keyLoc, base+m) > 0 {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}

// searchRight is a plain binary search with the result of gallopRight.
// An empty run yields 0.
func searchRight[T any](key T, keyLoc int, a *access.Seq[T], base, length int) int {
	lo, hi := 0, length
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if a.CompareKey(key, keyLoc, base+m) < 0 {
			hi = m
		} else {
			lo = m + 1
		}
	}
	return lo
}
