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

// Package insertion implements a stable binary insertion sort over a
// subrange of an access.Seq. It is used to grow short runs.
package insertion

import (
	"github.com/matrixorigin/runsort/pkg/sort/access"
)

// Sort stably sorts s[lo:hi].
func Sort[T any](s *access.Seq[T], lo, hi int) {
	SortCore(s, lo, hi, lo)
}

// SortCore stably sorts s[lo:hi] given that s[lo:start] is already sorted.
// Each element of s[start:hi] is inserted after every element that is not
// greater than it, so equal elements keep their order.
func SortCore[T any](s *access.Seq[T], lo, hi, start int) {
	if start == lo {
		start++
	}
	for ; start < hi; start++ {
		pivot := s.Read(start)
		pivotLoc := s.Loc(start)

		left, right := lo, start
		for left < right {
			mid := int(uint(left+right) >> 1)
			if s.CompareKey(pivot, pivotLoc, mid) < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}

		n := start - left
		switch n {
		case 0:
			continue
		case 1:
			s.Write(left+1, s.Read(left))
		default:
			s.Move(left, left+1, n)
		}
		s.Write(left, pivot)
	}
}
