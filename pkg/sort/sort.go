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

// Package sort orders row selections by column values. The values stay
// where they are; only the selection is permuted, so a column can be read
// in order through it.
package sort

import (
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/sort/access"
	"github.com/matrixorigin/runsort/pkg/sort/runmerge"
)

// Sort reorders the selection os so that vs[os[0]], vs[os[1]], ... is
// ascending, or descending when desc is set. Rows with equal values keep
// their order in os under both directions. Observed accesses are
// positions in os, not in vs.
func Sort[T constraints.Ordered](desc bool, p runmerge.Policy, vs []T, os []int64, opts ...runmerge.Option) runmerge.Stats {
	return SortFunc(desc, p, vs, os, access.Compare[T], opts...)
}

// SortFunc is Sort with a caller supplied comparator. A nil cmp or a nil
// policy panics with an ErrInvalidArg error.
func SortFunc[T any](desc bool, p runmerge.Policy, vs []T, os []int64, cmp func(a, b T) int, opts ...runmerge.Option) runmerge.Stats {
	// rowCmp below is never nil, so cmp is checked here
	if cmp == nil {
		panic(moerr.NewInvalidArg(moerr.Context(), "comparator", nil))
	}
	var rowCmp func(a, b int64) int
	if desc {
		rowCmp = func(a, b int64) int {
			return cmp(vs[b], vs[a])
		}
	} else {
		rowCmp = func(a, b int64) int {
			return cmp(vs[a], vs[b])
		}
	}
	s := runmerge.New(rowCmp, p, opts...)
	s.Sort(os)
	return s.Stats()
}

// Selection returns the identity selection 0, 1, ..., n-1.
func Selection(n int) []int64 {
	os := make([]int64, n)
	for i := range os {
		os[i] = int64(i)
	}
	return os
}

// Gather returns vs read in the order of os.
func Gather[T any](vs []T, os []int64) []T {
	out := make([]T, len(os))
	for i, o := range os {
		out[i] = vs[o]
	}
	return out
}
