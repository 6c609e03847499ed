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

// Package powersort is a stable natural merge sort that orders pending runs
// by the node power of their boundaries, which bounds merge cost by the
// entropy of the run lengths.
package powersort

import (
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/runsort/pkg/sort/access"
	"github.com/matrixorigin/runsort/pkg/sort/runmerge"
)

// Sort sorts s in ascending order. Equal elements keep their order.
func Sort[T constraints.Ordered](s []T) {
	runmerge.New(access.Compare[T], runmerge.Power()).Sort(s)
}

// SortFunc sorts s by cmp, which returns a negative number when a < b,
// zero when they are equal and a positive number otherwise. A nil cmp
// panics with an ErrInvalidArg error.
func SortFunc[T any](s []T, cmp func(a, b T) int) {
	runmerge.New(cmp, runmerge.Power()).Sort(s)
}

// SortObserved is Sort reporting every element access to obs.
func SortObserved[T constraints.Ordered](s []T, obs access.Observer) {
	runmerge.New(access.Compare[T], runmerge.Power(), runmerge.WithObserver(obs)).Sort(s)
}

// SortRange sorts s[first:last]. obs may be nil.
func SortRange[T constraints.Ordered](s []T, first, last int, obs access.Observer) error {
	return SortRangeFunc(s, first, last, access.Compare[T], obs)
}

// SortRangeFunc sorts s[first:last] by cmp. obs may be nil. An invalid
// range is reported before s is modified.
func SortRangeFunc[T any](s []T, first, last int, cmp func(a, b T) int, obs access.Observer) error {
	return runmerge.New(cmp, runmerge.Power(), runmerge.WithObserver(obs)).SortRange(s, first, last)
}
