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

// Package runmerge is the natural run merge sort engine shared by the
// timsort and powersort packages. It finds maximal monotonic runs, grows
// short ones by binary insertion, keeps pending runs on a fixed stack
// ordered by a pluggable Policy, and merges adjacent runs with an
// adaptive galloping merge.
package runmerge

import (
	"go.uber.org/zap"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/logutil"
	"github.com/matrixorigin/runsort/pkg/sort/access"
	"github.com/matrixorigin/runsort/pkg/sort/insertion"
	"github.com/matrixorigin/runsort/pkg/sort/scratch"
)

// Stats describes the work done by the last Sort call of a Sorter.
type Stats struct {
	Runs         int
	Merges       int
	GallopModes  int
	MaxDepth     int
	MinGallop    int
	ScratchElems int64
}

type options struct {
	obs access.Observer
}

type Option func(*options)

// WithObserver routes every element access through obs.
func WithObserver(obs access.Observer) Option {
	return func(o *options) {
		o.obs = obs
	}
}

// Sorter sorts slices of T with one merge policy. A Sorter may be reused
// for many calls but not concurrently; every call starts from fresh merge
// state.
type Sorter[T any] struct {
	cmp    func(a, b T) int
	policy Policy
	obs    access.Observer
	pool   *scratch.Pool[T]

	seq   *access.Seq[T]
	stack runStack
	state mergeState
	lo, n int
	stats Stats
}

// New returns a Sorter ordering elements by cmp under policy.
func New[T any](cmp func(a, b T) int, policy Policy, opts ...Option) *Sorter[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Sorter[T]{
		cmp:    cmp,
		policy: policy,
		obs:    o.obs,
		pool:   scratch.For[T](),
	}
}

// Policy returns the merge policy of s.
func (s *Sorter[T]) Policy() Policy {
	return s.policy
}

// Stats returns the statistics of the last Sort or SortRange call.
func (s *Sorter[T]) Stats() Stats {
	return s.stats
}

// Sort sorts data in place. It panics with an ErrInvalidArg error when
// the Sorter has no comparator or no policy.
func (s *Sorter[T]) Sort(data []T) {
	if err := s.SortRange(data, 0, len(data)); err != nil {
		panic(err)
	}
}

// SortRange sorts data[first:last] in place. An invalid range is
// rejected before any element is touched.
func (s *Sorter[T]) SortRange(data []T, first, last int) error {
	if err := s.validate(len(data), first, last); err != nil {
		return err
	}

	s.seq = access.NewSeq(data, s.cmp, s.obs)
	s.lo, s.n = first, last-first
	s.stack.reset()
	s.state.reset()
	s.stats = Stats{}
	defer func() {
		s.seq = nil
	}()

	s.sort(first, last)
	s.stats.MinGallop = s.state.minGallop
	if logutil.DebugEnabled() && s.n >= MinMerge {
		logutil.Debug("run merge sort done",
			zap.String("policy", s.policy.Name()),
			zap.Int("n", s.n),
			zap.Int("runs", s.stats.Runs),
			zap.Int("merges", s.stats.Merges),
			zap.Int("gallop-modes", s.stats.GallopModes),
			zap.Int("max-depth", s.stats.MaxDepth),
			zap.Int("min-gallop", s.stats.MinGallop))
	}
	return nil
}

func (s *Sorter[T]) validate(length, first, last int) error {
	if s.cmp == nil {
		return moerr.NewInvalidArg(moerr.Context(), "comparator", nil)
	}
	if s.policy == nil {
		return moerr.NewInvalidArg(moerr.Context(), "merge policy", nil)
	}
	if first < 0 || last > length || first > last {
		return moerr.NewInvalidInput(moerr.Context(),
			"sort range [%d, %d) out of bounds for length %d", first, last, length)
	}
	return nil
}

func (s *Sorter[T]) sort(lo, hi int) {
	a := s.seq
	remaining := hi - lo
	if remaining < 2 {
		return
	}

	// Short ranges are one run grown by insertion: no stack, no merges.
	if remaining < MinMerge {
		initRunLen := countRunAndMakeAscending(a, lo, hi)
		insertion.SortCore(a, lo, hi, lo+initRunLen)
		s.stats.Runs = 1
		return
	}

	minRun := minRunLength(remaining)
	for remaining != 0 {
		runLen := countRunAndMakeAscending(a, lo, hi)
		runLen = extendRun(a, lo, hi, runLen, minRun)

		s.stats.Runs++
		s.policy.Push(s, Run{Base: lo, Len: runLen})
		if d := s.stack.len(); d > s.stats.MaxDepth {
			s.stats.MaxDepth = d
		}

		lo += runLen
		remaining -= runLen
	}
	s.policy.ForceCollapse(s)
}

func (s *Sorter[T]) runs() *runStack {
	return &s.stack
}

func (s *Sorter[T]) bounds() (int, int) {
	return s.lo, s.n
}
