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
	"math/bits"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
)

// stackCapacity bounds the number of pending runs. Power-ordered stacks
// hold at most one run per bit of the range length. Invariant-ordered
// run lengths grow at least like Fibonacci numbers, which needs about
// 1.44 entries per bit, hence the extra half.
const stackCapacity = bits.UintSize + bits.UintSize/2

// Run is a sorted, pending slice [Base, Base+Len) of the range.
type Run struct {
	Base int
	Len  int
	// Power is the node power of the boundary between this run and the
	// one above it. Only the power policy maintains it.
	Power int
}

// End is one past the last index of r.
func (r Run) End() int {
	return r.Base + r.Len
}

// runStack is a fixed arena of pending runs. Consecutive entries are
// adjacent: runs[i].End() == runs[i+1].Base.
type runStack struct {
	runs [stackCapacity]Run
	size int
}

func (s *runStack) reset() {
	s.size = 0
}

func (s *runStack) push(r Run) {
	if s.size == stackCapacity {
		panic(moerr.NewRunStackOverflow(moerr.Context(), s.size+1, stackCapacity))
	}
	s.runs[s.size] = r
	s.size++
}

func (s *runStack) len() int {
	return s.size
}

func (s *runStack) at(i int) *Run {
	return &s.runs[i]
}

func (s *runStack) top() *Run {
	return &s.runs[s.size-1]
}

// collapseAt replaces entries i and i+1 by one entry spanning both and
// returns the two runs it replaced. i must be size-2 or size-3. No
// element is moved.
func (s *runStack) collapseAt(i int) (Run, Run) {
	r1, r2 := s.runs[i], s.runs[i+1]
	s.runs[i].Len = r1.Len + r2.Len
	if i == s.size-3 {
		s.runs[i+1] = s.runs[i+2]
	}
	s.size--
	return r1, r2
}

// lens returns the run lengths bottom to top.
func (s *runStack) lens() []int {
	out := make([]int, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.runs[i].Len
	}
	return out
}
