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
	"github.com/matrixorigin/runsort/pkg/common/moerr"
)

const (
	InvariantPolicyName = "invariant"
	PowerPolicyName     = "power"
)

// collapser is what a Policy drives: the pending run stack and the merge
// of two adjacent entries.
type collapser interface {
	runs() *runStack
	// bounds returns the start and the length of the range being sorted.
	bounds() (lo, n int)
	// mergeAt merges stack entries i and i+1, i is size-2 or size-3.
	mergeAt(i int)
}

// Policy decides the order in which pending runs are merged.
type Policy interface {
	Name() string
	// Push records a newly found run and performs the merges the policy
	// requires before the next run is scanned.
	Push(c collapser, r Run)
	// ForceCollapse merges every pending run into one.
	ForceCollapse(c collapser)
}

var (
	invariant Policy = invariantPolicy{}
	power     Policy = powerPolicy{}
)

// Invariant returns the classic TimSort policy. It keeps, for the three
// topmost lengths X, Y, Z (Z on top), X > Y+Z and Y > Z.
func Invariant() Policy {
	return invariant
}

// Power returns the PowerSort policy, which merges by the node power of
// run boundaries.
func Power() Policy {
	return power
}

// PolicyByName resolves a policy from its configured name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case InvariantPolicyName:
		return invariant, nil
	case PowerPolicyName:
		return power, nil
	default:
		return nil, moerr.NewInvalidArg(moerr.Context(), "merge policy", name)
	}
}

type invariantPolicy struct{}

func (invariantPolicy) Name() string {
	return InvariantPolicyName
}

func (invariantPolicy) Push(c collapser, r Run) {
	s := c.runs()
	s.push(r)
	for s.size > 1 {
		n := s.size - 2
		// The second clause looks one entry deeper: checking only the top
		// three lets a long run hide below a short one and break the bound.
		if n > 0 && s.runs[n-1].Len <= s.runs[n].Len+s.runs[n+1].Len ||
			n > 1 && s.runs[n-2].Len <= s.runs[n-1].Len+s.runs[n].Len {
			if s.runs[n-1].Len < s.runs[n+1].Len {
				n--
			}
		} else if s.runs[n].Len > s.runs[n+1].Len {
			break
		}
		c.mergeAt(n)
	}
}

func (invariantPolicy) ForceCollapse(c collapser) {
	s := c.runs()
	for s.size > 1 {
		n := s.size - 2
		if n > 0 && s.runs[n-1].Len < s.runs[n+1].Len {
			n--
		}
		c.mergeAt(n)
	}
}

type powerPolicy struct{}

func (powerPolicy) Name() string {
	return PowerPolicyName
}

func (powerPolicy) Push(c collapser, r Run) {
	s := c.runs()
	if s.size > 0 {
		lo, n := c.bounds()
		top := s.top()
		p := nodePower(top.Base-lo, top.Len, r.Len, n)
		// powers strictly increase up the stack once this loop is done
		for s.size > 1 && s.runs[s.size-2].Power > p {
			c.mergeAt(s.size - 2)
		}
		s.top().Power = p
	}
	s.push(r)
}

func (powerPolicy) ForceCollapse(c collapser) {
	s := c.runs()
	for s.size > 1 {
		c.mergeAt(s.size - 2)
	}
}

// nodePower returns the power of the boundary between the adjacent runs
// [s1, s1+n1) and [s1+n1, s1+n1+n2) of a range of length n: the depth of
// the first level at which the run midpoints, as fractions of n, fall in
// different halves.
//
// a and b are twice the midpoints, scaled so that every comparison is
// against n. Both stay below 2n, which fits in a uint for any int n.
func nodePower(s1, n1, n2, n int) int {
	a := 2*uint(s1) + uint(n1)
	b := a + uint(n1) + uint(n2)
	un := uint(n)
	result := 0
	for {
		result++
		if a >= un {
			a -= un
			b -= un
		} else if b >= un {
			break
		}
		a <<= 1
		b <<= 1
	}
	return result
}
