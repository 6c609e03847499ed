// Copyright 2023 Matrix Origin
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

package perfcounter

import (
	"context"

	"github.com/matrixorigin/runsort/pkg/sort/access"
)

// Observer counts element accesses into counter sets. It implements
// access.Observer.
type Observer struct {
	sets []*CounterSet
}

var _ access.Observer = (*Observer)(nil)

// NewObserver returns an observer adding to every set.
func NewObserver(sets ...*CounterSet) *Observer {
	for _, s := range sets {
		if s == nil {
			panic("nil counter set")
		}
	}
	return &Observer{sets: sets}
}

// ObserverFromContext returns an observer over the counter sets attached
// to ctx, or nil when there are none so that sorting stays unobserved.
func ObserverFromContext(ctx context.Context) access.Observer {
	sets := CounterSetsFrom(ctx)
	if len(sets) == 0 {
		return nil
	}
	return NewObserver(sets...)
}

func (o *Observer) add(i int, fn func(s *SortCounterSet)) {
	for _, set := range o.sets {
		fn(&set.Sort)
		if access.IsScratch(i) {
			set.Sort.Scratch.Add(1)
		}
	}
}

func (o *Observer) Compare(i, j int) {
	if access.IsScratch(j) {
		i = j
	}
	o.add(i, func(s *SortCounterSet) { s.Compare.Add(1) })
}

func (o *Observer) Read(i int) {
	o.add(i, func(s *SortCounterSet) { s.Read.Add(1) })
}

func (o *Observer) Write(i int) {
	o.add(i, func(s *SortCounterSet) { s.Write.Add(1) })
}

func (o *Observer) Swap(i, j int) {
	o.add(i, func(s *SortCounterSet) { s.Swap.Add(1) })
}

func (o *Observer) CopyTo(src, dst, count int) {
	if access.IsScratch(dst) {
		src = dst
	}
	o.add(src, func(s *SortCounterSet) {
		s.Copy.Calls.Add(1)
		s.Copy.Elements.Add(int64(count))
	})
}
