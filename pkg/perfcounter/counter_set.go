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
	"sync/atomic"
)

type CounterSet struct {
	Sort SortCounterSet
}

type SortCounterSet struct {
	Compare atomic.Int64 // element comparisons
	Read    atomic.Int64 // single element reads
	Write   atomic.Int64 // single element writes
	Swap    atomic.Int64 // element swaps
	Copy    struct {
		Calls    atomic.Int64 // block copies, main sequence or scratch
		Elements atomic.Int64 // elements moved by block copies
	}
	// Scratch counts accesses that touched a scratch buffer.
	Scratch atomic.Int64

	Sorts         atomic.Int64 // completed sort invocations
	Runs          atomic.Int64 // natural runs found
	Merges        atomic.Int64 // adjacent run merges
	Gallops       atomic.Int64 // entries into galloping mode
	ScratchBorrow atomic.Int64 // scratch elements borrowed
}

func (c *CounterSet) Reset() {
	_ = c.IterFields(func(_ []string, counter *atomic.Int64) error {
		counter.Store(0)
		return nil
	})
}

// IterFields calls fn for every counter with its dotted path. Iteration
// stops at the first error, which is returned.
func (c *CounterSet) IterFields(fn func(path []string, counter *atomic.Int64) error) error {
	s := &c.Sort
	fields := []struct {
		path    []string
		counter *atomic.Int64
	}{
		{[]string{"Sort", "Compare"}, &s.Compare},
		{[]string{"Sort", "Read"}, &s.Read},
		{[]string{"Sort", "Write"}, &s.Write},
		{[]string{"Sort", "Swap"}, &s.Swap},
		{[]string{"Sort", "Copy", "Calls"}, &s.Copy.Calls},
		{[]string{"Sort", "Copy", "Elements"}, &s.Copy.Elements},
		{[]string{"Sort", "Scratch"}, &s.Scratch},
		{[]string{"Sort", "Sorts"}, &s.Sorts},
		{[]string{"Sort", "Runs"}, &s.Runs},
		{[]string{"Sort", "Merges"}, &s.Merges},
		{[]string{"Sort", "Gallops"}, &s.Gallops},
		{[]string{"Sort", "ScratchBorrow"}, &s.ScratchBorrow},
	}
	for _, f := range fields {
		if err := fn(f.path, f.counter); err != nil {
			return err
		}
	}
	return nil
}

// AddSortResult records one finished sort invocation.
func (c *CounterSet) AddSortResult(runs, merges, gallops int, scratchElems int64) {
	c.Sort.Sorts.Add(1)
	c.Sort.Runs.Add(int64(runs))
	c.Sort.Merges.Add(int64(merges))
	c.Sort.Gallops.Add(int64(gallops))
	c.Sort.ScratchBorrow.Add(scratchElems)
}
