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
	"sort"

	"golang.org/x/exp/rand"

	"github.com/matrixorigin/runsort/pkg/bench/datagen"
	"github.com/matrixorigin/runsort/pkg/sort/access"
)

type tagged struct {
	key int
	idx int
}

func cmpTagged(a, b tagged) int {
	return access.Compare(a.key, b.key)
}

func tag(keys []int) []tagged {
	out := make([]tagged, len(keys))
	for i, k := range keys {
		out[i] = tagged{key: k, idx: i}
	}
	return out
}

func stableReference(in []tagged) []tagged {
	out := append([]tagged(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

type opCounter struct {
	compares int
	reads    int
	writes   int
	swaps    int
	copies   int
}

func (c *opCounter) Compare(i, j int)          { c.compares++ }
func (c *opCounter) Read(i int)                { c.reads++ }
func (c *opCounter) Write(i int)               { c.writes++ }
func (c *opCounter) Swap(i, j int)             { c.swaps++ }
func (c *opCounter) CopyTo(src, dst, count int) { c.copies++ }

var policies = []Policy{Invariant(), Power()}

// genKeys builds inputs for the benchmarked regimes.
func genKeys(r *rand.Rand, regime string, n int) []int {
	keys, err := datagen.Generate(r, regime, n)
	if err != nil {
		panic(err)
	}
	out := make([]int, n)
	for i, k := range keys {
		out[i] = int(k)
	}
	return out
}

var regimes = datagen.Regimes()
