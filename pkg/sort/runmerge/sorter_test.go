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
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/sort/access"
	"github.com/matrixorigin/runsort/pkg/sort/access/mock_access"
	"github.com/matrixorigin/runsort/pkg/sort/scratch"
)

func TestSortTrivialSizes(t *testing.T) {
	for _, p := range policies {
		c := &opCounter{}
		s := New(access.Compare[int], p, WithObserver(c))

		var empty []int
		s.Sort(empty)
		one := []int{42}
		s.Sort(one)
		require.Equal(t, []int{42}, one)
		require.Zero(t, *c)

		two := []int{2, 1}
		s.Sort(two)
		require.Equal(t, []int{1, 2}, two)
		require.Equal(t, 1, c.compares)
		require.Equal(t, 1, c.swaps)
	}
}

func TestSortDescendingIsReversed(t *testing.T) {
	for _, p := range policies {
		c := &opCounter{}
		data := []int{5, 4, 3, 2, 1}
		s := New(access.Compare[int], p, WithObserver(c))
		s.Sort(data)
		require.Equal(t, []int{1, 2, 3, 4, 5}, data)
		require.Equal(t, 2, c.swaps)
		require.Equal(t, 1, s.Stats().Runs)
		require.Zero(t, s.Stats().Merges)
	}
}

func TestSortTaggedExample(t *testing.T) {
	for _, p := range policies {
		data := tag([]int{3, 1, 4, 1, 5, 9, 2, 6})
		s := New(cmpTagged, p)
		s.Sort(data)
		require.Equal(t, []tagged{
			{1, 1}, {1, 3}, {2, 6}, {3, 0}, {4, 2}, {5, 4}, {6, 7}, {9, 5},
		}, data)
	}
}

func TestSortSortedInputIsLinear(t *testing.T) {
	for _, p := range policies {
		for _, n := range []int{10, 1000} {
			data := make([]int, n)
			for i := range data {
				data[i] = i
			}
			c := &opCounter{}
			s := New(access.Compare[int], p, WithObserver(c))
			s.Sort(data)
			require.Equal(t, n-1, c.compares)
			require.Zero(t, c.writes)
			require.Zero(t, c.swaps)
			require.Equal(t, 1, s.Stats().Runs)
			require.Zero(t, s.Stats().Merges)
		}
	}
}

func TestSortReversedInputIsLinear(t *testing.T) {
	for _, p := range policies {
		n := 1000
		data := make([]int, n)
		for i := range data {
			data[i] = n - i
		}
		c := &opCounter{}
		s := New(access.Compare[int], p, WithObserver(c))
		s.Sort(data)
		require.Equal(t, n-1, c.compares)
		require.Equal(t, n/2, c.swaps)
		require.Zero(t, s.Stats().Merges)
		for i := range data {
			require.Equal(t, i+1, data[i])
		}
	}
}

func TestSortMatchesStableReference(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	sizes := []int{2, 3, 31, 32, 33, 64, 65, 100, 1000, 5000}
	for _, regime := range regimes {
		for _, n := range sizes {
			input := tag(genKeys(r, regime, n))
			want := stableReference(input)
			for _, p := range policies {
				t.Run(fmt.Sprintf("%s/%d/%s", regime, n, p.Name()), func(t *testing.T) {
					data := append([]tagged(nil), input...)
					s := New(cmpTagged, p)
					s.pool = scratch.NewPool[tagged]()
					s.Sort(data)
					require.Equal(t, want, data)
					require.Zero(t, s.pool.Outstanding())
					if n >= MinMerge {
						require.LessOrEqual(t, s.Stats().MaxDepth, stackCapacity)
						require.GreaterOrEqual(t, s.Stats().MinGallop, 1)
					}

					// sorting again changes nothing and finds one run
					s.Sort(data)
					require.Equal(t, want, data)
					require.Equal(t, 1, s.Stats().Runs)
					require.Zero(t, s.Stats().Merges)
				})
			}
		}
	}
}

func TestSortPoliciesAgree(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		keys := genKeys(r, regimes[i%len(regimes)], 500+r.Intn(3000))
		a := tag(keys)
		b := tag(keys)
		New(cmpTagged, Invariant()).Sort(a)
		New(cmpTagged, Power()).Sort(b)
		require.Equal(t, a, b)
	}
}

func TestSortRangeLeavesOutsideUntouched(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	keys := genKeys(r, "random", 300)
	for _, p := range policies {
		data := append([]int(nil), keys...)
		s := New(access.Compare[int], p)
		require.NoError(t, s.SortRange(data, 50, 250))
		require.Equal(t, keys[:50], data[:50])
		require.Equal(t, keys[250:], data[250:])
		for i := 51; i < 250; i++ {
			require.LessOrEqual(t, data[i-1], data[i])
		}

		// an empty range is valid and touches nothing
		require.NoError(t, s.SortRange(data, 300, 300))
		require.NoError(t, s.SortRange(data, 10, 10))
	}
}

func TestSortRangeObservedLocations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	obs := mock_access.NewMockObserver(ctrl)
	gomock.InOrder(
		obs.EXPECT().Compare(11, 10),
		obs.EXPECT().Swap(10, 11),
	)
	data := []int{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 2, 1, 0}
	s := New(access.Compare[int], Invariant(), WithObserver(obs))
	require.NoError(t, s.SortRange(data, 10, 12))
	require.Equal(t, []int{1, 2}, data[10:12])
}

func TestSortRangeRejectsInvalidRanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// no call is expected: nothing may be touched
	obs := mock_access.NewMockObserver(ctrl)

	keys := []int{5, 3, 1, 4, 2}
	ranges := [][2]int{{-1, 3}, {0, 6}, {3, 1}, {6, 6}}
	for _, p := range policies {
		for _, rg := range ranges {
			data := append([]int(nil), keys...)
			s := New(access.Compare[int], p, WithObserver(obs))
			err := s.SortRange(data, rg[0], rg[1])
			require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput), "range %v", rg)
			require.Equal(t, keys, data)
		}
	}

	s := New[int](nil, Invariant())
	require.True(t, moerr.IsMoErrCode(s.SortRange(keys, 0, 5), moerr.ErrInvalidArg))
	s = New(access.Compare[int], nil)
	require.True(t, moerr.IsMoErrCode(s.SortRange(keys, 0, 5), moerr.ErrInvalidArg))
	require.Equal(t, []int{5, 3, 1, 4, 2}, keys)
}

func TestSortObserverSeesScratch(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	data := genKeys(r, "random", 2000)
	var scratchReads, mainReads int
	obs := &locRecorder{onRead: func(i int) {
		if access.IsScratch(i) {
			scratchReads++
		} else {
			require.Less(t, i, len(data))
			mainReads++
		}
	}}
	s := New(access.Compare[int], Power(), WithObserver(obs))
	s.Sort(data)
	require.Greater(t, scratchReads, 0)
	require.Greater(t, mainReads, 0)
	require.Greater(t, s.Stats().Merges, 0)
	require.Greater(t, s.Stats().ScratchElems, int64(0))
}

type locRecorder struct {
	opCounter
	onRead func(i int)
}

func (l *locRecorder) Read(i int) {
	l.onRead(i)
}

func TestSorterIsReusable(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	s := New(access.Compare[int], Invariant())
	for i := 0; i < 10; i++ {
		data := genKeys(r, regimes[i%len(regimes)], 100+r.Intn(1000))
		s.Sort(data)
		for j := 1; j < len(data); j++ {
			require.LessOrEqual(t, data[j-1], data[j])
		}
	}
	require.Equal(t, Invariant(), s.Policy())
}

func TestSortFloatsWithNaN(t *testing.T) {
	nan := func() float64 {
		var z float64
		return z / z
	}()
	data := []float64{3, nan, 1, 2, nan, 0}
	New(access.Compare[float64], Power()).Sort(data)
	require.True(t, data[0] != data[0])
	require.True(t, data[1] != data[1])
	require.Equal(t, []float64{0, 1, 2, 3}, data[2:])
}

func TestSortPanicsOnInvalidSorter(t *testing.T) {
	data := []int{3, 2, 1}
	err := recoverError(func() {
		New[int](nil, Invariant()).Sort(data)
	})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg), "recovered %v", err)
	require.Contains(t, err.Error(), "comparator")

	err = recoverError(func() {
		New(access.Compare[int], nil).Sort(data)
	})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg), "recovered %v", err)
	require.Contains(t, err.Error(), "merge policy")
	require.Equal(t, []int{3, 2, 1}, data)

	// the empty input is validated too
	err = recoverError(func() {
		New[int](nil, Power()).Sort(nil)
	})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
}

func recoverError(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}
