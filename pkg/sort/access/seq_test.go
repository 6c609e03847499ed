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

package access

import (
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/runsort/pkg/sort/access/mock_access"
)

func TestCompare(t *testing.T) {
	require.Equal(t, -1, Compare(1, 2))
	require.Equal(t, 1, Compare("b", "a"))
	require.Equal(t, 0, Compare(3.5, 3.5))

	nan := math.NaN()
	require.Equal(t, 0, Compare(nan, nan))
	require.Equal(t, -1, Compare(nan, math.Inf(-1)))
	require.Equal(t, 1, Compare(0.0, nan))
}

func TestScratchLoc(t *testing.T) {
	for i := 0; i < 10; i++ {
		loc := ScratchLoc(i)
		require.True(t, IsScratch(loc))
		require.Equal(t, i, ScratchIndex(loc))
	}
	require.False(t, IsScratch(0))
}

func TestSeqWithoutObserver(t *testing.T) {
	s := NewSeq([]int{5, 4, 3, 2, 1}, Compare[int], nil)
	require.Equal(t, 5, s.Len())
	require.True(t, s.Less(1, 0))
	s.Reverse(0, 5)
	require.Equal(t, []int{1, 2, 3, 4, 5}, s.Data())
	s.Move(0, 1, 3)
	require.Equal(t, []int{1, 1, 2, 3, 5}, s.Data())
	s.Write(0, 9)
	require.Equal(t, 9, s.Read(0))
	require.Equal(t, 1, s.CompareKey(4, 0, 1))
}

func TestSeqObserved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	obs := mock_access.NewMockObserver(ctrl)
	s := NewSeq([]int{3, 1, 2}, Compare[int], obs)
	buf := s.Scratch(make([]int, 2))

	gomock.InOrder(
		obs.EXPECT().Compare(1, 0),
		obs.EXPECT().Swap(0, 2),
		obs.EXPECT().CopyTo(0, ScratchLoc(0), 2),
		obs.EXPECT().Read(ScratchLoc(1)),
		obs.EXPECT().Compare(ScratchLoc(1), 2),
		obs.EXPECT().Write(ScratchLoc(0)),
		obs.EXPECT().CopyTo(ScratchLoc(0), 1, 2),
	)

	require.True(t, s.Less(1, 0))
	s.Swap(0, 2)
	buf.CopyFrom(0, s, 0, 2)
	require.Equal(t, []int{2, 1}, buf.Data())
	key := buf.Read(1)
	require.Equal(t, -1, s.CompareKey(key, buf.Loc(1), 2))
	buf.Write(0, 7)
	s.CopyFrom(1, buf, 0, 2)
	require.Equal(t, []int{2, 7, 1}, s.Data())

	// zero-length copies are not reported
	s.Move(0, 1, 0)
	s.CopyFrom(0, buf, 0, 0)
}
