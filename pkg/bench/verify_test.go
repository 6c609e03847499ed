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

package bench

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/sort/powersort"
)

func TestVerify(t *testing.T) {
	before := Tag([]int64{3, 1, 2, 1})
	after := append([]Tagged(nil), before...)
	powersort.SortFunc(after, CompareTagged)
	if diff := cmp.Diff([]Tagged{{1, 1}, {1, 3}, {2, 2}, {3, 0}}, after); diff != "" {
		t.Fatalf("sorted output mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, Verify(before, after))
	require.NoError(t, Verify(nil, nil))
}

func TestVerifyFailures(t *testing.T) {
	before := Tag([]int64{3, 1, 2, 1})

	err := Verify(before, before[:3])
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotPermutation))

	err = Verify(before, []Tagged{{1, 1}, {1, 3}, {3, 0}, {2, 2}})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotSorted))

	err = Verify(before, []Tagged{{1, 3}, {1, 1}, {2, 2}, {3, 0}})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotStable))
	require.Contains(t, err.Error(), "original index 1 emitted after 3")

	err = Verify(before, []Tagged{{1, 1}, {1, 1}, {2, 2}, {3, 0}})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotPermutation))

	err = Verify(before, []Tagged{{1, 1}, {1, 3}, {2, 2}, {4, 0}})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotPermutation))

	err = Verify(before, []Tagged{{1, 1}, {1, 3}, {2, 2}, {3, 9}})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNotPermutation))

	// several problems at once are all reported
	err = Verify(before, []Tagged{{3, 0}, {1, 3}, {1, 1}, {1, 1}})
	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
}

func TestFromSelection(t *testing.T) {
	keys := []int64{30, 10, 20}
	require.Equal(t, []Tagged{{10, 1}, {20, 2}, {30, 0}}, FromSelection(keys, []int64{1, 2, 0}))
}

func TestDistinctKeys(t *testing.T) {
	keys := make([]int64, 20000)
	for i := range keys {
		keys[i] = int64(i % 1000)
	}
	est := DistinctKeys(keys)
	require.InDelta(t, 1000, float64(est), 50)
}
