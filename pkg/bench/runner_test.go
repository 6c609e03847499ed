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
	"context"
	"testing"
	"time"

	"github.com/lni/goutils/leaktest"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/config"
	"github.com/matrixorigin/runsort/pkg/sort/runmerge"
)

func testParams() *config.BenchParameters {
	p := config.DefaultBenchParameters()
	p.Sizes = []int{0, 50, 3000}
	p.Repeat = 2
	p.Workers = 4
	p.StatsInterval.Duration = 0
	return p
}

func TestRunner(t *testing.T) {
	defer leaktest.AfterTest(t)()
	p := testParams()
	p.StatsInterval.Duration = 5 * time.Millisecond
	r := NewRunner(p)
	require.NotEmpty(t, r.ID())

	cases := r.Cases()
	require.Len(t, cases, len(p.Sizes)*len(p.Regimes)*p.Repeat*len(p.Policies))

	results, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, len(cases))
	require.NoError(t, Errors(results))

	for i := 0; i+1 < len(results); i += 2 {
		a, b := results[i], results[i+1]
		require.Equal(t, runmerge.InvariantPolicyName, a.Policy)
		require.Equal(t, runmerge.PowerPolicyName, b.Policy)
		require.Equal(t, a.Size, b.Size)
		require.Equal(t, a.Regime, b.Regime)
		// both policies were given the same input
		require.Equal(t, a.Distinct, b.Distinct, "%s", a.Case)
		require.Equal(t, a.Stats.Runs, b.Stats.Runs, "%s", a.Case)
		if a.Size < runmerge.MinMerge {
			require.Equal(t, a.Compares, b.Compares)
		}
	}

	sums := Summarize(results)
	require.Len(t, sums, len(p.Sizes)*len(p.Regimes)*len(p.Policies))
	for _, s := range sums {
		require.Equal(t, p.Repeat, s.Cases)
		require.Zero(t, s.Failed)
		require.LessOrEqual(t, s.P50, s.Max)
		require.LessOrEqual(t, s.P90, s.Max)
		if s.Size == 3000 {
			require.Greater(t, s.MeanCompares, 0.0)
		}
	}
}

func TestRunnerIndirect(t *testing.T) {
	p := testParams()
	p.Indirect = true
	r := NewRunner(p)
	results, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, Errors(results))
	require.Equal(t, int64(len(results)), r.Counters().Sort.Sorts.Load())
	require.Greater(t, r.Counters().Sort.Compare.Load(), int64(0))
}

func TestRunnerRecoversPanics(t *testing.T) {
	stubs := gostub.Stub(&generateInput, func(*rand.Rand, string, int) ([]int64, error) {
		panic("generator exploded")
	})
	defer stubs.Reset()

	p := testParams()
	p.Sizes = []int{10}
	results, err := NewRunner(p).Run(context.Background())
	require.NoError(t, err)
	for _, res := range results {
		require.True(t, moerr.IsMoErrCode(res.Err, moerr.ErrInternal))
		require.Contains(t, res.Err.Error(), "generator exploded")
	}

	sums := Summarize(results)
	for _, s := range sums {
		require.Equal(t, s.Cases, s.Failed)
		require.Zero(t, s.Mean)
	}
}

func TestRunnerStubbedInput(t *testing.T) {
	stubs := gostub.Stub(&generateInput, func(r *rand.Rand, regime string, n int) ([]int64, error) {
		return []int64{3, 2, 1}, nil
	})
	defer stubs.Reset()

	p := testParams()
	p.Sizes = []int{3}
	p.Regimes = []string{config.RegimeRandom}
	results, err := NewRunner(p).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, Errors(results))
	for _, res := range results {
		// one descending run: two compares, one swap
		require.Equal(t, 1, res.Stats.Runs)
		require.Equal(t, int64(2), res.Compares)
		require.Equal(t, int64(2), res.Moves)
		require.InDelta(t, 3, float64(res.Distinct), 0.5)
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := NewRunner(testParams()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	for _, res := range results {
		require.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestRunnerUnknownPolicy(t *testing.T) {
	p := testParams()
	p.Policies = []string{"greedy"}
	results, err := NewRunner(p).Run(context.Background())
	require.NoError(t, err)
	for _, res := range results {
		require.True(t, moerr.IsMoErrCode(res.Err, moerr.ErrInvalidArg))
	}
	require.Error(t, Errors(results))
}
