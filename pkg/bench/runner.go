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
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/matrixorigin/runsort/pkg/bench/datagen"
	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/config"
	"github.com/matrixorigin/runsort/pkg/logutil"
	"github.com/matrixorigin/runsort/pkg/perfcounter"
	rowsort "github.com/matrixorigin/runsort/pkg/sort"
	"github.com/matrixorigin/runsort/pkg/sort/runmerge"
	"github.com/matrixorigin/runsort/pkg/sort/timsort"
	"github.com/matrixorigin/runsort/pkg/util/metric"
	"github.com/matrixorigin/runsort/pkg/util/metric/stats"
)

// Case is one sort of one generated input. Cases that differ only in
// policy sort the same input.
type Case struct {
	Size   int
	Regime string
	Policy string
	Repeat int
}

func (c Case) String() string {
	return fmt.Sprintf("%s/%s/%d#%d", c.Policy, c.Regime, c.Size, c.Repeat)
}

type Result struct {
	Case
	Duration time.Duration
	Stats    runmerge.Stats
	Compares int64
	// Moves counts element writes, elements moved by block copies and two
	// per swap.
	Moves int64
	// Distinct is the estimated number of distinct keys, set only when
	// results are verified.
	Distinct uint64
	Err      error
}

// generateInput is replaced in tests.
var generateInput = datagen.Generate

// Runner runs every case described by a BenchParameters on a worker pool.
// Each case sorts its own copy of its input on one worker.
type Runner struct {
	params   *config.BenchParameters
	id       uuid.UUID
	counters *perfcounter.CounterSet
}

func NewRunner(params *config.BenchParameters) *Runner {
	return &Runner{
		params:   params,
		id:       uuid.New(),
		counters: new(perfcounter.CounterSet),
	}
}

// ID identifies the run in logs.
func (r *Runner) ID() string {
	return r.id.String()
}

// Counters accumulates the work of every case of the run.
func (r *Runner) Counters() *perfcounter.CounterSet {
	return r.counters
}

// Cases lists every case, grouped by size, regime and repeat.
func (r *Runner) Cases() []Case {
	var cases []Case
	for _, size := range r.params.Sizes {
		for _, regime := range r.params.Regimes {
			for rep := 0; rep < r.params.Repeat; rep++ {
				for _, policy := range r.params.Policies {
					cases = append(cases, Case{Size: size, Regime: regime, Policy: policy, Repeat: rep})
				}
			}
		}
	}
	return cases
}

// Run runs every case and returns their results in Cases order. Failed
// cases carry their error in the result; Run itself fails only when the
// pool cannot be built or ctx is done.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	cases := r.Cases()
	results := make([]Result, len(cases))

	pool, err := ants.NewPool(r.params.Workers)
	if err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	defer pool.Release()

	if interval := r.params.StatsInterval.Duration; interval > 0 {
		var registry stats.Registry
		exporter := perfcounter.NewCounterLogExporter(r.counters)
		registry.Register("sortbench "+r.ID(), stats.WithLogExporter(&exporter))
		w := metric.NewStatsLogWriter(&registry, interval)
		w.Start(ctx)
		defer func() {
			if ch, ok := w.Stop(true); ok {
				<-ch
			}
		}()
	}

	logutil.Info("sort benchmark started",
		zap.String("run-id", r.ID()),
		zap.Int("cases", len(cases)),
		zap.Int("workers", r.params.Workers))

	var wg sync.WaitGroup
	for i := range cases {
		i := i
		if err := ctx.Err(); err != nil {
			results[i] = Result{Case: cases[i], Err: err}
			continue
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = r.runCase(ctx, cases[i])
		})
		if err != nil {
			wg.Done()
			results[i] = Result{Case: cases[i], Err: moerr.ConvertGoError(ctx, err)}
		}
	}
	wg.Wait()
	return results, ctx.Err()
}

// caseSeed ignores the policy so that every policy sorts the same input.
func (r *Runner) caseSeed(c Case) uint64 {
	return r.params.Seed ^ xxhash.Sum64String(fmt.Sprintf("%d/%s/%d", c.Size, c.Regime, c.Repeat))
}

func (r *Runner) runCase(ctx context.Context, c Case) (res Result) {
	res.Case = c
	defer func() {
		if e := recover(); e != nil {
			res.Err = moerr.ConvertPanicError(ctx, e)
			logutil.Error("sort case panicked",
				zap.String("run-id", r.ID()),
				zap.Stringer("case", c),
				zap.Error(res.Err))
		}
	}()

	policy, err := runmerge.PolicyByName(c.Policy)
	if err != nil {
		res.Err = err
		return
	}
	keys, err := generateInput(rand.New(rand.NewSource(r.caseSeed(c))), c.Regime, c.Size)
	if err != nil {
		res.Err = err
		return
	}
	if r.params.Verify {
		res.Distinct = DistinctKeys(keys)
	}

	cs := new(perfcounter.CounterSet)
	ctx = perfcounter.WithCounterSet(ctx, cs, r.counters)
	observe := runmerge.WithObserver(perfcounter.ObserverFromContext(ctx))

	var before, after []Tagged
	if r.params.Indirect {
		os := rowsort.Selection(len(keys))
		start := time.Now()
		res.Stats = rowsort.Sort(false, policy, keys, os, observe)
		res.Duration = time.Since(start)
		if r.params.Verify {
			before, after = Tag(keys), FromSelection(keys, os)
		}
	} else {
		after = Tag(keys)
		if r.params.Verify {
			before = append([]Tagged(nil), after...)
		}
		s := runmerge.New(CompareTagged, policy, observe)
		start := time.Now()
		s.Sort(after)
		res.Duration = time.Since(start)
		res.Stats = s.Stats()
	}

	perfcounter.Update(ctx, func(set *perfcounter.CounterSet) {
		set.AddSortResult(res.Stats.Runs, res.Stats.Merges, res.Stats.GallopModes, res.Stats.ScratchElems)
	})
	res.Compares = cs.Sort.Compare.Load()
	res.Moves = cs.Sort.Write.Load() + cs.Sort.Copy.Elements.Load() + 2*cs.Sort.Swap.Load()
	metric.ObserveSort(c.Policy, c.Regime, res.Duration)
	metric.ObserveCounters(cs)

	if r.params.Verify {
		res.Err = Verify(before, after)
	}
	if res.Err != nil || logutil.DebugEnabled() {
		fields := []zap.Field{
			zap.String("run-id", r.ID()),
			zap.Stringer("case", c),
			zap.Duration("duration", res.Duration),
			zap.Int64("compares", res.Compares),
			zap.Int("runs", res.Stats.Runs),
			zap.Int("merges", res.Stats.Merges),
		}
		if res.Err != nil {
			logutil.Error("sort case failed", append(fields, zap.Error(res.Err))...)
		} else {
			logutil.Debug("sort case done", fields...)
		}
	}
	return
}

// Errors combines the errors of every failed result.
func Errors(results []Result) error {
	var err error
	for _, res := range results {
		if res.Err != nil {
			err = multierr.Append(err, res.Err)
		}
	}
	return err
}

// Summary aggregates the repeats of one (size, regime, policy) group.
type Summary struct {
	Size   int
	Regime string
	Policy string
	Cases  int
	Failed int

	Mean time.Duration
	P50  time.Duration
	P90  time.Duration
	Max  time.Duration

	MeanCompares float64
	MeanMoves    float64
	MeanMerges   float64
}

// Summarize groups results in order of first appearance.
func Summarize(results []Result) []Summary {
	type group struct {
		Summary
		durations []float64
		compares  []float64
		moves     []float64
		merges    []float64
	}
	type key struct {
		size           int
		regime, policy string
	}
	index := make(map[key]*group)
	var order []*group
	for _, res := range results {
		k := key{res.Size, res.Regime, res.Policy}
		g, ok := index[k]
		if !ok {
			g = &group{Summary: Summary{Size: res.Size, Regime: res.Regime, Policy: res.Policy}}
			index[k] = g
			order = append(order, g)
		}
		g.Cases++
		if res.Err != nil {
			g.Failed++
			continue
		}
		g.durations = append(g.durations, res.Duration.Seconds())
		g.compares = append(g.compares, float64(res.Compares))
		g.moves = append(g.moves, float64(res.Moves))
		g.merges = append(g.merges, float64(res.Stats.Merges))
	}

	out := make([]Summary, 0, len(order))
	for _, g := range order {
		if len(g.durations) > 0 {
			// stat.Quantile wants sorted input
			timsort.Sort(g.durations)
			g.Mean = seconds(stat.Mean(g.durations, nil))
			g.P50 = seconds(stat.Quantile(0.5, stat.Empirical, g.durations, nil))
			g.P90 = seconds(stat.Quantile(0.9, stat.Empirical, g.durations, nil))
			g.Max = seconds(g.durations[len(g.durations)-1])
			g.MeanCompares = stat.Mean(g.compares, nil)
			g.MeanMoves = stat.Mean(g.moves, nil)
			g.MeanMerges = stat.Mean(g.merges, nil)
		}
		out = append(out, g.Summary)
	}
	return out
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
