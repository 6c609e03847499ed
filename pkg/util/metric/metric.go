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

// Package metric exposes sort activity as Prometheus collectors and
// periodically writes registered stats families to the log.
package metric

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matrixorigin/runsort/pkg/perfcounter"
)

var (
	sortCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "runsort",
			Subsystem: "sort",
			Name:      "total",
			Help:      "Total number of completed sort invocations.",
		}, []string{"policy"})

	sortDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "runsort",
			Subsystem: "sort",
			Name:      "duration_seconds",
			Help:      "Bucketed histogram of sort invocation duration.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2.0, 20),
		}, []string{"policy", "regime"})

	elementOpsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "runsort",
			Name:      "element_ops_total",
			Help:      "Total number of element operations performed while sorting.",
		}, []string{"op"})

	ElementCompareCounter = elementOpsCounter.WithLabelValues("compare")
	ElementReadCounter    = elementOpsCounter.WithLabelValues("read")
	ElementWriteCounter   = elementOpsCounter.WithLabelValues("write")
	ElementSwapCounter    = elementOpsCounter.WithLabelValues("swap")
	ElementCopyCounter    = elementOpsCounter.WithLabelValues("copy")

	mergeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "runsort",
			Subsystem: "merge",
			Name:      "total",
			Help:      "Total number of run merges and galloping mode entries.",
		}, []string{"type"})

	MergeRunCounter    = mergeCounter.WithLabelValues("merge")
	MergeGallopCounter = mergeCounter.WithLabelValues("gallop")
)

var registered atomic.Bool

// Register adds every sort collector to reg. Only the first call has an
// effect.
func Register(reg prometheus.Registerer) {
	if !registered.CompareAndSwap(false, true) {
		return
	}
	reg.MustRegister(sortCounter)
	reg.MustRegister(sortDurationHistogram)
	reg.MustRegister(elementOpsCounter)
	reg.MustRegister(mergeCounter)
}

// ObserveSort records one finished sort invocation.
func ObserveSort(policy, regime string, d time.Duration) {
	sortCounter.WithLabelValues(policy).Inc()
	sortDurationHistogram.WithLabelValues(policy, regime).Observe(d.Seconds())
}

// ObserveCounters adds the element and merge counts of cs.
func ObserveCounters(cs *perfcounter.CounterSet) {
	s := &cs.Sort
	ElementCompareCounter.Add(float64(s.Compare.Load()))
	ElementReadCounter.Add(float64(s.Read.Load()))
	ElementWriteCounter.Add(float64(s.Write.Load()))
	ElementSwapCounter.Add(float64(s.Swap.Load()))
	ElementCopyCounter.Add(float64(s.Copy.Elements.Load()))
	MergeRunCounter.Add(float64(s.Merges.Load()))
	MergeGallopCounter.Add(float64(s.Gallops.Load()))
}
