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
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/matrixorigin/runsort/pkg/util/metric/stats"
)

type CounterLogExporter struct {
	counter *CounterSet
}

func NewCounterLogExporter(counter *CounterSet) stats.LogExporter {
	return &CounterLogExporter{
		counter: counter,
	}
}

// Export reports every counter and resets it, so each export covers the
// interval since the previous one.
func (c *CounterLogExporter) Export() []zap.Field {
	var fields []zap.Field

	sorts := c.counter.Sort.Sorts.Load()
	if sorts > 0 {
		fields = append(fields, zap.Any("Sort Merges Per Sort",
			float64(c.counter.Sort.Merges.Load())/float64(sorts)))
	}
	if merges := c.counter.Sort.Merges.Load(); merges > 0 {
		fields = append(fields, zap.Any("Sort Gallops Per Merge",
			float64(c.counter.Sort.Gallops.Load())/float64(merges)))
	}

	// all fields in CounterSet
	_ = c.counter.IterFields(func(path []string, counter *atomic.Int64) error {
		fields = append(fields, zap.Any(strings.Join(path, "."), counter.Swap(0)))
		return nil
	})

	return fields
}
