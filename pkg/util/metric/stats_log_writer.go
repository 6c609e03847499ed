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

package metric

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matrixorigin/runsort/pkg/logutil"
	"github.com/matrixorigin/runsort/pkg/util/metric/stats"
)

// StatsLogWriter writes the families of a stats registry to the log every
// gather interval.
type StatsLogWriter struct {
	isRunning int32
	cancel    context.CancelFunc
	stopWg    sync.WaitGroup

	registry       *stats.Registry
	gatherInterval time.Duration
}

// NewStatsLogWriter returns a writer for registry. A zero interval uses
// the configured gather interval.
func NewStatsLogWriter(registry *stats.Registry, gatherInterval time.Duration) *StatsLogWriter {
	if gatherInterval <= 0 {
		gatherInterval = getGatherInterval()
	}
	return &StatsLogWriter{
		registry:       registry,
		gatherInterval: gatherInterval,
	}
}

func (e *StatsLogWriter) Start(inputCtx context.Context) bool {
	if atomic.SwapInt32(&e.isRunning, 1) == 1 {
		return false
	}
	ctx, cancel := context.WithCancel(inputCtx)
	e.cancel = cancel
	e.stopWg.Add(1)
	go func() {
		defer e.stopWg.Done()
		ticker := time.NewTicker(e.gatherInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.gatherAndWrite()
			case <-ctx.Done():
				return
			}
		}
	}()
	return true
}

// Stop stops the writer. With graceful set, one last gather is written
// once the loop has exited.
func (e *StatsLogWriter) Stop(graceful bool) (<-chan struct{}, bool) {
	if atomic.SwapInt32(&e.isRunning, 0) == 0 {
		return nil, false
	}
	e.cancel()
	stopCh := make(chan struct{})
	go func() {
		e.stopWg.Wait()
		if graceful {
			e.gatherAndWrite()
		}
		close(stopCh)
	}()
	return stopCh, true
}

func (e *StatsLogWriter) gatherAndWrite() {
	statsFamilies := e.registry.ExportLog()
	for statsFName, fields := range statsFamilies {
		logutil.Info(statsFName+" stats window values", fields...)
	}
}
