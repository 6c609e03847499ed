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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/runsort/pkg/perfcounter"
)

func TestMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)
	// registering twice is harmless
	Register(reg)

	before := testutil.ToFloat64(sortCounter.WithLabelValues("power"))
	ObserveSort("power", "random", 3*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(sortCounter.WithLabelValues("power")))

	var cs perfcounter.CounterSet
	cs.Sort.Compare.Add(10)
	cs.Sort.Copy.Elements.Add(7)
	cs.AddSortResult(3, 2, 1, 16)
	compares := testutil.ToFloat64(ElementCompareCounter)
	gallops := testutil.ToFloat64(MergeGallopCounter)
	ObserveCounters(&cs)
	require.Equal(t, compares+10, testutil.ToFloat64(ElementCompareCounter))
	require.Equal(t, gallops+1, testutil.ToFloat64(MergeGallopCounter))

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()
	r, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer r.Body.Close()
	require.Equal(t, http.StatusOK, r.StatusCode)
	content, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.Contains(t, string(content), "runsort_sort_total")
	require.Contains(t, string(content), "runsort_sort_duration_seconds")
	require.Contains(t, string(content), "runsort_element_ops_total")
}

func TestEnvOrDefaultInt(t *testing.T) {
	t.Setenv("RUNSORT_TEST_INTERVAL", "250")
	require.Equal(t, int64(250), envOrDefaultInt[int64]("RUNSORT_TEST_INTERVAL", 1))
	require.Equal(t, int32(250), envOrDefaultInt[int32]("RUNSORT_TEST_INTERVAL", 1))
	t.Setenv("RUNSORT_TEST_INTERVAL", "soon")
	require.Equal(t, int64(1), envOrDefaultInt[int64]("RUNSORT_TEST_INTERVAL", 1))
	require.Equal(t, int64(7), envOrDefaultInt[int64]("RUNSORT_TEST_UNSET", 7))

	old := SetGatherInterval(time.Second)
	defer SetGatherInterval(old)
	require.Equal(t, time.Second, getGatherInterval())
}
