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
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	configGatherInterval int64 = envOrDefaultInt[int64]("RUNSORT_METRIC_GATHER_INTERVAL", 15000) // 15s
)

func envOrDefaultInt[T int32 | int64](key string, defaultValue T) T {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	var size int
	switch any(defaultValue).(type) {
	case int32:
		size = 32
	case int64:
		size = 64
	}
	i, err := strconv.ParseInt(val, 10, size)
	if err != nil {
		return defaultValue
	}
	return T(i)
}

func getGatherInterval() time.Duration {
	return time.Duration(atomic.LoadInt64(&configGatherInterval)) * time.Millisecond
}

// SetGatherInterval changes the stats log interval and returns the old one.
func SetGatherInterval(new time.Duration) time.Duration {
	return time.Duration(atomic.SwapInt64(&configGatherInterval, int64(new/time.Millisecond))) * time.Millisecond
}
