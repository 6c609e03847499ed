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

// Package bench generates inputs for the run merge sorts, runs them under
// every configured policy and checks the results.
package bench

import (
	"github.com/matrixorigin/runsort/pkg/sort/access"
)

// Tagged is a key carrying its position in the generated input, so that
// stability can be checked after sorting.
type Tagged struct {
	Key   int64
	Index int
}

// CompareTagged orders by key only.
func CompareTagged(a, b Tagged) int {
	return access.Compare(a.Key, b.Key)
}

// Tag pairs every key with its index.
func Tag(keys []int64) []Tagged {
	out := make([]Tagged, len(keys))
	for i, k := range keys {
		out[i] = Tagged{Key: k, Index: i}
	}
	return out
}
