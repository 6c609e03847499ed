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

// Package datagen generates integer keys for the benchmarked input
// regimes. It depends on no sorting package so that the sorts can test
// against the same inputs the benchmark uses.
package datagen

import (
	"golang.org/x/exp/rand"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
)

// Input regimes.
const (
	RegimeRandom           = "random"
	RegimeSorted           = "sorted"
	RegimeReversed         = "reversed"
	RegimeNatural          = "natural"
	RegimeFewUnique        = "fewunique"
	RegimeSawtooth         = "sawtooth"
	RegimePipeOrgan        = "pipeorgan"
	RegimePowerAdversarial = "poweradversarial"
)

// Regimes lists every supported regime.
func Regimes() []string {
	return []string{
		RegimeRandom,
		RegimeSorted,
		RegimeReversed,
		RegimeNatural,
		RegimeFewUnique,
		RegimeSawtooth,
		RegimePipeOrgan,
		RegimePowerAdversarial,
	}
}

const (
	fewUniqueKeys = 8
	sawtoothTeeth = 16
	maxNaturalRun = 256
	// runs shorter than this are grown by insertion and stop mattering
	minAdversarialRun = 32
)

// Generate returns n keys of the given regime drawn from r.
func Generate(r *rand.Rand, regime string, n int) ([]int64, error) {
	keys := make([]int64, n)
	switch regime {
	case RegimeRandom:
		for i := range keys {
			keys[i] = r.Int63()
		}
	case RegimeSorted:
		for i := range keys {
			keys[i] = int64(i)
		}
	case RegimeReversed:
		for i := range keys {
			keys[i] = int64(n - i)
		}
	case RegimeNatural:
		for i := 0; i < n; {
			runLen := 1 + r.Intn(maxNaturalRun)
			if runLen > n-i {
				runLen = n - i
			}
			fillRun(r, keys[i:i+runLen], r.Intn(2) == 0)
			i += runLen
		}
	case RegimeFewUnique:
		for i := range keys {
			keys[i] = r.Int63n(fewUniqueKeys)
		}
	case RegimeSawtooth:
		tooth := n/sawtoothTeeth + 1
		for i := range keys {
			keys[i] = int64(i % tooth)
		}
	case RegimePipeOrgan:
		for i := range keys {
			if i < n/2 {
				keys[i] = int64(i)
			} else {
				keys[i] = int64(n - i)
			}
		}
	case RegimePowerAdversarial:
		desc := false
		off := 0
		for _, l := range adversarialRunLengths(r, n) {
			fillRun(r, keys[off:off+l], desc)
			off += l
			desc = !desc
		}
	default:
		return nil, moerr.NewInvalidArg(moerr.Context(), "regime", regime)
	}
	return keys, nil
}

// fillRun writes a monotonic run to dst: non-decreasing, or strictly
// decreasing when desc is set.
func fillRun(r *rand.Rand, dst []int64, desc bool) {
	v := r.Int63n(1 << 40)
	for i := range dst {
		dst[i] = v
		if desc {
			v -= 1 + r.Int63n(3)
		} else {
			v += r.Int63n(3)
		}
	}
}

// adversarialRunLengths cuts n into runs by recursive lopsided splits,
// stopping early at random, so that run lengths spread over several
// orders of magnitude and short runs sit next to very long ones.
func adversarialRunLengths(r *rand.Rand, n int) []int {
	var lens []int
	var split func(n int)
	split = func(n int) {
		if n < 2*minAdversarialRun || r.Intn(4) == 0 {
			if n > 0 {
				lens = append(lens, n)
			}
			return
		}
		small := n/8 + r.Intn(n/3-n/8+1)
		if r.Intn(2) == 0 {
			split(small)
			split(n - small)
		} else {
			split(n - small)
			split(small)
		}
	}
	split(n)
	return lens
}
