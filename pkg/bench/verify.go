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
	"encoding/binary"
	"math"

	"github.com/RoaringBitmap/roaring"
	"github.com/axiomhq/hyperloglog"
	"go.uber.org/multierr"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
)

// Verify checks that after is before sorted by key, keeping equal keys in
// their original order. Every kind of problem is reported once.
func Verify(before, after []Tagged) error {
	ctx := moerr.Context()
	if len(before) != len(after) {
		return moerr.NewNotPermutation(ctx, "length %d, want %d", len(after), len(before))
	}
	if uint64(len(after)) > math.MaxUint32 {
		return moerr.NewNotSupported(ctx, "verifying %d elements", len(after))
	}

	var err error
	seen := roaring.New()
	sorted, stable, perm := true, true, true
	for i, t := range after {
		if perm {
			switch {
			case t.Index < 0 || t.Index >= len(before):
				err = multierr.Append(err, moerr.NewNotPermutation(ctx, "index %d out of range", t.Index))
				perm = false
			case !seen.CheckedAdd(uint32(t.Index)):
				err = multierr.Append(err, moerr.NewNotPermutation(ctx, "index %d emitted twice", t.Index))
				perm = false
			case before[t.Index].Key != t.Key:
				err = multierr.Append(err, moerr.NewNotPermutation(ctx, "key at index %d changed", t.Index))
				perm = false
			}
		}
		if i == 0 {
			continue
		}
		prev := after[i-1]
		if sorted && t.Key < prev.Key {
			err = multierr.Append(err, moerr.NewNotSorted(ctx, i, i-1))
			sorted = false
		}
		if stable && t.Key == prev.Key && t.Index < prev.Index {
			err = multierr.Append(err, moerr.NewNotStable(ctx, t.Index, prev.Index))
			stable = false
		}
	}
	if perm && seen.GetCardinality() != uint64(len(before)) {
		err = multierr.Append(err, moerr.NewNotPermutation(ctx, "%d distinct indexes, want %d",
			seen.GetCardinality(), len(before)))
	}
	return err
}

// FromSelection reads keys through the row selection os.
func FromSelection(keys []int64, os []int64) []Tagged {
	out := make([]Tagged, len(os))
	for i, o := range os {
		out[i] = Tagged{Key: keys[o], Index: int(o)}
	}
	return out
}

// DistinctKeys estimates the number of distinct keys.
func DistinctKeys(keys []int64) uint64 {
	sk := hyperloglog.New()
	var buf [8]byte
	for _, k := range keys {
		binary.LittleEndian.PutUint64(buf[:], uint64(k))
		sk.Insert(buf[:])
	}
	return sk.Estimate()
}
