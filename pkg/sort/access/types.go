// Copyright 2021 Matrix Origin
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

package access

//go:generate mockgen -source=types.go -destination=mock_access/mock_observer.go

import "golang.org/x/exp/constraints"

// Observer is told about every element access a sort performs. It is used
// for statistics and visualization only and must not touch the sequence.
//
// Positions are locations: non-negative values index the sequence being
// sorted, negative values index the scratch buffer (see ScratchLoc).
type Observer interface {
	Compare(i, j int)
	Read(i int)
	Write(i int)
	Swap(i, j int)
	// CopyTo reports a bulk move of count elements from src to dst.
	CopyTo(src, dst, count int)
}

// ScratchLoc encodes index i of the scratch buffer as an observer location.
func ScratchLoc(i int) int {
	return -1 - i
}

// IsScratch reports whether loc addresses the scratch buffer.
func IsScratch(loc int) bool {
	return loc < 0
}

// ScratchIndex decodes a scratch location back into a buffer index.
func ScratchIndex(loc int) int {
	return -1 - loc
}

// Compare is the natural ordering of T. NaNs order before every other
// value and equal to each other, so float inputs still form a total order.
func Compare[T constraints.Ordered](a, b T) int {
	aNaN := isNaN(a)
	bNaN := isNaN(b)
	if aNaN {
		if bNaN {
			return 0
		}
		return -1
	}
	if bNaN {
		return 1
	}
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func isNaN[T constraints.Ordered](x T) bool {
	return x != x
}
