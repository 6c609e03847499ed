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

// Seq binds a slice to its comparator and an optional observer. All
// element traffic of the run-merge engine goes through a Seq so that an
// observer sees exactly what the engine does.
type Seq[T any] struct {
	data    []T
	cmp     func(a, b T) int
	obs     Observer
	scratch bool
}

// NewSeq wraps data. obs may be nil.
func NewSeq[T any](data []T, cmp func(a, b T) int, obs Observer) *Seq[T] {
	return &Seq[T]{data: data, cmp: cmp, obs: obs}
}

// Scratch wraps buf as a scratch buffer sharing s's comparator and
// observer. Accesses to it are reported at ScratchLoc positions.
func (s *Seq[T]) Scratch(buf []T) *Seq[T] {
	return &Seq[T]{data: buf, cmp: s.cmp, obs: s.obs, scratch: true}
}

func (s *Seq[T]) Len() int {
	return len(s.data)
}

// Data exposes the underlying slice.
func (s *Seq[T]) Data() []T {
	return s.data
}

func (s *Seq[T]) Observer() Observer {
	return s.obs
}

func (s *Seq[T]) loc(i int) int {
	if s.scratch {
		return ScratchLoc(i)
	}
	return i
}

func (s *Seq[T]) Read(i int) T {
	if s.obs != nil {
		s.obs.Read(s.loc(i))
	}
	return s.data[i]
}

func (s *Seq[T]) Write(i int, v T) {
	if s.obs != nil {
		s.obs.Write(s.loc(i))
	}
	s.data[i] = v
}

func (s *Seq[T]) Swap(i, j int) {
	if s.obs != nil {
		s.obs.Swap(s.loc(i), s.loc(j))
	}
	s.data[i], s.data[j] = s.data[j], s.data[i]
}

// Less reports data[i] < data[j].
func (s *Seq[T]) Less(i, j int) bool {
	if s.obs != nil {
		s.obs.Compare(s.loc(i), s.loc(j))
	}
	return s.cmp(s.data[i], s.data[j]) < 0
}

// CompareKey compares a key previously read from keyLoc against data[i].
func (s *Seq[T]) CompareKey(key T, keyLoc int, i int) int {
	if s.obs != nil {
		s.obs.Compare(keyLoc, s.loc(i))
	}
	return s.cmp(key, s.data[i])
}

// Loc returns the observer location of index i.
func (s *Seq[T]) Loc(i int) int {
	return s.loc(i)
}

// Reverse reverses data[lo:hi] with swaps.
func (s *Seq[T]) Reverse(lo, hi int) {
	for hi--; lo < hi; lo, hi = lo+1, hi-1 {
		s.Swap(lo, hi)
	}
}

// Move copies count elements from src to dst within s. Ranges may overlap.
func (s *Seq[T]) Move(src, dst, count int) {
	if count <= 0 {
		return
	}
	if s.obs != nil {
		s.obs.CopyTo(s.loc(src), s.loc(dst), count)
	}
	copy(s.data[dst:dst+count], s.data[src:src+count])
}

// CopyFrom copies count elements of from, starting at src, into s at dst.
func (s *Seq[T]) CopyFrom(dst int, from *Seq[T], src, count int) {
	if count <= 0 {
		return
	}
	if s.obs != nil {
		s.obs.CopyTo(from.loc(src), s.loc(dst), count)
	}
	copy(s.data[dst:dst+count], from.data[src:src+count])
}

// LessThan reports s[i] < o[j]; s and o may be different buffers.
func (s *Seq[T]) LessThan(i int, o *Seq[T], j int) bool {
	if s.obs != nil {
		s.obs.Compare(s.loc(i), o.loc(j))
	}
	return s.cmp(s.data[i], o.data[j]) < 0
}
