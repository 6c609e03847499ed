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

package runmerge

import (
	"github.com/matrixorigin/runsort/pkg/common/moerr"
)

// mergeState is the adaptive state shared by every merge of one sort
// invocation.
type mergeState struct {
	// minGallop is the number of consecutive wins that switches a merge
	// into galloping mode. Galloping that pays off lowers it, galloping
	// that does not raises it.
	minGallop int
}

func (ms *mergeState) reset() {
	ms.minGallop = MinGallop
}

func contractViolation() *moerr.Error {
	return moerr.NewInternalError(moerr.Context(), "comparator does not define a total order")
}

// mergeAt merges the stack entries i and i+1. i is size-2 or size-3.
func (s *Sorter[T]) mergeAt(i int) {
	r1, r2 := s.stack.collapseAt(i)
	s.stats.Merges++
	s.mergeRuns(r1.Base, r1.Len, r2.Base, r2.Len)
}

// mergeRuns merges the adjacent sorted runs [base1, base1+len1) and
// [base2, base2+len2) in place. Ties take the element of the first run.
func (s *Sorter[T]) mergeRuns(base1, len1, base2, len2 int) {
	a := s.seq
	if len1 == 0 || len2 == 0 {
		return
	}

	// Elements of run1 not greater than run2[0] are already in place.
	k := searchRight(a.Read(base2), a.Loc(base2), a, base1, len1)
	base1 += k
	len1 -= k
	if len1 == 0 {
		return
	}

	// Elements of run2 not less than run1[last] are already in place.
	last1 := base1 + len1 - 1
	len2 = searchLeft(a.Read(last1), a.Loc(last1), a, base2, len2)
	if len2 == 0 {
		return
	}

	if len1 <= len2 {
		s.mergeLo(base1, len1, base2, len2)
	} else {
		s.mergeHi(base1, len1, base2, len2)
	}
}

// mergeLo merges two adjacent runs left to right with run1 copied to
// scratch. It requires len1 <= len2, a[base1] > a[base2] and
// a[base1+len1-1] > every element of run2.
func (s *Sorter[T]) mergeLo(base1, len1, base2, len2 int) {
	a := s.seq
	buf := s.pool.Borrow(len1)
	defer s.pool.Return(buf)
	s.stats.ScratchElems += int64(len1)

	tmp := a.Scratch(buf)
	tmp.CopyFrom(0, a, base1, len1)

	cursor1 := 0     // into tmp
	cursor2 := base2 // into a
	dest := base1    // into a

	a.Write(dest, a.Read(cursor2))
	dest++
	cursor2++
	len2--
	if len2 == 0 {
		a.CopyFrom(dest, tmp, cursor1, len1)
		return
	}
	if len1 == 1 {
		a.Move(cursor2, dest, len2)
		a.Write(dest+len2, tmp.Read(cursor1))
		return
	}

	minGallop := s.state.minGallop
outer:
	for {
		count1 := 0 // consecutive wins of run1
		count2 := 0 // consecutive wins of run2

		// One pair at a time until one run starts winning consistently.
		for {
			if a.LessThan(cursor2, tmp, cursor1) {
				a.Write(dest, a.Read(cursor2))
				dest++
				cursor2++
				count2++
				count1 = 0
				len2--
				if len2 == 0 {
					break outer
				}
			} else {
				a.Write(dest, tmp.Read(cursor1))
				dest++
				cursor1++
				count1++
				count2 = 0
				len1--
				if len1 == 1 {
					break outer
				}
			}
			if (count1 | count2) >= minGallop {
				break
			}
		}

		// Gallop while it keeps paying off.
		s.stats.GallopModes++
		for {
			count1 = gallopRight(a.Read(cursor2), a.Loc(cursor2), tmp, cursor1, len1, 0)
			if count1 != 0 {
				a.CopyFrom(dest, tmp, cursor1, count1)
				dest += count1
				cursor1 += count1
				len1 -= count1
				if len1 <= 1 { // len1 == 1 || len1 == 0
					break outer
				}
			}
			a.Write(dest, a.Read(cursor2))
			dest++
			cursor2++
			len2--
			if len2 == 0 {
				break outer
			}

			count2 = gallopLeft(tmp.Read(cursor1), tmp.Loc(cursor1), a, cursor2, len2, 0)
			if count2 != 0 {
				a.Move(cursor2, dest, count2)
				dest += count2
				cursor2 += count2
				len2 -= count2
				if len2 == 0 {
					break outer
				}
			}
			a.Write(dest, tmp.Read(cursor1))
			dest++
			cursor1++
			len1--
			if len1 == 1 {
				break outer
			}
			minGallop--
			if count1 < MinGallop && count2 < MinGallop {
				break
			}
		}
		if minGallop < 0 {
			minGallop = 0
		}
		minGallop += 2 // penalty for leaving galloping mode
	}
	if minGallop < 1 {
		minGallop = 1
	}
	s.state.minGallop = minGallop

	switch {
	case len1 == 1:
		a.Move(cursor2, dest, len2)
		a.Write(dest+len2, tmp.Read(cursor1)) // last of run1 goes to the end
	case len1 == 0:
		panic(contractViolation())
	default:
		a.CopyFrom(dest, tmp, cursor1, len1)
	}
}

// mergeHi is mergeLo mirrored: run2 is copied to scratch and the merge
// runs right to left. It requires len1 >= len2, a[base1] > a[base2] and
// a[base1+len1-1] > every element of run2.
func (s *Sorter[T]) mergeHi(base1, len1, base2, len2 int) {
	a := s.seq
	buf := s.pool.Borrow(len2)
	defer s.pool.Return(buf)
	s.stats.ScratchElems += int64(len2)

	tmp := a.Scratch(buf)
	tmp.CopyFrom(0, a, base2, len2)

	cursor1 := base1 + len1 - 1 // into a
	cursor2 := len2 - 1         // into tmp
	dest := base2 + len2 - 1    // into a

	a.Write(dest, a.Read(cursor1))
	dest--
	cursor1--
	len1--
	if len1 == 0 {
		a.CopyFrom(dest-(len2-1), tmp, 0, len2)
		return
	}
	if len2 == 1 {
		dest -= len1
		cursor1 -= len1
		a.Move(cursor1+1, dest+1, len1)
		a.Write(dest, tmp.Read(cursor2))
		return
	}

	minGallop := s.state.minGallop
outer:
	for {
		count1 := 0 // consecutive wins of run1
		count2 := 0 // consecutive wins of run2

		for {
			if tmp.LessThan(cursor2, a, cursor1) {
				a.Write(dest, a.Read(cursor1))
				dest--
				cursor1--
				count1++
				count2 = 0
				len1--
				if len1 == 0 {
					break outer
				}
			} else {
				a.Write(dest, tmp.Read(cursor2))
				dest--
				cursor2--
				count2++
				count1 = 0
				len2--
				if len2 == 1 {
					break outer
				}
			}
			if (count1 | count2) >= minGallop {
				break
			}
		}

		s.stats.GallopModes++
		for {
			count1 = len1 - gallopRight(tmp.Read(cursor2), tmp.Loc(cursor2), a, base1, len1, len1-1)
			if count1 != 0 {
				dest -= count1
				cursor1 -= count1
				len1 -= count1
				a.Move(cursor1+1, dest+1, count1)
				if len1 == 0 {
					break outer
				}
			}
			a.Write(dest, tmp.Read(cursor2))
			dest--
			cursor2--
			len2--
			if len2 == 1 {
				break outer
			}

			count2 = len2 - gallopLeft(a.Read(cursor1), a.Loc(cursor1), tmp, 0, len2, len2-1)
			if count2 != 0 {
				dest -= count2
				cursor2 -= count2
				len2 -= count2
				a.CopyFrom(dest+1, tmp, cursor2+1, count2)
				if len2 <= 1 { // len2 == 1 || len2 == 0
					break outer
				}
			}
			a.Write(dest, a.Read(cursor1))
			dest--
			cursor1--
			len1--
			if len1 == 0 {
				break outer
			}
			minGallop--
			if count1 < MinGallop && count2 < MinGallop {
				break
			}
		}
		if minGallop < 0 {
			minGallop = 0
		}
		minGallop += 2 // penalty for leaving galloping mode
	}
	if minGallop < 1 {
		minGallop = 1
	}
	s.state.minGallop = minGallop

	switch {
	case len2 == 1:
		dest -= len1
		cursor1 -= len1
		a.Move(cursor1+1, dest+1, len1)
		a.Write(dest, tmp.Read(cursor2)) // first of run2 goes to the front
	case len2 == 0:
		panic(contractViolation())
	default:
		a.CopyFrom(dest-(len2-1), tmp, 0, len2)
	}
}
