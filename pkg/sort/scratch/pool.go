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

// Package scratch lends the temporary buffers used while merging runs.
package scratch

import (
	"math/bits"
	"reflect"
	"sync"
	"sync/atomic"
)

// maxPooledClass is the largest size class kept for reuse: 1<<20 elements.
// Larger buffers are allocated per borrow and dropped on return.
const maxPooledClass = 20

// Pool hands out []T buffers bucketed by power-of-two capacity.
// It is safe for concurrent use; a borrowed buffer is owned exclusively
// by the borrower until returned.
type Pool[T any] struct {
	classes [maxPooledClass + 1]sync.Pool

	// outstanding counts buffers borrowed and not yet returned.
	outstanding atomic.Int64
	borrowed    atomic.Int64
}

// NewPool returns an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

var pools sync.Map // reflect.Type -> *Pool[T]

// For returns the process wide pool for T.
func For[T any]() *Pool[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if p, ok := pools.Load(key); ok {
		return p.(*Pool[T])
	}
	p, _ := pools.LoadOrStore(key, NewPool[T]())
	return p.(*Pool[T])
}

func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Borrow returns a buffer of length n. The caller must Return it.
func (p *Pool[T]) Borrow(n int) []T {
	p.outstanding.Add(1)
	p.borrowed.Add(1)
	class := sizeClass(n)
	if class > maxPooledClass {
		return make([]T, n)
	}
	if v := p.classes[class].Get(); v != nil {
		buf := *(v.(*[]T))
		return buf[:n]
	}
	return make([]T, n, 1<<class)
}

// Return gives buf back to the pool. buf is cleared so the pool does not
// keep elements reachable.
func (p *Pool[T]) Return(buf []T) {
	if p.outstanding.Add(-1) < 0 {
		panic("scratch buffer returned twice")
	}
	c := cap(buf)
	if c == 0 || c&(c-1) != 0 {
		return
	}
	class := sizeClass(c)
	if class > maxPooledClass {
		return
	}
	buf = buf[:c]
	clear(buf)
	p.classes[class].Put(&buf)
}

// Outstanding is the number of buffers currently lent out.
func (p *Pool[T]) Outstanding() int64 {
	return p.outstanding.Load()
}

// Borrowed is the total number of Borrow calls.
func (p *Pool[T]) Borrowed() int64 {
	return p.borrowed.Load()
}
