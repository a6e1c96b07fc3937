// Package vec provides a growable array and a dynamic byte buffer whose
// storage comes from the allocator capability, so the same code can grow on
// the heap or inside an arena.
//
// Element storage is scanned by the garbage collector as plain bytes; the
// pointer-reachability caveat documented on package hashmap applies here
// too.
package vec

import (
	"unsafe"

	"github.com/foundrylib/foundry/diag"
	"github.com/foundrylib/foundry/mem"
)

// minCapacity is the smallest non-zero capacity growth lands on.
const minCapacity = 8

// Vector is a growable array of T. The zero value is unusable; construct
// with New.
type Vector[T any] struct {
	raw   []byte // storage exactly as obtained from the allocator
	data  []T
	len   int
	cap   int
	alloc mem.Allocator
}

// New returns an empty vector backed by alloc. No memory is obtained until
// the first push or reserve.
func New[T any](alloc mem.Allocator) *Vector[T] {
	return &Vector[T]{alloc: alloc}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.len }

// Cap returns the current capacity.
func (v *Vector[T]) Cap() int { return v.cap }

// Reserve ensures capacity for at least n total elements. Growth failure is
// fatal, matching the amortized-growth contract: a vector that cannot grow
// cannot keep its invariants.
func (v *Vector[T]) Reserve(n int) {
	if n <= v.cap {
		return
	}
	v.reserveTo(n)
}

func (v *Vector[T]) reserveTo(newCap int) {
	raw := mem.Must(v.alloc.Realloc(v.raw,
		mem.LayoutOfArray[T](v.cap),
		mem.LayoutOfArray[T](newCap)))
	v.raw = raw
	v.data = unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw))), newCap)
	v.cap = newCap
}

// grown returns the doubled capacity, floored at minCapacity and clamped up
// to need.
func (v *Vector[T]) grown(need int) int {
	newCap := v.cap * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}
	if newCap < need {
		newCap = need
	}
	return newCap
}

// Push appends x, doubling capacity when full.
func (v *Vector[T]) Push(x T) {
	if v.len == v.cap {
		v.reserveTo(v.grown(v.len + 1))
	}
	v.data[v.len] = x
	v.len++
}

// Pop removes and returns the last element, or the zero value and false
// when the vector is empty.
func (v *Vector[T]) Pop() (T, bool) {
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.len--
	x := v.data[v.len]
	v.data[v.len] = zero
	return x, true
}

// Get returns the element at index i. Out-of-range access is fatal.
func (v *Vector[T]) Get(i int) T {
	diag.Assertf(i >= 0 && i < v.len, "vec: index %d out of range [0,%d)", i, v.len)
	return v.data[i]
}

// Set stores x at index i. Out-of-range access is fatal.
func (v *Vector[T]) Set(i int, x T) {
	diag.Assertf(i >= 0 && i < v.len, "vec: index %d out of range [0,%d)", i, v.len)
	v.data[i] = x
}

// Slice returns a view over the live elements. The view is invalidated by
// the next growth.
func (v *Vector[T]) Slice() []T {
	return v.data[:v.len]
}

// Truncate drops elements from the tail until len(v) == n.
func (v *Vector[T]) Truncate(n int) {
	diag.Assertf(n >= 0 && n <= v.len, "vec: truncate length %d out of range [0,%d]", n, v.len)
	var zero T
	for i := n; i < v.len; i++ {
		v.data[i] = zero
	}
	v.len = n
}

// Free releases the storage through the backing allocator. The vector is
// empty and reusable afterwards.
func (v *Vector[T]) Free() {
	if v.raw != nil {
		v.alloc.Release(v.raw, mem.LayoutOfArray[T](v.cap))
	}
	v.raw, v.data = nil, nil
	v.len, v.cap = 0, 0
}
