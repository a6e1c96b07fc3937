// Package mem defines the allocator capability the rest of the module is
// parameterized over: the Layout value type describing a memory request, the
// Allocator interface every concrete allocator satisfies, and the System
// allocator backed by the runtime heap.
package mem

import (
	"unsafe"

	"github.com/foundrylib/foundry/diag"
)

// Layout describes a memory request: a size in bytes and a required
// alignment. Align must be a power of two.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout builds a Layout from a size and an alignment. A non-power-of-two
// alignment is a contract violation and is fatal.
func NewLayout(size, align uintptr) Layout {
	diag.Assertf(IsPowerOfTwo(align), "mem: layout alignment %d is not a power of two", align)
	return Layout{Size: size, Align: align}
}

// LayoutOf returns the layout of a single value of type T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: unsafe.Alignof(zero)}
}

// LayoutOfArray returns the layout of a contiguous array of n values of
// type T. n must not be negative.
func LayoutOfArray[T any](n int) Layout {
	diag.Assertf(n >= 0, "mem: negative array length %d", n)
	var zero T
	return Layout{Size: unsafe.Sizeof(zero) * uintptr(n), Align: unsafe.Alignof(zero)}
}

// IsPowerOfTwo reports whether n is a power of two. Zero is not.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}
