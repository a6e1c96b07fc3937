package arena

import (
	"unsafe"

	"github.com/foundrylib/foundry/mem"
)

// AllocBytes returns n bytes from the arena, aligned to the arena's minimum
// alignment. Returns nil if n <= 0. Allocation failure is fatal; use Alloc
// with a Layout for the soft-fail tier.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return mem.Must(a.Alloc(mem.Layout{Size: uintptr(n), Align: 1}))
}

// Alloc returns a pointer to a zeroed T stored inside the arena. The
// pointer is valid until the arena is Reset or Destroyed. Allocation
// failure is fatal.
//
// If T contains pointers, everything those pointers reference must stay
// reachable through memory the garbage collector scans; arena chunks are
// scanned as plain bytes.
func Alloc[T any](a *Arena) *T {
	b := mem.Must(a.AllocZeroed(mem.LayoutOf[T]()))
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// TryAlloc is Alloc returning mem.ErrOutOfMemory instead of aborting.
func TryAlloc[T any](a *Arena) (*T, error) {
	b, err := a.AllocZeroed(mem.LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not initialized. Returns nil if n <= 0; allocation
// failure is fatal. The pointer caveat on Alloc applies.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	b := mem.Must(a.Alloc(mem.LayoutOfArray[T](n)))
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// AllocSliceZeroed is AllocSlice with cleared elements.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	b := mem.Must(a.AllocZeroed(mem.LayoutOfArray[T](n)))
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
