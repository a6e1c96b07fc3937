package mem

import "unsafe"

// heapAlign is the alignment the runtime guarantees for byte slices large
// enough to matter here.
const heapAlign = 8

// System is the platform allocator: it delegates to the runtime heap. It is
// a zero-size type, so every instance is interchangeable.
//
// The runtime aborts the process on true heap exhaustion, which means System
// never observes an allocation failure itself; the error return is the
// capability's contract and is exercised by allocators layered on top of it
// (see arena.Arena's allocation limit).
type System struct{}

var _ ExtendedAllocator = System{}

// Alloc obtains layout.Size bytes from the heap, over-allocating and slicing
// when layout.Align exceeds the runtime's natural alignment.
func (System) Alloc(layout Layout) ([]byte, error) {
	if layout.Size == 0 {
		return nil, nil
	}
	if layout.Align <= heapAlign {
		return make([]byte, layout.Size), nil
	}
	raw := make([]byte, layout.Size+layout.Align)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := (layout.Align - base%layout.Align) % layout.Align
	return raw[off : off+layout.Size : off+layout.Size], nil
}

// AllocZeroed is identical to Alloc: heap memory arrives zeroed.
func (s System) AllocZeroed(layout Layout) ([]byte, error) {
	return s.Alloc(layout)
}

// Realloc allocates at the new layout (honoring its alignment, unlike a
// plain realloc would) and copies the surviving prefix.
func (s System) Realloc(old []byte, oldLayout, newLayout Layout) ([]byte, error) {
	b, err := s.Alloc(newLayout)
	if err != nil {
		return nil, err
	}
	n := oldLayout.Size
	if newLayout.Size < n {
		n = newLayout.Size
	}
	copy(b, old[:n])
	return b, nil
}

// Release is a no-op: the garbage collector reclaims heap memory once the
// last reference drops. Safe to call with a nil slice.
func (System) Release(b []byte, layout Layout) {}

// Reset is a no-op; the heap tracks no per-instance state.
func (System) Reset() {}

// SetLimit is a no-op; the heap enforces no per-instance budget.
func (System) SetLimit(limit uintptr) {}

// Allocated reports zero; the heap tracks no per-instance aggregate.
func (System) Allocated() uintptr { return 0 }
