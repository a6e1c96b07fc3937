package mem

import (
	"errors"

	"github.com/foundrylib/foundry/diag"
)

// ErrOutOfMemory reports that an allocator could not satisfy a request.
// It is always returned explicitly; no operation signals exhaustion through
// a nil slice treated as success, and no operation partially succeeds.
var ErrOutOfMemory = errors.New("mem: out of memory")

// Allocator is the capability a concrete allocator exhibits. Consumers hold
// the interface and describe requests with Layout values; ownership of every
// returned block stays with the allocator instance that produced it.
type Allocator interface {
	// Alloc returns at least layout.Size bytes aligned to layout.Align.
	// The contents are unspecified.
	Alloc(layout Layout) ([]byte, error)

	// AllocZeroed is Alloc with every returned byte set to zero.
	AllocZeroed(layout Layout) ([]byte, error)

	// Realloc returns memory holding the first min(oldLayout.Size,
	// newLayout.Size) bytes of old's content, aligned to newLayout.Align.
	// On failure the old block remains valid and owned by the caller.
	Realloc(old []byte, oldLayout, newLayout Layout) ([]byte, error)

	// Release returns a block to the allocator. Releasing memory that was
	// not obtained from this allocator instance, or with a mismatched
	// layout, is undefined. Release of a nil slice is a no-op.
	Release(b []byte, layout Layout)
}

// ExtendedAllocator adds the optional operations of the capability.
// Allocators with no aggregate state implement them as no-ops.
type ExtendedAllocator interface {
	Allocator

	// Reset bulk-invalidates every outstanding allocation.
	Reset()

	// SetLimit caps the total bytes the allocator may obtain from here on.
	SetLimit(limit uintptr)

	// Allocated reports the total bytes obtained so far.
	Allocated() uintptr
}

// Must unwraps an allocation result, escalating absence to a fatal
// diagnostic. The Allocator methods form the soft-fail tier and never abort
// themselves; call sites that cannot recover from exhaustion go through
// Must.
func Must(b []byte, err error) []byte {
	if err != nil {
		diag.Panicf("allocation failed: %v", err)
	}
	return b
}
