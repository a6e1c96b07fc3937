package arena

import (
	"unsafe"

	"github.com/foundrylib/foundry/diag"
	"github.com/foundrylib/foundry/mem"
)

const (
	// DefaultChunkSize is the usable capacity of the first real chunk.
	DefaultChunkSize = 4096

	// chunkAlign is the minimum alignment chunk storage is requested at,
	// and the upper bound on an arena's minimum alignment.
	chunkAlign = 16

	noLimit = ^uintptr(0)
)

// chunk is one contiguous block obtained from the backing allocator. All
// fields except off are written once at creation and never mutated again;
// releasing a chunk rebuilds the exact Layout it was obtained with, so a
// corrupted size or alignment record here would corrupt the backing
// allocator.
type chunk struct {
	data  []byte // usable region, owned by the backing allocator
	align uintptr
	prev  *chunk // next-older chunk; the oldest points at the sentinel

	// off is the bump cursor as an offset into data. It starts at the end
	// of the usable region and decreases toward zero.
	off uintptr

	// allocatedBytes is the cumulative usable size of the chain up to and
	// including this chunk. Monotonically non-decreasing along prev links.
	allocatedBytes uintptr
}

// emptyChunk is the shared zero-capacity sentinel meaning "no chunks yet".
// It is never freed, and the oldest real chunk's prev points here.
var emptyChunk = func() *chunk {
	c := &chunk{}
	c.prev = c
	return c
}()

func (c *chunk) empty() bool     { return c == emptyChunk }
func (c *chunk) usable() uintptr { return uintptr(len(c.data)) }

func (c *chunk) base() uintptr {
	if len(c.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(c.data)))
}

// Arena is a chunked bump allocator. It consumes a backing allocator for
// chunk storage and implements mem.ExtendedAllocator itself, so arenas can
// in turn back hash tables, vectors and other allocator consumers.
//
// The zero value is not usable; construct arenas with New or NewMinAlign.
type Arena struct {
	current  *chunk
	limit    uintptr
	minAlign uintptr
	backing  mem.Allocator
}

var _ mem.ExtendedAllocator = (*Arena)(nil)

// New creates an arena with minimum alignment 1, obtaining chunks from
// backing. No memory is requested until the first allocation.
func New(backing mem.Allocator) *Arena {
	return NewMinAlign(backing, 1)
}

// NewMinAlign creates an arena whose bump cursor stays aligned to minAlign,
// which must be a power of two no larger than 16. Violating that is fatal.
func NewMinAlign(backing mem.Allocator, minAlign uintptr) *Arena {
	diag.Assertf(mem.IsPowerOfTwo(minAlign), "arena: min align %d is not a power of two", minAlign)
	diag.Assertf(minAlign <= chunkAlign, "arena: min align %d exceeds %d", minAlign, chunkAlign)
	return &Arena{
		current:  emptyChunk,
		limit:    noLimit,
		minAlign: minAlign,
		backing:  backing,
	}
}

// Alloc returns layout.Size bytes aligned to layout.Align, or
// mem.ErrOutOfMemory when the backing allocator fails, size arithmetic
// would overflow, or the allocation limit is exceeded. Zero-size requests
// consume no capacity, never fail, and may alias other allocations; their
// address is clamped to the chunk start, so an alignment larger than the
// remaining chunk prefix may not be honored.
func (a *Arena) Alloc(layout mem.Layout) ([]byte, error) {
	if !mem.IsPowerOfTwo(layout.Align) {
		layout.Align = 1
	}
	if layout.Size == 0 {
		return a.zeroSized(layout.Align), nil
	}
	if b := a.tryAllocFast(layout); b != nil {
		return b, nil
	}
	return a.allocSlow(layout)
}

// AllocZeroed is Alloc with the returned bytes cleared. Chunk memory is
// reused across Reset, so clearing is not optional here.
func (a *Arena) AllocZeroed(layout mem.Layout) ([]byte, error) {
	b, err := a.Alloc(layout)
	if err != nil {
		return nil, err
	}
	clear(b)
	return b, nil
}

// Realloc always performs a fresh allocation and copies the surviving
// prefix; arenas never free in place. The old block becomes unreachable
// garbage until Reset or Destroy. On failure the old block remains valid.
func (a *Arena) Realloc(old []byte, oldLayout, newLayout mem.Layout) ([]byte, error) {
	if old == nil {
		return a.Alloc(newLayout)
	}
	if newLayout.Size == 0 {
		align := newLayout.Align
		if !mem.IsPowerOfTwo(align) {
			align = 1
		}
		return a.zeroSized(align), nil
	}
	b, err := a.Alloc(newLayout)
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

// Release is a deliberate no-op: arenas reclaim only in bulk.
func (a *Arena) Release(b []byte, layout mem.Layout) {}

// Reset frees every chunk except the newest, rewinds that chunk's cursor to
// its end, and invalidates all outstanding allocations. Keeping one chunk
// warm avoids an immediate re-allocation on the next request.
func (a *Arena) Reset() {
	c := a.current
	if c.empty() {
		return
	}
	a.releaseChain(c.prev)
	c.prev = emptyChunk
	c.off = roundDown(c.base()+c.usable(), a.minAlign) - c.base()
	c.allocatedBytes = c.usable()
}

// Destroy frees the entire chunk chain and returns the arena to its empty
// state. The arena itself remains usable; the next allocation starts a new
// chain.
func (a *Arena) Destroy() {
	a.releaseChain(a.current)
	a.current = emptyChunk
}

// SetLimit caps the total usable bytes the arena may obtain from its
// backing allocator. Requests that cannot fit in the remaining budget fail
// with mem.ErrOutOfMemory. The default is unlimited.
func (a *Arena) SetLimit(limit uintptr) {
	a.limit = limit
}

// Allocated reports the total usable bytes obtained across the chunk chain.
func (a *Arena) Allocated() uintptr {
	return a.current.allocatedBytes
}

// zeroSized returns a zero-length slice addressed at the current cursor
// rounded down to align.
func (a *Arena) zeroSized(align uintptr) []byte {
	c := a.current
	if c.empty() {
		return nil
	}
	base := c.base()
	addr := roundDown(base+c.off, align)
	if addr < base {
		addr = base
	}
	off := addr - base
	return c.data[off:off:off]
}

// tryAllocFast carves the request out of the current chunk, or reports nil
// when it cannot (too large, alignment pushes past the start, or size
// arithmetic overflows). Failure here is not an error; the slow path
// decides that.
func (a *Arena) tryAllocFast(layout mem.Layout) []byte {
	c := a.current
	if c.empty() {
		return nil
	}
	base := c.base()
	ptr := base + c.off
	diag.Assert(ptr%a.minAlign == 0, "arena: bump cursor invariant broken")

	var result uintptr
	if layout.Align <= a.minAlign {
		aligned, ok := roundUp(layout.Size, a.minAlign)
		if !ok || aligned > c.off {
			return nil
		}
		result = ptr - aligned
	} else {
		aligned, ok := roundUp(layout.Size, layout.Align)
		if !ok {
			return nil
		}
		end := roundDown(ptr, layout.Align)
		if end < base || aligned > end-base {
			return nil
		}
		result = end - aligned
	}

	c.off = result - base
	return c.data[c.off : c.off+layout.Size : c.off+layout.Size]
}

// allocSlow obtains a new chunk sized max(DefaultChunkSize, twice the
// previous usable size, the rounded request), clamped to the remaining
// allocation budget, then retries the fast path against it.
func (a *Arena) allocSlow(layout mem.Layout) ([]byte, error) {
	current := a.current

	newSize := current.usable()
	if newSize > noLimit/2 {
		newSize = noLimit
	} else {
		newSize *= 2
	}
	if newSize < DefaultChunkSize {
		newSize = DefaultChunkSize
	}

	reqAlign := layout.Align
	if a.minAlign > reqAlign {
		reqAlign = a.minAlign
	}
	reqSize, ok := roundUp(layout.Size, reqAlign)
	if !ok {
		return nil, mem.ErrOutOfMemory
	}
	if newSize < reqSize {
		newSize = reqSize
	}

	if a.limit != noLimit {
		var remaining uintptr
		if a.limit > current.allocatedBytes {
			remaining = a.limit - current.allocatedBytes
		}
		if newSize > remaining {
			// Growth is clamped to the budget; fail only if even the
			// exact request cannot fit.
			if reqSize > remaining {
				return nil, mem.ErrOutOfMemory
			}
			newSize = reqSize
		}
	}

	align := uintptr(chunkAlign)
	if layout.Align > align {
		align = layout.Align
	}

	c, err := a.newChunk(newSize, align, current)
	if err != nil {
		return nil, err
	}
	a.current = c

	b := a.tryAllocFast(layout)
	diag.Assert(b != nil, "arena: fresh chunk cannot satisfy allocation")
	return b, nil
}

func (a *Arena) newChunk(size, align uintptr, prev *chunk) (*chunk, error) {
	size, ok := roundUp(size, chunkAlign)
	if !ok || size == 0 {
		return nil, mem.ErrOutOfMemory
	}
	data, err := a.backing.Alloc(mem.NewLayout(size, align))
	if err != nil {
		return nil, err
	}
	c := &chunk{
		data:           data,
		align:          align,
		prev:           prev,
		allocatedBytes: prev.allocatedBytes + size,
	}
	c.off = roundDown(c.base()+size, a.minAlign) - c.base()
	return c, nil
}

// releaseChain returns every chunk from c back to the sentinel to the
// backing allocator, reconstructing the layout each was obtained with.
func (a *Arena) releaseChain(c *chunk) {
	for !c.empty() {
		prev := c.prev
		a.backing.Release(c.data, mem.NewLayout(c.usable(), c.align))
		c = prev
	}
}

// roundUp rounds n up to a multiple of align (a power of two), reporting
// false on overflow.
func roundUp(n, align uintptr) (uintptr, bool) {
	if n > noLimit-(align-1) {
		return 0, false
	}
	return (n + align - 1) &^ (align - 1), true
}

func roundDown(n, align uintptr) uintptr {
	return n &^ (align - 1)
}
