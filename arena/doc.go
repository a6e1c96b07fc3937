// Package arena implements a chunked bump allocator over a backing
// allocator capability.
//
// # Overview
//
// An arena obtains large chunks from a backing mem.Allocator (typically
// mem.System) and serves requests by moving a cursor downward through the
// newest chunk. Individual allocations are never freed; memory is reclaimed
// only in bulk. This is the allocation strategy of choice for:
//
//   - compiler and interpreter front-ends (ASTs, symbol tables, interners)
//   - phase-scoped allocation with batch cleanup
//   - reducing per-object bookkeeping and garbage collection pressure
//
// # Basic Usage
//
//	a := arena.New(mem.System{})
//	defer a.Destroy()
//
//	// Allocate raw bytes
//	buf := a.AllocBytes(1024)
//
//	// Allocate typed values
//	ptr := arena.Alloc[MyStruct](a)
//	ints := arena.AllocSlice[int](a, 100)
//
//	// Invalidate everything but keep one chunk warm
//	a.Reset()
//
// # Memory Layout
//
// Chunks form a singly linked, newest-first chain ending in a shared
// zero-capacity sentinel. Each chunk's cursor starts at the end of its
// usable region and decreases toward the start; chunk capacities grow
// exponentially (doubling, floored at DefaultChunkSize), which amortizes
// backing-allocator calls to O(log n) over n bytes allocated.
//
// # Failure Model
//
// Arena.Alloc and friends return mem.ErrOutOfMemory when the backing
// allocator fails, when size arithmetic would overflow, or when an
// allocation limit set with SetLimit is exceeded. The Must/panicking entry
// points (AllocBytes, Alloc[T], ...) escalate absence to a fatal diagnostic
// instead; callers that want the soft-fail tier use the error-returning
// methods directly.
//
// # Thread Safety
//
// An Arena must not be mutated from more than one goroutine at a time.
// This is a documented caller obligation, not an enforced one.
package arena
