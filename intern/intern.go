// Package intern deduplicates byte sequences into canonical, arena-owned
// strings so that "same symbol" can be decided by pointer identity instead
// of content comparison. It is the canonical composition of the arena
// allocator (storage) and the hash table (lookup).
package intern

import (
	"unsafe"

	"github.com/foundrylib/foundry/arena"
	"github.com/foundrylib/foundry/hashmap"
	"github.com/foundrylib/foundry/mem"
)

// Interner stores at most one live copy of every byte sequence interned
// through it. Two calls with byte-for-byte identical content return strings
// whose data pointers are equal for the interner's lifetime.
//
// An Interner must not be used from more than one goroutine at a time.
type Interner struct {
	arena   *arena.Arena
	table   *hashmap.Map[[]byte, string]
	backing mem.Allocator
}

// New creates an interner whose string storage and lookup table are both
// built on backing. Fails only on allocator exhaustion.
func New(backing mem.Allocator) (*Interner, error) {
	a := arena.New(backing)
	table, err := hashmap.New[[]byte, string](backing, hashmap.HashBytes, hashmap.EqBytes)
	if err != nil {
		a.Destroy()
		return nil, err
	}
	return &Interner{arena: a, table: table, backing: backing}, nil
}

// Intern returns the canonical copy of s. The first call for a given
// content copies it into the arena; every later call is a zero-copy lookup
// returning the same arena-backed string.
func (in *Interner) Intern(s string) string {
	return in.intern(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// InternBytes is Intern for a (pointer, length) view that need not carry a
// terminator, which lets a lexer intern a lexeme straight out of its source
// buffer.
func (in *Interner) InternBytes(b []byte) string {
	return in.intern(b)
}

func (in *Interner) intern(view []byte) string {
	if s, ok := in.table.Get(view); ok {
		return s
	}

	// Copy into the arena with a trailing NUL so the canonical bytes are
	// also a valid C-string image. The table is keyed by a view over the
	// arena copy, never over the caller's buffer: stored keys must outlive
	// whatever the caller does with its memory afterwards.
	n := len(view)
	buf := mem.Must(in.arena.Alloc(mem.LayoutOfArray[byte](n + 1)))
	copy(buf, view)
	buf[n] = 0

	canonical := unsafe.String(unsafe.SliceData(buf), n)
	in.table.Put(buf[:n:n], canonical)
	return canonical
}

// Len reports the number of distinct sequences interned so far.
func (in *Interner) Len() int { return in.table.Len() }

// Allocated reports the usable bytes the interner's arena has obtained.
func (in *Interner) Allocated() uintptr { return in.arena.Allocated() }

// Free destroys the lookup table and the arena, in reverse order of
// acquisition, invalidating every string the interner has returned.
func (in *Interner) Free() {
	if in == nil {
		return
	}
	in.table.Free()
	in.arena.Destroy()
}
