// Package bitset implements a fixed-size bit array whose word storage comes
// from the allocator capability.
package bitset

import (
	"math/bits"
	"unsafe"

	"github.com/foundrylib/foundry/diag"
	"github.com/foundrylib/foundry/mem"
)

// Bitset is a fixed-size array of bits backed by 64-bit words obtained from
// an allocator. Construct with New; the zero value is unusable.
type Bitset struct {
	bits  int
	raw   []byte
	words []uint64
	alloc mem.Allocator
}

// New creates a bitset of n bits, all clear, with word storage from alloc.
// Fails only on allocator exhaustion.
func New(alloc mem.Allocator, n int) (*Bitset, error) {
	diag.Assertf(n >= 0, "bitset: negative size %d", n)
	numWords := (n + 63) >> 6
	raw, err := alloc.AllocZeroed(mem.LayoutOfArray[uint64](numWords))
	if err != nil {
		return nil, err
	}
	b := &Bitset{bits: n, raw: raw, alloc: alloc}
	if numWords > 0 {
		b.words = unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(raw))), numWords)
	}
	return b, nil
}

// Len returns the number of bits.
func (b *Bitset) Len() int { return b.bits }

func (b *Bitset) check(i int) {
	diag.Assertf(i >= 0 && i < b.bits, "bitset: bit %d out of range [0,%d)", i, b.bits)
}

// Set sets bit i. Out-of-range indices are fatal.
func (b *Bitset) Set(i int) {
	b.check(i)
	b.words[i>>6] |= 1 << (i & 63)
}

// Clear clears bit i. Out-of-range indices are fatal.
func (b *Bitset) Clear(i int) {
	b.check(i)
	b.words[i>>6] &^= 1 << (i & 63)
}

// Test reports whether bit i is set. Out-of-range indices are fatal.
func (b *Bitset) Test(i int) bool {
	b.check(i)
	return b.words[i>>6]&(1<<(i&63)) != 0
}

// SetAll sets every bit, masking the unused tail of the last word so Count
// stays exact.
func (b *Bitset) SetAll() {
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
	if tail := b.bits & 63; tail != 0 && len(b.words) > 0 {
		b.words[len(b.words)-1] = (1 << tail) - 1
	}
}

// ClearAll clears every bit.
func (b *Bitset) ClearAll() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Free releases the word storage through the backing allocator.
func (b *Bitset) Free() {
	if b.raw != nil {
		b.alloc.Release(b.raw, mem.LayoutOfArray[uint64](len(b.words)))
	}
	b.raw, b.words = nil, nil
	b.bits = 0
}
