package vec

import "github.com/foundrylib/foundry/mem"

// Buffer is a dynamic byte string over the allocator capability.
type Buffer struct {
	v Vector[byte]
}

// NewBuffer returns an empty buffer backed by alloc.
func NewBuffer(alloc mem.Allocator) *Buffer {
	return &Buffer{v: Vector[byte]{alloc: alloc}}
}

// NewBufferFrom returns a buffer initialized to a copy of s.
func NewBufferFrom(alloc mem.Allocator, s string) *Buffer {
	b := NewBuffer(alloc)
	b.AppendString(s)
	return b
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return b.v.len }

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.v.Push(c)
}

// AppendBytes appends a copy of p.
func (b *Buffer) AppendBytes(p []byte) {
	if len(p) == 0 {
		return
	}
	need := b.v.len + len(p)
	if need > b.v.cap {
		b.v.reserveTo(b.v.grown(need))
	}
	copy(b.v.data[b.v.len:need], p)
	b.v.len = need
}

// AppendString appends a copy of s.
func (b *Buffer) AppendString(s string) {
	if len(s) == 0 {
		return
	}
	need := b.v.len + len(s)
	if need > b.v.cap {
		b.v.reserveTo(b.v.grown(need))
	}
	copy(b.v.data[b.v.len:need], s)
	b.v.len = need
}

// Bytes returns a view over the buffer's content, invalidated by the next
// growth.
func (b *Buffer) Bytes() []byte {
	return b.v.Slice()
}

// String returns a copy of the buffer's content.
func (b *Buffer) String() string {
	return string(b.v.Slice())
}

// Reset drops the content but keeps the storage for reuse.
func (b *Buffer) Reset() {
	b.v.len = 0
}

// Free releases the storage through the backing allocator.
func (b *Buffer) Free() {
	b.v.Free()
}
