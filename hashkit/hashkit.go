// Package hashkit provides the hashing building blocks the hash table is
// parameterized over: a streaming 64-bit Hasher and an xxHash64 default.
package hashkit

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hasher is a streaming 64-bit hash state.
type Hasher interface {
	Write(p []byte)
	WriteString(s string)
	WriteUint64(v uint64)
	Sum64() uint64
	Reset()
}

// Default is the module's default Hasher: xxHash64 with seed 0.
type Default struct {
	d xxhash.Digest
}

var _ Hasher = (*Default)(nil)

// NewDefault returns a ready-to-use Default hasher.
func NewDefault() *Default {
	h := new(Default)
	h.d.Reset()
	return h
}

func (h *Default) Write(p []byte)       { _, _ = h.d.Write(p) }
func (h *Default) WriteString(s string) { _, _ = h.d.WriteString(s) }

// WriteUint64 feeds the little-endian encoding of v into the state.
func (h *Default) WriteUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.d.Write(buf[:])
}

func (h *Default) Sum64() uint64 { return h.d.Sum64() }
func (h *Default) Reset()        { h.d.Reset() }

// Bytes hashes b in one shot with the default algorithm.
func Bytes(b []byte) uint64 { return xxhash.Sum64(b) }

// String hashes s in one shot without copying it.
func String(s string) uint64 { return xxhash.Sum64String(s) }

// Uint64 hashes the little-endian encoding of v.
func Uint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}
