package mem

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func TestSystemAlloc(t *testing.T) {
	var sys System

	b, err := sys.Alloc(NewLayout(100, 1))
	require.NoError(t, err)
	assert.Len(t, b, 100)

	// Zero-size requests yield no storage.
	b, err = sys.Alloc(NewLayout(0, 8))
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestSystemAllocAlignment(t *testing.T) {
	var sys System
	for _, align := range []uintptr{16, 64, 128, 4096} {
		b, err := sys.Alloc(NewLayout(100, align))
		require.NoError(t, err)
		require.Len(t, b, 100)
		assert.Zero(t, addrOf(b)%align, "align=%d", align)
	}
}

func TestSystemAllocZeroed(t *testing.T) {
	var sys System
	b, err := sys.AllocZeroed(NewLayout(256, 16))
	require.NoError(t, err)
	for i, c := range b {
		require.Zero(t, c, "byte %d", i)
	}
}

func TestSystemRealloc(t *testing.T) {
	var sys System

	old, err := sys.Alloc(NewLayout(16, 8))
	require.NoError(t, err)
	for i := range old {
		old[i] = byte(i + 1)
	}

	// Grow: the prefix survives and the new alignment is honored.
	grown, err := sys.Realloc(old, NewLayout(16, 8), NewLayout(64, 64))
	require.NoError(t, err)
	require.Len(t, grown, 64)
	assert.Zero(t, addrOf(grown)%64)
	assert.Equal(t, old, grown[:16])

	// Shrink: only the surviving prefix is copied.
	shrunk, err := sys.Realloc(grown, NewLayout(64, 64), NewLayout(8, 8))
	require.NoError(t, err)
	require.Len(t, shrunk, 8)
	assert.Equal(t, old[:8], shrunk)

	// Realloc from nothing behaves as Alloc.
	fresh, err := sys.Realloc(nil, Layout{}, NewLayout(32, 8))
	require.NoError(t, err)
	assert.Len(t, fresh, 32)
}

func TestSystemReleaseNil(t *testing.T) {
	var sys System
	assert.NotPanics(t, func() { sys.Release(nil, NewLayout(0, 1)) })
}

func TestSystemExtendedNoOps(t *testing.T) {
	var sys System
	sys.Reset()
	sys.SetLimit(1024)
	assert.Zero(t, sys.Allocated())
}

func TestMust(t *testing.T) {
	b := Must([]byte{1, 2, 3}, nil)
	assert.Equal(t, []byte{1, 2, 3}, b)

	require.Panics(t, func() { Must(nil, ErrOutOfMemory) })
	require.Panics(t, func() { Must(nil, errors.New("backing failed")) })
}
