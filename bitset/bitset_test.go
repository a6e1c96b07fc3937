package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrylib/foundry/arena"
	"github.com/foundrylib/foundry/mem"
)

func TestSetClearTest(t *testing.T) {
	b, err := New(mem.System{}, 128)
	require.NoError(t, err)
	defer b.Free()

	assert.Equal(t, 128, b.Len())
	assert.False(t, b.Test(0))

	b.Set(0)
	b.Set(63)
	b.Set(64) // first bit of the second word
	b.Set(127)

	assert.True(t, b.Test(0))
	assert.True(t, b.Test(63))
	assert.True(t, b.Test(64))
	assert.True(t, b.Test(127))
	assert.False(t, b.Test(1))
	assert.Equal(t, 4, b.Count())

	b.Clear(63)
	assert.False(t, b.Test(63))
	assert.Equal(t, 3, b.Count())

	// Clearing a clear bit is a no-op.
	b.Clear(63)
	assert.Equal(t, 3, b.Count())
}

// 70 bits spans two words with a 6-bit tail; SetAll must not count the 58
// unused bits of the last word.
func TestSetAllTailMask(t *testing.T) {
	b, err := New(mem.System{}, 70)
	require.NoError(t, err)
	defer b.Free()

	b.SetAll()
	assert.Equal(t, 70, b.Count())
	for i := 0; i < 70; i++ {
		require.True(t, b.Test(i), "bit %d", i)
	}

	b.ClearAll()
	assert.Zero(t, b.Count())
}

func TestSetAllExactWords(t *testing.T) {
	b, err := New(mem.System{}, 128)
	require.NoError(t, err)
	defer b.Free()

	b.SetAll()
	assert.Equal(t, 128, b.Count())
}

func TestOutOfRange(t *testing.T) {
	b, err := New(mem.System{}, 10)
	require.NoError(t, err)
	defer b.Free()

	require.Panics(t, func() { b.Set(10) })
	require.Panics(t, func() { b.Test(-1) })
	require.Panics(t, func() { b.Clear(100) })
}

func TestZeroBits(t *testing.T) {
	b, err := New(mem.System{}, 0)
	require.NoError(t, err)
	defer b.Free()

	assert.Zero(t, b.Len())
	assert.Zero(t, b.Count())
	assert.NotPanics(t, b.SetAll)
	require.Panics(t, func() { b.Test(0) })
}

func TestArenaBackedBitset(t *testing.T) {
	a := arena.New(mem.System{})
	defer a.Destroy()

	b, err := New(a, 1024)
	require.NoError(t, err)

	for i := 0; i < 1024; i += 3 {
		b.Set(i)
	}
	assert.Equal(t, 342, b.Count())
	b.Free()
}

func TestNewStartsClear(t *testing.T) {
	b, err := New(mem.System{}, 256)
	require.NoError(t, err)
	defer b.Free()

	for i := 0; i < 256; i++ {
		require.False(t, b.Test(i), "bit %d dirty", i)
	}
}
