package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foundrylib/foundry/arena"
	"github.com/foundrylib/foundry/mem"
)

func TestPushPop(t *testing.T) {
	v := New[int](mem.System{})
	defer v.Free()

	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())

	for i := 0; i < 20; i++ {
		v.Push(i * 10)
	}
	require.Equal(t, 20, v.Len())
	assert.GreaterOrEqual(t, v.Cap(), 20)

	for i := 19; i >= 0; i-- {
		x, ok := v.Pop()
		require.True(t, ok)
		require.Equal(t, i*10, x)
	}
	_, ok := v.Pop()
	assert.False(t, ok)
}

func TestGrowthDoubling(t *testing.T) {
	v := New[byte](mem.System{})
	defer v.Free()

	v.Push(1)
	assert.Equal(t, minCapacity, v.Cap())

	for i := 0; i < minCapacity; i++ {
		v.Push(byte(i))
	}
	assert.Equal(t, 2*minCapacity, v.Cap())
}

func TestReserve(t *testing.T) {
	v := New[int](mem.System{})
	defer v.Free()

	v.Reserve(100)
	require.Equal(t, 100, v.Cap())
	assert.Zero(t, v.Len())

	// Reserving less than the capacity is a no-op.
	v.Reserve(10)
	assert.Equal(t, 100, v.Cap())

	// Pushes up to the reservation must not reallocate.
	for i := 0; i < 100; i++ {
		v.Push(i)
	}
	assert.Equal(t, 100, v.Cap())
}

func TestGrowthPreservesElements(t *testing.T) {
	v := New[int64](mem.System{})
	defer v.Free()

	const n = 1000
	for i := int64(0); i < n; i++ {
		v.Push(i * i)
	}
	for i := int64(0); i < n; i++ {
		require.Equal(t, i*i, v.Get(int(i)))
	}
}

func TestGetSet(t *testing.T) {
	v := New[string](mem.System{})
	defer v.Free()

	v.Push("a")
	v.Push("b")

	v.Set(0, "z")
	assert.Equal(t, "z", v.Get(0))
	assert.Equal(t, "b", v.Get(1))

	require.Panics(t, func() { v.Get(2) })
	require.Panics(t, func() { v.Get(-1) })
	require.Panics(t, func() { v.Set(2, "x") })
}

func TestSlice(t *testing.T) {
	v := New[int](mem.System{})
	defer v.Free()

	for i := 0; i < 5; i++ {
		v.Push(i)
	}

	s := v.Slice()
	require.Equal(t, []int{0, 1, 2, 3, 4}, s)

	// The view writes through to the vector.
	s[2] = 99
	assert.Equal(t, 99, v.Get(2))
}

func TestTruncate(t *testing.T) {
	v := New[int](mem.System{})
	defer v.Free()

	for i := 0; i < 10; i++ {
		v.Push(i)
	}

	v.Truncate(4)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, []int{0, 1, 2, 3}, v.Slice())

	v.Truncate(4) // no-op at the boundary
	assert.Equal(t, 4, v.Len())

	require.Panics(t, func() { v.Truncate(5) })
	require.Panics(t, func() { v.Truncate(-1) })
}

func TestArenaBackedVector(t *testing.T) {
	a := arena.New(mem.System{})
	defer a.Destroy()

	v := New[uint64](a)
	for i := uint64(0); i < 500; i++ {
		v.Push(i)
	}
	require.Equal(t, 500, v.Len())
	for i := uint64(0); i < 500; i++ {
		require.Equal(t, i, v.Get(int(i)))
	}
	v.Free() // no-op release; Destroy reclaims
}

func TestFreeThenReuse(t *testing.T) {
	v := New[int](mem.System{})

	v.Push(1)
	v.Free()
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())

	v.Push(2)
	assert.Equal(t, 2, v.Get(0))
	v.Free()
}
