package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicf(t *testing.T) {
	require.PanicsWithValue(t, "chunk 3 corrupted", func() {
		Panicf("chunk %d corrupted", 3)
	})
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "unreachable") })
	require.PanicsWithValue(t, "assertion failed: cursor misaligned", func() {
		Assert(false, "cursor misaligned")
	})
}

func TestAssertf(t *testing.T) {
	assert.NotPanics(t, func() { Assertf(true, "n=%d", 1) })
	require.PanicsWithValue(t, "assertion failed: align 3 invalid", func() {
		Assertf(false, "align %d invalid", 3)
	})
}
