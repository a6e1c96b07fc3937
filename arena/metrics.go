package arena

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// SizeInUse returns the bytes currently handed out across all chunks,
// including internal fragmentation due to alignment.
func (a *Arena) SizeInUse() uintptr {
	var sum uintptr
	for c := a.current; !c.empty(); c = c.prev {
		sum += c.usable() - c.off
	}
	return sum
}

// NumChunks returns the number of chunks in the chain.
func (a *Arena) NumChunks() int {
	n := 0
	for c := a.current; !c.empty(); c = c.prev {
		n++
	}
	return n
}

// Capacity returns the total usable bytes of all chunks. Equal to
// Allocated; provided for symmetry with SizeInUse.
func (a *Arena) Capacity() uintptr {
	return a.current.allocatedBytes
}

// Utilization returns the ratio of bytes in use to total capacity
// (0.0 to 1.0), or 0.0 for an empty arena.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics is a snapshot of arena statistics.
type Metrics struct {
	SizeInUse   uintptr // bytes currently handed out
	Capacity    uintptr // total usable bytes across the chain
	NumChunks   int
	MinAlign    uintptr
	Utilization float64 // 0.0 to 1.0
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Metrics {
	return Metrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		MinAlign:    a.minAlign,
		Utilization: a.Utilization(),
	}
}

func (m Metrics) String() string {
	return fmt.Sprintf("arena: %s in use of %s across %d chunk(s), %.1f%% utilized",
		humanize.IBytes(uint64(m.SizeInUse)),
		humanize.IBytes(uint64(m.Capacity)),
		m.NumChunks,
		m.Utilization*100)
}
