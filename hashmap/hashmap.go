// Package hashmap implements a generic open-addressing hash table with
// linear probing and tombstone deletion, parameterized over a key type, a
// value type, hash and equality functions, and a backing allocator.
//
// The entries array is obtained from the backing allocator and released
// through it on resize and Free. Because allocator memory is scanned as
// plain bytes, keys and values that contain pointers must stay reachable
// through memory the garbage collector scans for the map's lifetime; the
// string interner satisfies this by keying the table with views into
// arena-owned storage.
//
// A Map must not be mutated from more than one goroutine at a time.
package hashmap

import (
	"unsafe"

	"github.com/foundrylib/foundry/diag"
	"github.com/foundrylib/foundry/mem"
)

const (
	// DefaultCapacity is the entry count of a freshly created table.
	DefaultCapacity = 64

	// LoadFactor is the maximum ratio of occupied entries to capacity
	// tolerated before an insertion triggers a resize.
	LoadFactor = 0.75
)

type entryState uint8

const (
	stateEmpty entryState = iota
	stateOccupied
	stateDeleted // tombstone
)

type entry[K, V any] struct {
	key   K
	value V
	state entryState
}

// HashFunc hashes a key to 64 bits.
type HashFunc[K any] func(K) uint64

// EqFunc reports whether two keys are equal.
type EqFunc[K any] func(K, K) bool

// Map is an open-addressing hash table. Construct with New.
type Map[K, V any] struct {
	raw      []byte // entries storage exactly as obtained from the allocator
	entries  []entry[K, V]
	capacity int
	count    int
	alloc    mem.Allocator
	hash     HashFunc[K]
	eq       EqFunc[K]
}

// New creates a table with DefaultCapacity entries obtained from alloc.
// Fails only on allocator exhaustion.
func New[K, V any](alloc mem.Allocator, hash HashFunc[K], eq EqFunc[K]) (*Map[K, V], error) {
	m := &Map[K, V]{alloc: alloc, hash: hash, eq: eq}
	raw, entries, err := allocEntries[K, V](alloc, DefaultCapacity)
	if err != nil {
		return nil, err
	}
	m.raw, m.entries, m.capacity = raw, entries, DefaultCapacity
	return m, nil
}

// allocEntries obtains a zeroed array of capacity entries; zeroed bytes
// make every slot stateEmpty.
func allocEntries[K, V any](alloc mem.Allocator, capacity int) ([]byte, []entry[K, V], error) {
	raw, err := alloc.AllocZeroed(mem.LayoutOfArray[entry[K, V]](capacity))
	if err != nil {
		return nil, nil, err
	}
	entries := unsafe.Slice((*entry[K, V])(unsafe.Pointer(unsafe.SliceData(raw))), capacity)
	return raw, entries, nil
}

type findResult struct {
	index int
	found bool
}

// findEntry is the single probe algorithm behind Get, Put and Delete. When
// the key is absent, index is the insertion slot: the first tombstone seen
// on the probe path if any, otherwise the empty slot that ended the scan,
// otherwise capacity itself meaning "no slot available" (forces a resize).
func findEntry[K, V any](entries []entry[K, V], capacity int, hash HashFunc[K], eq EqFunc[K], key K) findResult {
	if capacity == 0 {
		return findResult{index: 0, found: false}
	}
	base := int(hash(key) % uint64(capacity))
	firstTombstone := capacity

	for i := 0; i < capacity; i++ {
		index := (base + i) % capacity
		e := &entries[index]
		switch e.state {
		case stateEmpty:
			if firstTombstone != capacity {
				// Reclaim the tombstone seen earlier on this path.
				return findResult{index: firstTombstone, found: false}
			}
			return findResult{index: index, found: false}
		case stateOccupied:
			if eq(e.key, key) {
				return findResult{index: index, found: true}
			}
		case stateDeleted:
			if firstTombstone == capacity {
				firstTombstone = index
			}
			// Keep probing: the key may live past this tombstone.
		}
	}
	return findResult{index: firstTombstone, found: false}
}

// writeAt stores key/value at index and maintains count. Writing a new key
// into an occupied slot, or updating a slot that is not occupied, is a
// violated invariant.
func (m *Map[K, V]) writeAt(index int, key K, value V, isNew bool) {
	if isNew {
		diag.Assert(m.entries[index].state != stateOccupied, "hashmap: writing new key to occupied slot")
		m.count++
	} else {
		diag.Assert(m.entries[index].state == stateOccupied, "hashmap: updating value of non-occupied slot")
	}
	m.entries[index] = entry[K, V]{key: key, value: value, state: stateOccupied}
}

// Put inserts key with value, overwriting in place when the key already
// exists. Allocator exhaustion during the resize this may trigger is fatal:
// the table cannot maintain its load-factor invariant without growing.
func (m *Map[K, V]) Put(key K, value V) {
	res := findEntry(m.entries, m.capacity, m.hash, m.eq, key)
	if res.found {
		m.writeAt(res.index, key, value, false)
		return
	}

	needsResize := res.index == m.capacity ||
		float64(m.count+1) > float64(m.capacity)*LoadFactor
	if needsResize {
		if err := m.resize(); err != nil {
			diag.Panicf("hashmap: resize failed: %v", err)
		}
		res = findEntry(m.entries, m.capacity, m.hash, m.eq, key)
		diag.Assert(!res.found, "hashmap: key found immediately after resize")
		diag.Assert(res.index < m.capacity, "hashmap: no insert slot found after resize")
	}

	m.writeAt(res.index, key, value, true)
}

// resize doubles capacity (or starts at DefaultCapacity from zero),
// re-inserts every occupied entry into the new array, drops tombstones, and
// releases the old array. Re-insertion calls findEntry directly: going
// through Put here could recurse into another resize.
func (m *Map[K, V]) resize() error {
	oldRaw, oldEntries, oldCapacity := m.raw, m.entries, m.capacity

	newCapacity := DefaultCapacity
	if oldCapacity > 0 {
		newCapacity = oldCapacity * 2
	}
	raw, entries, err := allocEntries[K, V](m.alloc, newCapacity)
	if err != nil {
		return err
	}
	m.raw, m.entries, m.capacity = raw, entries, newCapacity
	m.count = 0 // writeAt re-counts during re-insertion

	for i := 0; i < oldCapacity; i++ {
		e := &oldEntries[i]
		if e.state != stateOccupied {
			continue
		}
		res := findEntry(m.entries, m.capacity, m.hash, m.eq, e.key)
		diag.Assert(!res.found && res.index < m.capacity, "hashmap: re-insert failed during resize")
		m.writeAt(res.index, e.key, e.value, true)
	}

	if oldRaw != nil {
		m.alloc.Release(oldRaw, mem.LayoutOfArray[entry[K, V]](oldCapacity))
	}
	return nil
}

// Get returns the value stored for key, or the zero value and false when
// the key is absent.
func (m *Map[K, V]) Get(key K) (V, bool) {
	res := findEntry(m.entries, m.capacity, m.hash, m.eq, key)
	if !res.found {
		var zero V
		return zero, false
	}
	return m.entries[res.index].value, true
}

// GetPtr returns a pointer to the value stored for key, or nil when the key
// is absent. The pointer is invalidated by the next resize.
func (m *Map[K, V]) GetPtr(key K) *V {
	res := findEntry(m.entries, m.capacity, m.hash, m.eq, key)
	if !res.found {
		return nil
	}
	return &m.entries[res.index].value
}

// Delete tombstones key's slot and reports whether the key was present.
// The payload is left in place; the state tag alone governs visibility.
func (m *Map[K, V]) Delete(key K) bool {
	res := findEntry(m.entries, m.capacity, m.hash, m.eq, key)
	if !res.found {
		return false
	}
	m.entries[res.index].state = stateDeleted
	m.count--
	return true
}

// Len returns the number of occupied entries.
func (m *Map[K, V]) Len() int { return m.count }

// Cap returns the current capacity of the entries array.
func (m *Map[K, V]) Cap() int { return m.capacity }

// Free releases the entries array through the backing allocator. The next
// Put would regrow from zero, but conventionally a freed map is dead.
func (m *Map[K, V]) Free() {
	if m == nil || m.raw == nil {
		return
	}
	m.alloc.Release(m.raw, mem.LayoutOfArray[entry[K, V]](m.capacity))
	m.raw, m.entries = nil, nil
	m.capacity, m.count = 0, 0
}
