package wfc

import (
	"iter"
	"slices"
)

// Coord is a position on the infinite grid.
type Coord struct {
	X, Y int
}

// compare orders coordinates lexicographically by (X, Y).
func (c Coord) compare(o Coord) int {
	if c.X != o.X {
		if c.X < o.X {
			return -1
		}
		return 1
	}
	if c.Y != o.Y {
		if c.Y < o.Y {
			return -1
		}
		return 1
	}
	return 0
}

// entry pairs a coordinate with its stored value.
type entry[V any] struct {
	at  Coord
	val V
}

// coordMap is an ordered map from Coord to V backed by a dense slice kept
// sorted in lexicographic (X, Y) order. Lookups are binary searches;
// inserts and removals shift the tail. Changes per propagation step are
// small, so the linear shifts are cheaper in practice than a hash map and
// keep iteration order deterministic.
type coordMap[V any] struct {
	entries []entry[V]
}

// search returns the index of the entry at the given coordinate, or the
// index where it would be inserted.
func (m *coordMap[V]) search(at Coord) (int, bool) {
	return slices.BinarySearchFunc(m.entries, at, func(e entry[V], c Coord) int {
		return e.at.compare(c)
	})
}

// get returns a pointer to the value stored at the coordinate, or nil.
// The pointer is invalidated by the next insert or remove.
func (m *coordMap[V]) get(at Coord) *V {
	if i, ok := m.search(at); ok {
		return &m.entries[i].val
	}
	return nil
}

// insert stores the value at the coordinate, overwriting any previous value.
func (m *coordMap[V]) insert(at Coord, v V) {
	i, ok := m.search(at)
	if ok {
		m.entries[i].val = v
		return
	}
	m.entries = slices.Insert(m.entries, i, entry[V]{at: at, val: v})
}

// remove deletes the entry at the coordinate if present.
func (m *coordMap[V]) remove(at Coord) bool {
	i, ok := m.search(at)
	if !ok {
		return false
	}
	m.entries = slices.Delete(m.entries, i, i+1)
	return true
}

// len returns the number of stored entries.
func (m *coordMap[V]) len() int {
	return len(m.entries)
}

// all yields every entry in ascending (X, Y) order. The map must not be
// modified during iteration.
func (m *coordMap[V]) all() iter.Seq2[Coord, *V] {
	return func(yield func(Coord, *V) bool) {
		for i := range m.entries {
			if !yield(m.entries[i].at, &m.entries[i].val) {
				return
			}
		}
	}
}
