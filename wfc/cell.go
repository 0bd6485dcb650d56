// Package wfc implements a sparse, bounded constraint-propagation engine
// in the Wave Function Collapse family. A World is an infinite 2D grid of
// cells; each cell is either collapsed to a final tile value or still
// holds a superposition of possibilities. Collapsing a cell propagates
// constraints to its neighbors until the grid stabilizes.
//
// The engine is generic over a user-supplied cell type that carries the
// actual tile vocabulary and narrowing logic; see Cell.
package wfc

// Offset is a relative neighbor position.
type Offset struct {
	DX, DY int
}

// Outcome reports what a Refine call did to the receiving cell.
type Outcome int

const (
	// Unchanged means the cell made no observable change. The engine
	// stops propagating from it.
	Unchanged Outcome = iota

	// Narrowed means the cell mutated itself in place and is still
	// superimposed. The engine records the new state and propagates.
	Narrowed

	// Committed means the cell collapsed to the tile returned alongside
	// the outcome. The engine replaces the cell with a collapsed entry
	// and propagates.
	Committed
)

// String returns a short name for the outcome, for logging and tests.
func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Narrowed:
		return "narrowed"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// Cell is the contract the engine requires of a pluggable cell type. S is
// the cell type itself (conventionally a pointer type), T its tile type,
// and R its rules type.
//
// Refine must return Unchanged unless it actually mutated the receiver;
// falsely reporting a change can keep the propagation cascade alive
// forever. The neighbor views are only valid for the duration of the
// call and must not be retained.
//
// ForceCollapse must always yield a valid tile, even when the
// possibility set has been narrowed to nothing; the cell picks a defined
// fallback. Any randomness used to pick among the remaining
// possibilities is the cell's own concern; the engine carries no RNG.
type Cell[S, T, R any] interface {
	// Refine narrows the receiver based on the given neighbor views,
	// in the order of Offsets. The returned tile is meaningful only
	// when the outcome is Committed.
	Refine(neighbors []View[S, T], rules R) (T, Outcome)

	// ForceCollapse picks a concrete tile from the current possibilities.
	ForceCollapse() T

	// Clone returns an independent copy of the superposition.
	Clone() S

	// Offsets returns the cell type's neighbor offsets. The list is
	// fixed for the lifetime of a world; the engine reads it once at
	// construction, from the base cell.
	Offsets() []Offset
}

// View is the engine's read of one cell: either a collapsed tile or a
// superposition. Views handed to Refine, and views returned by
// (*World).Read, may reference the world's shared base superposition;
// callers must treat the contents as read-only and must not retain them.
type View[S, T any] struct {
	tile      *T
	super     S
	collapsed bool
}

// Collapsed returns the committed tile when the viewed cell has collapsed.
func (v View[S, T]) Collapsed() (*T, bool) {
	if !v.collapsed {
		return nil, false
	}
	return v.tile, true
}

// Superposition returns the possibility set when the viewed cell has not
// collapsed. For cells with no record of their own this is the world's
// base superposition.
func (v View[S, T]) Superposition() (S, bool) {
	var zero S
	if v.collapsed {
		return zero, false
	}
	return v.super, true
}

// IsCollapsed reports whether the viewed cell holds a committed tile.
func (v View[S, T]) IsCollapsed() bool {
	return v.collapsed
}
