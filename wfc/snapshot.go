package wfc

// Snapshot is a serializable record of a world's observable state: the
// rules, the bounding rectangle, and every materialized cell. The base
// superposition is not stored; Restore recomputes it from the rules.
//
// The struct carries YAML tags so callers can round-trip snapshots with
// gopkg.in/yaml.v3, provided the rules, tile, and superposition types
// are themselves marshalable.
type Snapshot[S, T, R any] struct {
	Rules        R              `yaml:"rules"`
	Bounds       Bounds         `yaml:"bounds"`
	Collapsed    []TileEntry[T] `yaml:"collapsed,omitempty"`
	Superimposed []CellEntry[S] `yaml:"superimposed,omitempty"`
}

// TileEntry is one collapsed cell in a snapshot.
type TileEntry[T any] struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Tile T   `yaml:"tile"`
}

// CellEntry is one still-superimposed cell in a snapshot.
type CellEntry[S any] struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Cell S   `yaml:"cell"`
}

// Snapshot captures the world's current state. Entries appear in
// ascending (x, y) order. Superpositions are cloned, so the snapshot
// stays valid while the world keeps evolving.
func (w *World[S, T, R]) Snapshot() *Snapshot[S, T, R] {
	snap := &Snapshot[S, T, R]{
		Rules:  w.rules,
		Bounds: w.bounds,
	}
	for at, t := range w.cells.primary.all() {
		snap.Collapsed = append(snap.Collapsed, TileEntry[T]{X: at.X, Y: at.Y, Tile: *t})
	}
	for at, s := range w.cells.secondary.all() {
		snap.Superimposed = append(snap.Superimposed, CellEntry[S]{X: at.X, Y: at.Y, Cell: (*s).Clone()})
	}
	return snap
}

// Restore builds a world from a snapshot. newCell rebuilds the base
// superposition from the snapshot's rules, exactly as NewWorld does; the
// stored entries then repopulate the two layers. The restored world
// behaves identically to the source world under subsequent operations,
// up to any unserialized state inside the user's cell type.
func Restore[S Cell[S, T, R], T, R any](snap *Snapshot[S, T, R], newCell func(R) S) *World[S, T, R] {
	w := NewWorld[S, T](newCell, snap.Rules, snap.Bounds)
	for _, e := range snap.Collapsed {
		w.cells.insertCollapsed(Coord{X: e.X, Y: e.Y}, e.Tile)
	}
	for _, e := range snap.Superimposed {
		w.cells.insertSuperimposed(Coord{X: e.X, Y: e.Y}, e.Cell.Clone())
	}
	return w
}
