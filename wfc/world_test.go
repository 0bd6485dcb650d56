package wfc

import "testing"

// readTile returns the collapsed tile at (x, y), failing the test when the
// cell has not collapsed.
func readTile(t *testing.T, w *World[*checkerCell, uint8, checkerRules], x, y int) uint8 {
	t.Helper()
	tile, ok := w.Read(x, y).Collapsed()
	if !ok {
		t.Fatalf("cell (%d,%d) is not collapsed", x, y)
	}
	return *tile
}

// checkInvariants verifies layer disjointness and key ordering.
func checkInvariants(t *testing.T, w *World[*checkerCell, uint8, checkerRules]) {
	t.Helper()

	for at := range w.cells.primary.all() {
		if _, ok := w.cells.secondary.search(at); ok {
			t.Errorf("coordinate (%d,%d) present in both layers", at.X, at.Y)
		}
	}

	prev := Coord{}
	first := true
	for at := range w.cells.primary.all() {
		if !first && prev.compare(at) >= 0 {
			t.Errorf("primary layer out of order at (%d,%d)", at.X, at.Y)
		}
		prev, first = at, false
	}
	prev, first = Coord{}, true
	for at := range w.cells.secondary.all() {
		if !first && prev.compare(at) >= 0 {
			t.Errorf("secondary layer out of order at (%d,%d)", at.X, at.Y)
		}
		prev, first = at, false
	}
}

func TestCheckerAlternation(t *testing.T) {
	const size = 10
	w := newCheckerWorld(size)

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			w.Collapse(i, j)
		}
	}

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			want := uint8((i + j) % 2)
			if got := readTile(t, w, i, j); got != want {
				t.Errorf("Read(%d,%d) = %d, want %d", i, j, got, want)
			}
		}
	}

	checkInvariants(t, w)
}

func TestCollapseIsolation(t *testing.T) {
	w := newCheckerWorld(10)
	w.Collapse(5, 5)

	sup, ok := w.Read(0, 0).Superposition()
	if !ok {
		t.Fatal("Read(0,0) should be superimposed")
	}
	if sup != w.Base() {
		t.Error("far cell should read as the shared base superposition")
	}
}

func TestPropagationReach(t *testing.T) {
	w := newCheckerWorld(10)
	w.Collapse(5, 5)

	if w.cells.primary.len() != 1 {
		t.Errorf("primary entries = %d, want 1", w.cells.primary.len())
	}
	if w.cells.secondary.len() != 4 {
		t.Fatalf("secondary entries = %d, want 4", w.cells.secondary.len())
	}

	want := []Coord{{4, 5}, {5, 4}, {5, 6}, {6, 5}}
	i := 0
	for at, c := range w.cells.secondary.all() {
		if at != want[i] {
			t.Errorf("secondary[%d] at (%d,%d), want (%d,%d)", i, at.X, at.Y, want[i].X, want[i].Y)
		}
		if (*c).count() != 1 {
			t.Errorf("neighbor (%d,%d) has %d possibilities, want 1", at.X, at.Y, (*c).count())
		}
		i++
	}
}

func TestWindowGating(t *testing.T) {
	w := NewWorld[*checkerCell, uint8](newChecker, checkerRules{}, NewBounds(0, 0, 3, 3))
	w.Collapse(5, 5)

	if w.cells.primary.len() != 0 || w.cells.secondary.len() != 0 {
		t.Errorf("out-of-bounds collapse materialized cells: primary=%d secondary=%d",
			w.cells.primary.len(), w.cells.secondary.len())
	}
}

func TestWindowExpansion(t *testing.T) {
	w := NewWorld[*checkerCell, uint8](newChecker, checkerRules{}, NewBounds(0, 0, 1, 1))
	w.Collapse(0, 0)

	if got := readTile(t, w, 0, 0); got != 0 {
		t.Fatalf("Read(0,0) = %d, want 0", got)
	}
	if w.cells.secondary.len() != 0 {
		t.Fatalf("no cells should materialize outside a 1x1 window, got %d", w.cells.secondary.len())
	}

	w.SetBounds(NewBounds(0, 0, 3, 3))

	// The cells bordering (0,0) must have been refined by the expansion
	// itself, with no further explicit calls.
	for _, at := range []Coord{{0, 1}, {1, 0}} {
		c := w.cells.secondary.get(at)
		if c == nil {
			t.Errorf("cell (%d,%d) not awakened by SetBounds", at.X, at.Y)
			continue
		}
		if (*c).Possible[0] {
			t.Errorf("cell (%d,%d) still allows tile 0 next to a collapsed 0", at.X, at.Y)
		}
	}

	for at := range w.cells.secondary.all() {
		if !w.Bounds().Contains(at.X, at.Y) {
			t.Errorf("cell (%d,%d) outside bounds", at.X, at.Y)
		}
	}
	checkInvariants(t, w)
}

func TestSetBoundsNoop(t *testing.T) {
	w := newCheckerWorld(4)
	w.Collapse(0, 0)
	before := w.cells.secondary.len()

	w.SetBounds(w.Bounds())
	if got := w.cells.secondary.len(); got != before {
		t.Errorf("no-op SetBounds changed secondary entries: %d -> %d", before, got)
	}
}

func TestCollapseIdempotence(t *testing.T) {
	w := newCheckerWorld(10)
	w.Collapse(3, 3)
	w.Collapse(4, 3)

	primary, secondary := w.cells.primary.len(), w.cells.secondary.len()
	tile := readTile(t, w, 4, 3)

	w.Collapse(4, 3)

	if got := readTile(t, w, 4, 3); got != tile {
		t.Errorf("repeated collapse changed tile: %d -> %d", tile, got)
	}
	if w.cells.primary.len() != primary || w.cells.secondary.len() != secondary {
		t.Errorf("repeated collapse changed layer sizes: primary %d->%d secondary %d->%d",
			primary, w.cells.primary.len(), secondary, w.cells.secondary.len())
	}
}

func TestMonotonicNarrowing(t *testing.T) {
	w := newCheckerWorld(10)

	at := Coord{5, 5}
	last := len(newChecker(checkerRules{}).Possible)

	// Collapse cells around (5,5); its possibility count must never grow.
	for _, c := range []Coord{{4, 5}, {6, 5}, {5, 4}, {5, 6}, {3, 5}, {5, 3}} {
		w.Collapse(c.X, c.Y)

		n := last
		if tile, super := w.cells.get(at); tile != nil {
			n = 0
		} else if super != nil {
			n = (*super).count()
		}
		if n > last {
			t.Fatalf("possibilities at (5,5) grew from %d to %d after collapsing (%d,%d)",
				last, n, c.X, c.Y)
		}
		last = n
	}
}

func TestRefineAllStable(t *testing.T) {
	w := newCheckerWorld(10)
	w.Collapse(2, 2)
	w.Collapse(7, 7)

	primary, secondary := w.cells.primary.len(), w.cells.secondary.len()

	// The cascade has already converged, so a full sweep changes nothing.
	w.RefineAll()

	if w.cells.primary.len() != primary || w.cells.secondary.len() != secondary {
		t.Errorf("RefineAll on a stable world changed layer sizes: primary %d->%d secondary %d->%d",
			primary, w.cells.primary.len(), secondary, w.cells.secondary.len())
	}
	checkInvariants(t, w)
}

func TestReadFallback(t *testing.T) {
	w := newCheckerWorld(10)
	w.Collapse(2, 2)

	for at := range w.Bounds().Cells() {
		v := w.Read(at.X, at.Y)
		tile, super := w.cells.get(at)
		stored := tile != nil || super != nil

		sup, superimposed := v.Superposition()
		isBase := superimposed && sup == w.Base()
		if stored && isBase {
			t.Errorf("Read(%d,%d) fell back to base despite a stored entry", at.X, at.Y)
		}
		if !stored && !isBase {
			t.Errorf("Read(%d,%d) did not fall back to base for an absent cell", at.X, at.Y)
		}
	}
}
