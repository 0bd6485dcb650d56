package floor

import (
	"testing"

	"github.com/lawnchairsociety/wavegrid/wfc"
)

// worldWithCommitted searches seeds until collapsing the center of a 4x4
// world commits the wanted tile type, then returns that world.
func worldWithCommitted(t *testing.T, want TileType) *wfc.World[*Cell, TileType, *Rules] {
	t.Helper()
	for seed := int64(0); seed < 200; seed++ {
		w := wfc.NewWorld[*Cell, TileType](New, DefaultRules(seed), wfc.NewBounds(0, 0, 4, 4))
		w.Collapse(1, 1)
		if tile, ok := w.Read(1, 1).Collapsed(); ok && *tile == want {
			return w
		}
	}
	t.Fatalf("no seed under 200 collapses the center to %s", want)
	return nil
}

func TestNewCellStartsPlaceable(t *testing.T) {
	rules := DefaultRules(42)
	c := New(rules)

	if c.Possible != rules.Placeable() {
		t.Errorf("new cell Possible = %v, want %v", c.Possible, rules.Placeable())
	}
}

func TestCellCloneIsIndependent(t *testing.T) {
	c := New(DefaultRules(42))
	dup := c.Clone()

	dup.Possible = dup.Possible.Remove(TileRoom)
	if !c.Possible.Has(TileRoom) {
		t.Error("mutating a clone changed the original")
	}
}

func TestCellRefineAgainstDeadEnd(t *testing.T) {
	// A committed dead end forces its neighbors to drop every type a
	// dead end cannot sit next to.
	w := worldWithCommitted(t, TileDeadEnd)

	sup, ok := w.Read(1, 2).Superposition()
	if !ok {
		t.Fatal("neighbor of the collapsed cell should be superimposed")
	}
	if sup.Possible.Has(TileDeadEnd) {
		t.Error("dead end still possible next to a dead end")
	}
	if sup.Possible.Has(TileTreasure) {
		t.Error("treasure still possible next to a dead end")
	}
	if !sup.Possible.Has(TileCorridor) || !sup.Possible.Has(TileRoom) {
		t.Error("corridor and room must stay possible next to a dead end")
	}
}

func TestCellRefineUnchangedNextToCorridor(t *testing.T) {
	// Corridors are compatible with everything, so a committed corridor
	// must not materialize narrowed neighbors.
	w := worldWithCommitted(t, TileCorridor)

	sup, ok := w.Read(1, 2).Superposition()
	if !ok {
		t.Fatal("neighbor should not have collapsed")
	}
	if sup != w.Base() {
		t.Error("neighbor of a corridor should still read as the shared base")
	}
}

func TestForceCollapseRespectsPossible(t *testing.T) {
	rules := DefaultRules(42)

	for i := 0; i < 50; i++ {
		c := New(rules)
		c.Possible = TypeSet(0).Add(TileRoom).Add(TileTreasure)
		got := c.ForceCollapse()
		if got != TileRoom && got != TileTreasure {
			t.Fatalf("ForceCollapse() = %s, outside the possibility set", got)
		}
	}
}

func TestForceCollapseExhaustedSet(t *testing.T) {
	c := New(DefaultRules(42))
	c.Possible = TypeSet(0)

	if got := c.ForceCollapse(); got != TileCorridor {
		t.Errorf("ForceCollapse() on exhausted set = %s, want corridor fallback", got)
	}
}

func TestForceCollapseWithoutRules(t *testing.T) {
	// A cell deserialized from a snapshot has no rules handle until its
	// first refinement; it must still produce a defined tile.
	c := &Cell{Possible: TypeSet(0).Add(TileRoom)}
	if got := c.ForceCollapse(); got != TileRoom {
		t.Errorf("ForceCollapse() = %s, want room", got)
	}

	empty := &Cell{}
	if got := empty.ForceCollapse(); got != TileCorridor {
		t.Errorf("ForceCollapse() on empty unbound cell = %s, want corridor", got)
	}
}
