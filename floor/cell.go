package floor

import (
	"math/rand"

	"github.com/lawnchairsociety/wavegrid/wfc"
)

// cellOffsets is the floor cell neighborhood, in North, East, South,
// West order. Refinement and propagation visit neighbors in this order.
var cellOffsets = []wfc.Offset{{DX: 0, DY: -1}, {DX: 1, DY: 0}, {DX: 0, DY: 1}, {DX: -1, DY: 0}}

// Cell is the floor superposition: the set of tile types still possible
// at one grid position. It implements the wfc cell contract with tile
// type TileType and rules type *Rules.
type Cell struct {
	// Possible is the remaining candidate set. It only ever narrows.
	Possible TypeSet `yaml:"possible"`

	// ForceCollapse takes no rules argument, so the cell keeps its own
	// handles for weighting and randomness. Refine re-binds rules, which
	// also covers cells deserialized straight from a snapshot.
	rules *Rules
	rng   *rand.Rand
}

// New constructs the base superposition from the rules: every placeable
// tile type is possible. The engine calls this once per world.
func New(r *Rules) *Cell {
	return &Cell{
		Possible: r.Placeable(),
		rules:    r,
		rng:      rand.New(rand.NewSource(r.Seed)),
	}
}

// Offsets returns the four orthogonal neighbor offsets.
func (c *Cell) Offsets() []wfc.Offset {
	return cellOffsets
}

// Clone returns an independent copy of the superposition. The rules and
// RNG handles are shared across clones.
func (c *Cell) Clone() *Cell {
	dup := *c
	return &dup
}

// Refine drops every candidate that cannot legally sit beside some
// collapsed neighbor. A cell narrowed to a single candidate commits to
// it.
func (c *Cell) Refine(neighbors []wfc.View[*Cell, TileType], rules *Rules) (TileType, wfc.Outcome) {
	c.rules = rules

	outcome := wfc.Unchanged
	for _, n := range neighbors {
		nt, ok := n.Collapsed()
		if !ok {
			continue
		}
		for t := TileType(0); t < numTileTypes; t++ {
			if c.Possible.Has(t) && !rules.CanTypesConnect(t, *nt) {
				c.Possible = c.Possible.Remove(t)
				outcome = wfc.Narrowed
			}
		}
	}

	if outcome == wfc.Narrowed && c.Possible.Len() == 1 {
		return c.Possible.First(), wfc.Committed
	}
	return TileEmpty, outcome
}

// ForceCollapse picks a tile from the remaining candidates, weighted by
// the rules. An exhausted set falls back to a corridor, which every
// other type tolerates as a neighbor.
func (c *Cell) ForceCollapse() TileType {
	if c.rules == nil {
		// Not refined since deserialization; no weights to consult.
		if t := c.Possible.First(); t != TileEmpty {
			return t
		}
		return TileCorridor
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(c.rules.Seed))
	}

	total := 0
	for t := TileType(0); t < numTileTypes; t++ {
		if c.Possible.Has(t) {
			total += c.rules.Weight(t)
		}
	}
	if total == 0 {
		return TileCorridor
	}

	pick := c.rng.Intn(total)
	for t := TileType(0); t < numTileTypes; t++ {
		if !c.Possible.Has(t) {
			continue
		}
		pick -= c.rules.Weight(t)
		if pick < 0 {
			return t
		}
	}
	return TileCorridor
}
