package floor

// Rules defines the adjacency constraints and collapse weights for floor
// generation. The zero value is not usable; construct with DefaultRules
// and adjust fields as needed.
type Rules struct {
	// MinExits and MaxExits bound how many passages each tile type may
	// have.
	MinExits map[TileType]int `yaml:"min_exits"`
	MaxExits map[TileType]int `yaml:"max_exits"`

	// Compatible records which tile types may sit next to each other.
	// The relation is symmetric; types absent from the map are treated
	// as incompatible with everything.
	Compatible map[TileType]map[TileType]bool `yaml:"compatible"`

	// Weights biases the random pick when a cell collapses. Types with
	// zero weight never appear in the base superposition; the generator
	// places them afterward (stairs, boss rooms).
	Weights map[TileType]int `yaml:"weights"`

	// Seed feeds the RNG that cells collapse with.
	Seed int64 `yaml:"seed"`
}

// exitRange is the allowed passage count for one tile type.
type exitRange struct {
	tile     TileType
	min, max int
}

// compatPair marks two tile types as allowed or forbidden neighbors.
type compatPair struct {
	a, b    TileType
	allowed bool
}

// DefaultRules returns the standard adjacency rules for tower floors.
func DefaultRules(seed int64) *Rules {
	r := &Rules{
		MinExits:   make(map[TileType]int),
		MaxExits:   make(map[TileType]int),
		Compatible: make(map[TileType]map[TileType]bool),
		Weights: map[TileType]int{
			TileCorridor: 5,
			TileRoom:     4,
			TileDeadEnd:  2,
			TileTreasure: 1,
		},
		Seed: seed,
	}

	ranges := []exitRange{
		{TileCorridor, 2, 4},
		{TileRoom, 1, 4},
		{TileDeadEnd, 1, 1},
		{TileTreasure, 1, 2},
		{TileBoss, 1, 2},
		{TileStairsUp, 1, 1},
		{TileStairsDown, 1, 1},
	}
	for _, er := range ranges {
		r.MinExits[er.tile] = er.min
		r.MaxExits[er.tile] = er.max
	}

	// Corridors and rooms are the connective tissue: compatible with
	// everything. Special rooms avoid each other.
	structural := []TileType{TileCorridor, TileRoom}
	special := []TileType{TileDeadEnd, TileTreasure, TileBoss, TileStairsUp, TileStairsDown}
	var pairs []compatPair
	for _, s := range structural {
		for _, other := range append(structural, special...) {
			pairs = append(pairs, compatPair{s, other, true})
		}
	}
	for i, a := range special {
		for _, b := range special[i:] {
			pairs = append(pairs, compatPair{a, b, false})
		}
	}
	for _, p := range pairs {
		r.setCompatible(p.a, p.b, p.allowed)
	}

	return r
}

// setCompatible records a symmetric adjacency permission.
func (r *Rules) setCompatible(a, b TileType, allowed bool) {
	if r.Compatible[a] == nil {
		r.Compatible[a] = make(map[TileType]bool)
	}
	if r.Compatible[b] == nil {
		r.Compatible[b] = make(map[TileType]bool)
	}
	r.Compatible[a][b] = allowed
	r.Compatible[b][a] = allowed
}

// CanTypesConnect reports whether two tile types may be adjacent. Empty
// is compatible with everything.
func (r *Rules) CanTypesConnect(a, b TileType) bool {
	if a == TileEmpty || b == TileEmpty {
		return true
	}
	if r.Compatible[a] == nil {
		return false
	}
	return r.Compatible[a][b]
}

// Weight returns the collapse weight for a tile type.
func (r *Rules) Weight(t TileType) int {
	return r.Weights[t]
}

// Placeable returns the set of tile types a cell may collapse to on its
// own: every type with a positive weight.
func (r *Rules) Placeable() TypeSet {
	var s TypeSet
	for t, weight := range r.Weights {
		if weight > 0 {
			s = s.Add(t)
		}
	}
	return s
}

// MinExitsFor returns the minimum passage count for a tile type.
func (r *Rules) MinExitsFor(t TileType) int {
	if min, ok := r.MinExits[t]; ok {
		return min
	}
	return 1
}

// MaxExitsFor returns the maximum passage count for a tile type.
func (r *Rules) MaxExitsFor(t TileType) int {
	if max, ok := r.MaxExits[t]; ok {
		return max
	}
	return int(numDirections)
}
