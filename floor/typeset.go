package floor

// TypeSet is a set of tile types packed into a bitmask. It is the
// superposition payload of a floor cell: cheap to clone, deterministic
// to iterate, and directly serializable.
type TypeSet uint16

// Has reports whether the type is in the set.
func (s TypeSet) Has(t TileType) bool {
	return s&(1<<uint(t)) != 0
}

// Add returns the set with the type added.
func (s TypeSet) Add(t TileType) TypeSet {
	return s | 1<<uint(t)
}

// Remove returns the set with the type removed.
func (s TypeSet) Remove(t TileType) TypeSet {
	return s &^ (1 << uint(t))
}

// Len returns the number of types in the set.
func (s TypeSet) Len() int {
	n := 0
	for t := TileType(0); t < numTileTypes; t++ {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// First returns the lowest type in the set, or TileEmpty when the set is
// empty.
func (s TypeSet) First() TileType {
	for t := TileType(0); t < numTileTypes; t++ {
		if s.Has(t) {
			return t
		}
	}
	return TileEmpty
}

// Types returns the members of the set in ascending order.
func (s TypeSet) Types() []TileType {
	types := make([]TileType, 0, s.Len())
	for t := TileType(0); t < numTileTypes; t++ {
		if s.Has(t) {
			types = append(types, t)
		}
	}
	return types
}
