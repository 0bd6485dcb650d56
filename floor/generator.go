package floor

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/lawnchairsociety/wavegrid/internal/logger"
	"github.com/lawnchairsociety/wavegrid/wfc"
)

var (
	ErrNoSolution   = errors.New("floor: failed to find valid layout")
	ErrNotConnected = errors.New("floor: generated layout is not fully connected")
	ErrInvalidSize  = errors.New("floor: invalid grid size")
)

// Config contains parameters for floor generation.
type Config struct {
	FloorNumber   int   // The floor number (1-indexed, 0 = city)
	Seed          int64 // Base tower seed
	GridSize      int   // Grid side length (0 = derived from room counts)
	MinRooms      int   // Minimum number of rooms
	MaxRooms      int   // Maximum number of rooms
	TreasureCount int   // Number of treasure rooms to place
	IsBossFloor   bool  // Whether this is a boss floor (every 10th)
}

// DefaultConfig returns reasonable defaults for a floor.
func DefaultConfig(floorNumber int, seed int64) *Config {
	cfg := &Config{
		FloorNumber:   floorNumber,
		Seed:          seed,
		MinRooms:      20,
		MaxRooms:      50,
		TreasureCount: 1 + (floorNumber / 5), // More treasure on higher floors
		IsBossFloor:   floorNumber > 0 && floorNumber%10 == 0,
	}

	if cfg.TreasureCount > 3 {
		cfg.TreasureCount = 3
	}

	return cfg
}

// Floor is the output of floor generation.
type Floor struct {
	FloorNumber   int
	Tiles         []*Tile
	StairsUp      *Tile // The tile with stairs going up (nil for floor 0)
	StairsDown    *Tile // The tile with stairs coming down (nil for floor 0)
	Boss          *Tile // The boss tile (nil if not a boss floor)
	Treasures     []*Tile
	Width, Height int
}

// Generator grows floors inside a bounded world and retries until the
// constraints are satisfied.
type Generator struct {
	config     *Config
	maxRetries int
}

// NewGenerator creates a floor generator for the given config.
func NewGenerator(config *Config) *Generator {
	return &Generator{
		config:     config,
		maxRetries: 50,
	}
}

// Generate creates a floor layout. Generation is deterministic for a
// given config.
func (g *Generator) Generate() (*Floor, error) {
	size := g.gridSize()
	if size < 3 {
		return nil, ErrInvalidSize
	}

	var lastErr error
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		// Floor seed = tower seed + floor number, perturbed per attempt.
		seed := g.config.Seed + int64(g.config.FloorNumber) + int64(attempt*1000)

		floor, err := g.generateOnce(seed, size)
		if err != nil {
			lastErr = err
			logger.Debug("floor generation attempt failed",
				"floor", g.config.FloorNumber, "attempt", attempt, "error", err)
			continue
		}
		return floor, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("failed after %d attempts: %w", g.maxRetries, lastErr)
	}
	return nil, ErrNoSolution
}

// gridSize determines an appropriate grid side length for the floor.
func (g *Generator) gridSize() int {
	if g.config.GridSize > 0 {
		return g.config.GridSize
	}
	// The side length scales with the target room count (the min/max
	// average) and is clamped to 8..15.
	target := (g.config.MinRooms + g.config.MaxRooms) / 2
	size := int(float64(target) * 2.5)
	if size < 8 {
		size = 8
	}
	if size > 15 {
		size = 15
	}
	return size
}

// generateOnce runs a single growth attempt.
func (g *Generator) generateOnce(seed int64, size int) (*Floor, error) {
	rules := DefaultRules(seed)
	world := wfc.NewWorld[*Cell, TileType](New, rules, wfc.NewBounds(0, 0, size, size))
	rng := rand.New(rand.NewSource(seed))

	target := g.config.MinRooms
	if g.config.MaxRooms > g.config.MinRooms {
		target += rng.Intn(g.config.MaxRooms - g.config.MinRooms + 1)
	}

	// Start from the center and grow outward. Each new tile collapses a
	// cell the propagation cascade has already narrowed against its
	// committed neighbors, so growth never places an illegal pair.
	start := wfc.Coord{X: size / 2, Y: size / 2}
	world.Collapse(start.X, start.Y)

	placed := []wfc.Coord{start}
	parent := map[wfc.Coord]wfc.Coord{}
	frontier := []wfc.Coord{start}

	maxIterations := size * size * 10
	for i := 0; i < maxIterations && len(frontier) > 0 && len(placed) < target; i++ {
		idx := rng.Intn(len(frontier))
		at := frontier[idx]

		dirs := g.openDirections(world, rules, at)
		if len(dirs) == 0 {
			frontier = append(frontier[:idx], frontier[idx+1:]...)
			continue
		}

		dir := dirs[rng.Intn(len(dirs))]
		dx, dy := dir.Offset()
		next := wfc.Coord{X: at.X + dx, Y: at.Y + dy}

		world.Collapse(next.X, next.Y)
		placed = append(placed, next)
		parent[next] = at
		frontier = append(frontier, next)
	}

	if len(placed) < g.config.MinRooms {
		return nil, fmt.Errorf("only generated %d rooms, need at least %d", len(placed), g.config.MinRooms)
	}

	floor := g.extract(world, rules, placed, parent, size)
	if err := g.placeSpecialTiles(floor, rng); err != nil {
		return nil, err
	}
	if !isConnected(floor.Tiles) {
		return nil, ErrNotConnected
	}

	return floor, nil
}

// openDirections returns the directions from a placed tile into cells
// that are in bounds, not yet collapsed, and whose addition would not
// push the tile past its exit limit.
func (g *Generator) openDirections(world *wfc.World[*Cell, TileType, *Rules], rules *Rules, at wfc.Coord) []Direction {
	tile, ok := world.Read(at.X, at.Y).Collapsed()
	if !ok {
		return nil
	}

	collapsed := 0
	var open []Direction
	for _, dir := range AllDirections() {
		dx, dy := dir.Offset()
		nx, ny := at.X+dx, at.Y+dy
		if !world.Bounds().Contains(nx, ny) {
			continue
		}
		if world.Read(nx, ny).IsCollapsed() {
			collapsed++
			continue
		}
		open = append(open, dir)
	}

	// Collapsed neighbors become exits, so they count against the limit.
	if collapsed >= rules.MaxExitsFor(*tile) {
		return nil
	}
	return open
}

// extract converts the collapsed world into Tile objects and derives
// their exits. Every tile keeps the passage to its growth parent, which
// guarantees a connected spanning tree; further passages open between
// compatible neighbors that still have exit capacity.
func (g *Generator) extract(world *wfc.World[*Cell, TileType, *Rules], rules *Rules, placed []wfc.Coord, parent map[wfc.Coord]wfc.Coord, size int) *Floor {
	byCoord := make(map[wfc.Coord]*Tile, len(placed))
	tiles := make([]*Tile, 0, len(placed))
	for _, at := range placed {
		t, ok := world.Read(at.X, at.Y).Collapsed()
		if !ok {
			continue
		}
		tile := NewTile(*t, at.X, at.Y)
		byCoord[at] = tile
		tiles = append(tiles, tile)
	}
	SortTilesByPosition(tiles)

	// Spanning-tree passages first.
	for child, par := range parent {
		ct, pt := byCoord[child], byCoord[par]
		if ct == nil || pt == nil {
			continue
		}
		dir := directionBetween(par, child)
		pt.SetExit(dir)
		ct.SetExit(dir.Opposite())
	}

	// Then optional passages, in deterministic tile and direction order.
	for _, tile := range tiles {
		for _, dir := range AllDirections() {
			if tile.HasExit(dir) {
				continue
			}
			dx, dy := dir.Offset()
			other := byCoord[wfc.Coord{X: tile.X + dx, Y: tile.Y + dy}]
			if other == nil {
				continue
			}
			if !rules.CanTypesConnect(tile.Type, other.Type) {
				continue
			}
			if tile.ExitCount() >= rules.MaxExitsFor(tile.Type) ||
				other.ExitCount() >= rules.MaxExitsFor(other.Type) {
				continue
			}
			tile.SetExit(dir)
			other.SetExit(dir.Opposite())
		}
	}

	return &Floor{
		FloorNumber: g.config.FloorNumber,
		Tiles:       tiles,
		Width:       size,
		Height:      size,
	}
}

// directionBetween returns the direction of travel from one coordinate
// to an orthogonally adjacent one.
func directionBetween(from, to wfc.Coord) Direction {
	switch {
	case to.Y < from.Y:
		return North
	case to.X > from.X:
		return East
	case to.Y > from.Y:
		return South
	default:
		return West
	}
}

// placeSpecialTiles ensures stairs, boss, and treasure rooms exist by
// converting suitable tiles in place.
func (g *Generator) placeSpecialTiles(floor *Floor, rng *rand.Rand) error {
	var stairsUp, stairsDown, boss *Tile
	var treasures []*Tile

	for _, t := range floor.Tiles {
		switch t.Type {
		case TileStairsUp:
			if stairsUp == nil {
				stairsUp = t
			}
		case TileStairsDown:
			if stairsDown == nil {
				stairsDown = t
			}
		case TileBoss:
			if boss == nil {
				boss = t
			}
		case TileTreasure:
			treasures = append(treasures, t)
		}
	}

	// Stairs exist on every floor above the city.
	if g.config.FloorNumber > 0 && stairsUp == nil {
		stairsUp = g.convertToType(floor.Tiles, TileStairsUp, rng)
		if stairsUp == nil {
			return fmt.Errorf("failed to place stairs up room")
		}
	}
	if g.config.FloorNumber > 0 && stairsDown == nil {
		stairsDown = g.convertToType(floor.Tiles, TileStairsDown, rng)
		if stairsDown == nil {
			return fmt.Errorf("failed to place stairs down room")
		}
	}

	if g.config.IsBossFloor && boss == nil {
		boss = g.convertToType(floor.Tiles, TileBoss, rng)
		if boss == nil {
			return fmt.Errorf("failed to place boss room")
		}
	}

	for len(treasures) < g.config.TreasureCount {
		treasure := g.convertToType(floor.Tiles, TileTreasure, rng)
		if treasure == nil {
			break // Can't place more treasures
		}
		treasures = append(treasures, treasure)
	}

	floor.StairsUp = stairsUp
	floor.StairsDown = stairsDown
	floor.Boss = boss
	floor.Treasures = treasures

	return nil
}

// convertToType finds a convertible tile and changes its type. Dead ends
// are preferred, then rooms, then corridors; within a kind the pick is
// random.
func (g *Generator) convertToType(tiles []*Tile, newType TileType, rng *rand.Rand) *Tile {
	for _, prefType := range []TileType{TileDeadEnd, TileRoom, TileCorridor} {
		var candidates []*Tile
		for _, t := range tiles {
			if t.Type == prefType {
				candidates = append(candidates, t)
			}
		}
		if len(candidates) > 0 {
			chosen := candidates[rng.Intn(len(candidates))]
			chosen.Type = newType
			return chosen
		}
	}
	return nil
}

// isConnected verifies that every tile is reachable from the first one
// by walking exits.
func isConnected(tiles []*Tile) bool {
	if len(tiles) == 0 {
		return true
	}

	byPos := make(map[[2]int]*Tile, len(tiles))
	for _, t := range tiles {
		byPos[[2]int{t.X, t.Y}] = t
	}

	visited := map[[2]int]bool{{tiles[0].X, tiles[0].Y}: true}
	queue := []*Tile{tiles[0]}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range AllDirections() {
			if !current.HasExit(dir) {
				continue
			}
			dx, dy := dir.Offset()
			pos := [2]int{current.X + dx, current.Y + dy}
			if visited[pos] {
				continue
			}
			if neighbor, ok := byPos[pos]; ok {
				visited[pos] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return len(visited) == len(tiles)
}

// SortTilesByPosition sorts tiles by Y then X for deterministic output.
func SortTilesByPosition(tiles []*Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
}

// RoomID generates a stable room identifier for a tile on a floor.
func RoomID(floorNumber, x, y int) string {
	return fmt.Sprintf("floor%d_%d_%d", floorNumber, x, y)
}
