package floor

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Document is the YAML representation of a generated floor, the format
// the tools write to disk and the snapshot store.
type Document struct {
	Floor      int              `yaml:"floor"`
	World      string           `yaml:"world"`
	Seed       int64            `yaml:"seed"`
	StairsUp   string           `yaml:"stairs_up,omitempty"`
	StairsDown string           `yaml:"stairs_down,omitempty"`
	BossRoom   string           `yaml:"boss_room,omitempty"`
	Rooms      map[string]*Room `yaml:"rooms"`
}

// Room is one floor tile in document form.
type Room struct {
	Name  string            `yaml:"name"`
	Type  string            `yaml:"type"`
	X     int               `yaml:"x"`
	Y     int               `yaml:"y"`
	Exits map[string]string `yaml:"exits,omitempty"`
}

// roomNames maps tile types to display names for generated rooms.
var roomNames = map[TileType]string{
	TileCorridor:   "Corridor",
	TileRoom:       "Chamber",
	TileDeadEnd:    "Alcove",
	TileTreasure:   "Treasure Room",
	TileBoss:       "Boss Lair",
	TileStairsUp:   "Stairway Up",
	TileStairsDown: "Stairway Down",
}

// NewDocument converts a generated floor into its document form. Exits
// reference neighbor room IDs by direction name.
func NewDocument(world string, f *Floor, seed int64) *Document {
	doc := &Document{
		Floor: f.FloorNumber,
		World: world,
		Seed:  seed,
		Rooms: make(map[string]*Room, len(f.Tiles)),
	}

	byPos := make(map[[2]int]*Tile, len(f.Tiles))
	for _, t := range f.Tiles {
		byPos[[2]int{t.X, t.Y}] = t
	}

	for _, t := range f.Tiles {
		room := &Room{
			Name:  roomNames[t.Type],
			Type:  t.Type.String(),
			X:     t.X,
			Y:     t.Y,
			Exits: make(map[string]string),
		}
		for _, dir := range AllDirections() {
			if !t.HasExit(dir) {
				continue
			}
			dx, dy := dir.Offset()
			if _, ok := byPos[[2]int{t.X + dx, t.Y + dy}]; ok {
				room.Exits[dir.String()] = RoomID(f.FloorNumber, t.X+dx, t.Y+dy)
			}
		}
		doc.Rooms[RoomID(f.FloorNumber, t.X, t.Y)] = room
	}

	if f.StairsUp != nil {
		doc.StairsUp = RoomID(f.FloorNumber, f.StairsUp.X, f.StairsUp.Y)
	}
	if f.StairsDown != nil {
		doc.StairsDown = RoomID(f.FloorNumber, f.StairsDown.X, f.StairsDown.Y)
	}
	if f.Boss != nil {
		doc.BossRoom = RoomID(f.FloorNumber, f.Boss.X, f.Boss.Y)
	}

	return doc
}

// Encode writes the document as YAML with a short header comment.
func (d *Document) Encode(w io.Writer) error {
	fmt.Fprintf(w, "# Floor %d - %s\n", d.Floor, d.World)
	fmt.Fprintf(w, "# Generated with seed: %d\n", d.Seed)
	fmt.Fprintf(w, "# Room count: %d\n\n", len(d.Rooms))

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteFile writes the document to a YAML file.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := d.Encode(f); err != nil {
		return fmt.Errorf("failed to encode floor: %w", err)
	}
	return nil
}

// DecodeDocument parses a document from YAML.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode floor: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads a document from a YAML file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeDocument(f)
}

// RoomIDs returns the document's room IDs in sorted order, for
// deterministic iteration.
func (d *Document) RoomIDs() []string {
	ids := make([]string, 0, len(d.Rooms))
	for id := range d.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
