// mapview renders a generated floor document as an ASCII map.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lawnchairsociety/wavegrid/floor"
	"github.com/lawnchairsociety/wavegrid/internal/config"
	"github.com/lawnchairsociety/wavegrid/internal/store"
)

func main() {
	inputFile := flag.String("input", "", "Path to a floor YAML file")
	dbWorld := flag.String("world", "", "Load the floor from the snapshot store for this world")
	floorNum := flag.Int("floor", 1, "Floor number to load from the store")
	configPath := flag.String("config", "config.yaml", "Path to config file (for store settings)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	flag.Parse()

	doc, err := loadDocument(*inputFile, *dbWorld, *floorNum, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading floor: %v\n", err)
		os.Exit(1)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Floor %d - %s (seed %d)\n", doc.Floor, doc.World, doc.Seed))
	output.WriteString(strings.Repeat("=", 40) + "\n\n")
	renderGrid(&output, doc)
	if *showLegend {
		output.WriteString(legend())
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

// loadDocument reads a floor document from a YAML file or from the
// snapshot store.
func loadDocument(inputFile, world string, floorNum int, configPath string) (*floor.Document, error) {
	if inputFile != "" {
		return floor.LoadDocument(inputFile)
	}
	if world == "" {
		return nil, fmt.Errorf("either -input or -world is required")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	var db *store.Store
	if cfg.Store.Driver == "postgres" {
		db, err = store.OpenPostgres(cfg.Store.DSN)
	} else {
		db, err = store.Open(cfg.Store.SQLitePath)
	}
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap, err := db.LoadFloor(world, floorNum)
	if err != nil {
		return nil, err
	}
	return floor.DecodeDocument(bytes.NewReader(snap.Data))
}

// renderGrid draws the floor as a grid of 5-character cells with
// passage markers between them.
func renderGrid(output *strings.Builder, doc *floor.Document) {
	if len(doc.Rooms) == 0 {
		output.WriteString("  (No rooms to display)\n")
		return
	}

	minX, maxX := 1<<30, -(1 << 30)
	minY, maxY := 1<<30, -(1 << 30)
	byPos := make(map[[2]int]*floor.Room, len(doc.Rooms))
	for _, room := range doc.Rooms {
		byPos[[2]int{room.X, room.Y}] = room
		minX, maxX = min(minX, room.X), max(maxX, room.X)
		minY, maxY = min(minY, room.Y), max(maxY, room.Y)
	}

	for y := minY; y <= maxY; y++ {
		// Top row: north passages
		for x := minX; x <= maxX; x++ {
			if room := byPos[[2]int{x, y}]; room != nil && hasExit(room, "north") {
				output.WriteString("  |  ")
			} else {
				output.WriteString("     ")
			}
		}
		output.WriteString("\n")

		// Middle row: west passage, room symbol, east passage
		for x := minX; x <= maxX; x++ {
			room := byPos[[2]int{x, y}]
			if room == nil {
				output.WriteString("     ")
				continue
			}
			if hasExit(room, "west") {
				output.WriteString("--")
			} else {
				output.WriteString("  ")
			}
			output.WriteString("[" + roomSymbol(room) + "]")
			// East passages render as the next cell's west side, so the
			// cells stay a uniform five characters wide.
		}
		output.WriteString("\n")

		// Bottom row: south passages
		for x := minX; x <= maxX; x++ {
			if room := byPos[[2]int{x, y}]; room != nil && hasExit(room, "south") {
				output.WriteString("  |  ")
			} else {
				output.WriteString("     ")
			}
		}
		output.WriteString("\n")
	}
	output.WriteString("\n")
}

func hasExit(room *floor.Room, direction string) bool {
	_, ok := room.Exits[direction]
	return ok
}

// roomSymbol returns the one-character map symbol for a room.
func roomSymbol(room *floor.Room) string {
	switch room.Type {
	case "corridor":
		return "C"
	case "room":
		return "R"
	case "dead_end":
		return "D"
	case "treasure":
		return "T"
	case "boss":
		return "B"
	case "stairs_up":
		return "U"
	case "stairs_down":
		return "S"
	default:
		return "?"
	}
}

func legend() string {
	return `Legend:
  [C] Corridor    [R] Room       [D] Dead End
  [T] Treasure    [B] Boss Lair
  [U] Stairs Up   [S] Stairs Down
`
}
