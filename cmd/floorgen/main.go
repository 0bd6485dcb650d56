// floorgen generates dungeon floors and writes them as YAML documents,
// optionally persisting them to the snapshot store as well.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lawnchairsociety/wavegrid/floor"
	"github.com/lawnchairsociety/wavegrid/internal/config"
	"github.com/lawnchairsociety/wavegrid/internal/logger"
	"github.com/lawnchairsociety/wavegrid/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	world := flag.String("world", "human", "World identifier for the generated floors")
	seed := flag.Int64("seed", 0, "Generation seed (0 = from config, or time-based)")
	floors := flag.Int("floors", 0, "Number of floors to generate (0 = from config)")
	outputDir := flag.String("output", "", "Output directory (empty = from config)")
	persist := flag.Bool("persist", false, "Also save floors to the snapshot store")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg.Logging.ApplyEnvOverrides()
	if err := logger.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = cfg.Generator.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *floors == 0 {
		*floors = cfg.Generator.Floors
	}
	if *outputDir == "" {
		*outputDir = cfg.Paths.OutputDir
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Errorf("Failed to create output directory: %v", err)
		os.Exit(1)
	}

	var db *store.Store
	if *persist {
		db, err = openStore(cfg.Store)
		if err != nil {
			logger.Errorf("Failed to open snapshot store: %v", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	logger.Info("Generating floors", "world", *world, "floors", *floors, "seed", *seed)

	for n := 1; n <= *floors; n++ {
		if err := generateFloor(cfg, db, *world, n, *seed, *outputDir); err != nil {
			logger.Errorf("Floor %d failed: %v", n, err)
			os.Exit(1)
		}
		logger.Info("Floor written", "floor", n)
	}
}

// generateFloor generates one floor and writes it to disk and, when a
// store is open, to the database.
func generateFloor(cfg *config.Config, db *store.Store, world string, n int, seed int64, outputDir string) error {
	gcfg := floor.DefaultConfig(n, seed)
	if cfg.Generator.MinRooms > 0 {
		gcfg.MinRooms = cfg.Generator.MinRooms
	}
	if cfg.Generator.MaxRooms > 0 {
		gcfg.MaxRooms = cfg.Generator.MaxRooms
	}
	if cfg.Generator.GridSize > 0 {
		gcfg.GridSize = cfg.Generator.GridSize
	}

	generated, err := floor.NewGenerator(gcfg).Generate()
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	doc := floor.NewDocument(world, generated, seed)

	path := filepath.Join(outputDir, fmt.Sprintf("floor_%d.yaml", n))
	if err := doc.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}

	if db != nil {
		var buf bytes.Buffer
		if err := doc.Encode(&buf); err != nil {
			return fmt.Errorf("failed to encode floor: %w", err)
		}
		if err := db.SaveFloor(world, n, seed, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to persist floor: %w", err)
		}
	}

	return nil
}

// openStore opens the configured snapshot store backend.
func openStore(cfg config.StoreConfig) (*store.Store, error) {
	if cfg.Driver == "postgres" {
		return store.OpenPostgres(cfg.DSN)
	}
	return store.Open(cfg.SQLitePath)
}
