// Package config loads the shared YAML configuration for the generation
// tools: generator parameters, snapshot store settings, the map server,
// and logging.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/wavegrid/internal/logger"
)

// Config holds tool-wide configuration settings.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Store     StoreConfig     `yaml:"store"`
	Server    ServerConfig    `yaml:"server"`
	Paths     PathsConfig     `yaml:"paths"`
	Logging   logger.Config   `yaml:"logging"`
}

// GeneratorConfig holds floor generation parameters.
type GeneratorConfig struct {
	// Seed is the base world generation seed (0 = derived from time by
	// the tools).
	Seed int64 `yaml:"seed"`

	// Floors is how many floors to generate.
	Floors int `yaml:"floors"`

	// GridSize is the side length of the generation grid (0 = derived
	// from the room counts).
	GridSize int `yaml:"grid_size"`

	// MinRooms and MaxRooms bound the room count per floor.
	MinRooms int `yaml:"min_rooms"`
	MaxRooms int `yaml:"max_rooms"`
}

// StoreConfig holds snapshot store settings.
type StoreConfig struct {
	// Driver selects the database backend: "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// SQLitePath is the database file location for the sqlite driver.
	SQLitePath string `yaml:"sqlite_path"`

	// DSN is the connection string for the postgres driver.
	DSN string `yaml:"dsn"`
}

// ServerConfig holds map server settings.
type ServerConfig struct {
	// Addr is the listen address for the map server.
	Addr string `yaml:"addr"`

	// AllowedOrigins is a list of origins allowed to connect via
	// WebSocket. Empty list enforces same-origin policy. Use "*" to
	// allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// PathsConfig holds file and directory paths for generated data.
type PathsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Seed:     0, // 0 = derived from time
			Floors:   1,
			MinRooms: 20,
			MaxRooms: 50,
		},
		Store: StoreConfig{
			Driver:     "sqlite",
			SQLitePath: "data/floors.db",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
		},
		Paths: PathsConfig{
			OutputDir: "data/floors",
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, returns the default config.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// IsOriginAllowed checks if the given origin may open a WebSocket.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *ServerConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
