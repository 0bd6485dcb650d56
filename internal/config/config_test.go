package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Generator.MinRooms != 20 {
		t.Errorf("Generator.MinRooms = %d, want 20", cfg.Generator.MinRooms)
	}
	if cfg.Generator.MaxRooms != 50 {
		t.Errorf("Generator.MaxRooms = %d, want 50", cfg.Generator.MaxRooms)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("Store.Driver = %q, want sqlite", cfg.Store.Driver)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.MaxMessageSize != 4096 {
		t.Errorf("Server.MaxMessageSize = %d, want 4096", cfg.Server.MaxMessageSize)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}
	if cfg.Generator.MinRooms != 20 {
		t.Errorf("missing file should yield defaults, got MinRooms = %d", cfg.Generator.MinRooms)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
generator:
  seed: 99
  floors: 5
  min_rooms: 8
  max_rooms: 16
store:
  driver: postgres
  dsn: "host=localhost dbname=floors sslmode=disable"
server:
  addr: ":9090"
  allowed_origins: ["*"]
logging:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Generator.Seed != 99 {
		t.Errorf("Generator.Seed = %d, want 99", cfg.Generator.Seed)
	}
	if cfg.Generator.Floors != 5 {
		t.Errorf("Generator.Floors = %d, want 5", cfg.Generator.Floors)
	}
	if cfg.Generator.MinRooms != 8 || cfg.Generator.MaxRooms != 16 {
		t.Errorf("room bounds = %d..%d, want 8..16", cfg.Generator.MinRooms, cfg.Generator.MaxRooms)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("Store.Driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Logging.Level = %q, want DEBUG", cfg.Logging.Level)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("generator: ["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("LoadConfig should report a parse error")
	}
	if cfg == nil || cfg.Generator.MinRooms != 20 {
		t.Error("LoadConfig should fall back to defaults on parse error")
	}
}

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		host    string
		want    bool
	}{
		{"wildcard", []string{"*"}, "http://evil.example", "localhost:8080", true},
		{"exact match", []string{"http://localhost:3000"}, "http://localhost:3000", "localhost:8080", true},
		{"no match", []string{"http://localhost:3000"}, "http://other.example", "localhost:8080", false},
		{"same origin", nil, "http://localhost:8080", "localhost:8080", true},
		{"cross origin denied", nil, "http://other.example", "localhost:8080", false},
		{"no origin header", nil, "", "localhost:8080", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &ServerConfig{AllowedOrigins: tc.origins}
			if got := c.IsOriginAllowed(tc.origin, tc.host); got != tc.want {
				t.Errorf("IsOriginAllowed(%q, %q) = %v, want %v", tc.origin, tc.host, got, tc.want)
			}
		})
	}
}
