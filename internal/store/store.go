// Package store provides SQL-backed persistence for generated floor
// snapshots. SQLite is the default backend; PostgreSQL is available for
// shared deployments.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no snapshot exists for the requested key.
var ErrNotFound = errors.New("store: snapshot not found")

// Store wraps the SQL connection and provides snapshot persistence.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Snapshot is one persisted floor record.
type Snapshot struct {
	World string
	Floor int
	Seed  int64
	Data  []byte
}

// Open opens or creates a SQLite-backed store at the given path.
func Open(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return openDSN(NewDialect(DialectSQLite), path)
}

// OpenPostgres opens a PostgreSQL-backed store with the given DSN.
func OpenPostgres(dsn string) (*Store, error) {
	return openDSN(NewDialect(DialectPostgres), dsn)
}

func openDSN(dialect Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run init statement: %w", err)
		}
	}

	s := &Store{db: db, dialect: dialect}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS floors (
		id %s,
		world TEXT NOT NULL,
		floor INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(world, floor)
	)`, s.dialect.AutoIncrementPK())

	if _, err := s.db.Exec(stmt); err != nil {
		return err
	}
	return nil
}

// SaveFloor inserts or replaces the snapshot for (world, floor).
func (s *Store) SaveFloor(world string, floor int, seed int64, data []byte) error {
	query := fmt.Sprintf(`INSERT INTO floors (world, floor, seed, data)
		VALUES (%s, %s, %s, %s)
		ON CONFLICT(world, floor) DO UPDATE SET seed = excluded.seed, data = excluded.data`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2),
		s.dialect.Placeholder(3), s.dialect.Placeholder(4))

	if _, err := s.db.Exec(query, world, floor, seed, string(data)); err != nil {
		return fmt.Errorf("failed to save floor %d of %q: %w", floor, world, err)
	}
	return nil
}

// LoadFloor returns the snapshot for (world, floor), or ErrNotFound.
func (s *Store) LoadFloor(world string, floor int) (*Snapshot, error) {
	query := fmt.Sprintf(`SELECT seed, data FROM floors WHERE world = %s AND floor = %s`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2))

	snap := &Snapshot{World: world, Floor: floor}
	var data string
	err := s.db.QueryRow(query, world, floor).Scan(&snap.Seed, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load floor %d of %q: %w", floor, world, err)
	}
	snap.Data = []byte(data)
	return snap, nil
}

// ListFloors returns the floor numbers stored for a world, ascending.
func (s *Store) ListFloors(world string) ([]int, error) {
	query := fmt.Sprintf(`SELECT floor FROM floors WHERE world = %s ORDER BY floor`,
		s.dialect.Placeholder(1))

	rows, err := s.db.Query(query, world)
	if err != nil {
		return nil, fmt.Errorf("failed to list floors of %q: %w", world, err)
	}
	defer rows.Close()

	var floors []int
	for rows.Next() {
		var floor int
		if err := rows.Scan(&floor); err != nil {
			return nil, err
		}
		floors = append(floors, floor)
	}
	return floors, rows.Err()
}

// DeleteFloor removes the snapshot for (world, floor) if present.
func (s *Store) DeleteFloor(world string, floor int) error {
	query := fmt.Sprintf(`DELETE FROM floors WHERE world = %s AND floor = %s`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2))

	if _, err := s.db.Exec(query, world, floor); err != nil {
		return fmt.Errorf("failed to delete floor %d of %q: %w", floor, world, err)
	}
	return nil
}
