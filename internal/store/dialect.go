package store

// Dialect abstracts SQL syntax differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	// SQLite: "sqlite", PostgreSQL: "postgres"
	DriverName() string

	// Placeholder returns the parameter placeholder for the given
	// position (1-indexed). SQLite: "?", PostgreSQL: "$1", "$2", etc.
	Placeholder(position int) string

	// AutoIncrementPK returns the column definition for an
	// auto-incrementing integer primary key.
	AutoIncrementPK() string

	// InitStatements returns database-specific initialization statements
	// run right after the connection opens.
	InitStatements() []string

	// IsDuplicateKeyError returns true if the error is a unique
	// constraint violation.
	IsDuplicateKeyError(err error) bool
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a new Dialect for the given type.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
