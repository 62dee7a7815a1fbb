package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config describes how to open a connection.
type Config struct {
	// Driver selects the backend. When empty it is detected from URL.
	Driver Driver
	// URL is the Postgres connection string. Ignored for SQLite.
	URL string
	// SQLitePath is the database file path. Ignored for Postgres.
	SQLitePath string
	// MaxConns caps the pool size. Zero means the driver default.
	MaxConns int
}

// Driver subpackages register their constructors here so this package does
// not import them. Callers blank-import the subpackage for the backend they
// want.
var (
	newSQLiteConnection   func(ctx context.Context, cfg Config) (Connection, error)
	newPostgresConnection func(ctx context.Context, cfg Config) (Connection, error)
)

// RegisterSQLiteDriver installs the SQLite constructor.
func RegisterSQLiteDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	newSQLiteConnection = fn
}

// RegisterPostgresDriver installs the Postgres constructor.
func RegisterPostgresDriver(fn func(ctx context.Context, cfg Config) (Connection, error)) {
	newPostgresConnection = fn
}

// NewConnection opens a connection for the configured backend.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}

	switch driver {
	case DriverSQLite:
		if newSQLiteConnection == nil {
			return nil, fmt.Errorf("sqlite driver not registered, import database/sqlite")
		}
		return newSQLiteConnection(ctx, cfg)
	case DriverPostgres:
		if newPostgresConnection == nil {
			return nil, fmt.Errorf("postgres driver not registered, import database/postgres")
		}
		return newPostgresConnection(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DefaultSQLitePath is the local database file under the user's home
// directory.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "agendalo.db"
	}
	return filepath.Join(home, ".agendalo", "agendalo.db")
}

// DefaultLocalConfig is the zero-setup local configuration.
func DefaultLocalConfig() Config {
	return Config{Driver: DriverSQLite, SQLitePath: DefaultSQLitePath()}
}

// EnsureDirectory creates the parent directory of a database file.
func EnsureDirectory(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
