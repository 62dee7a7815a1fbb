// Package migrations applies the embedded schema to a fresh or existing
// database. Migrations are plain SQL files, one per version, applied in
// lexical order and recorded in schema_migrations.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/dimun/agendalo/internal/shared/infrastructure/database"
)

//go:embed sql/sqlite/*.up.sql sql/postgres/*.up.sql
var files embed.FS

// Run applies all pending migrations for the connection's driver.
func Run(ctx context.Context, conn database.Connection) error {
	if _, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	dir := "sql/" + string(conn.Driver())
	names, err := migrationNames(dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		version := strings.TrimSuffix(name, ".up.sql")
		if _, ok := applied[version]; ok {
			continue
		}
		body, err := files.ReadFile(dir + "/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := apply(ctx, conn, version, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
	}
	return nil
}

func appliedVersions(ctx context.Context, conn database.Connection) (map[string]struct{}, error) {
	rows, err := conn.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = struct{}{}
	}
	return applied, rows.Err()
}

func migrationNames(dir string) ([]string, error) {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func apply(ctx context.Context, conn database.Connection, version, body string) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range splitStatements(body) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	record := `INSERT INTO schema_migrations (version, applied_at) VALUES (?, datetime('now'))`
	if conn.Driver() == database.DriverPostgres {
		record = `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, now()::text)`
	}
	if _, err := tx.Exec(ctx, record, version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// splitStatements breaks a migration file into statements on semicolons at
// line ends. The embedded migrations keep one statement per block, so no
// SQL-aware parsing is needed.
func splitStatements(body string) []string {
	var stmts []string
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			stmts = append(stmts, part)
		}
	}
	return stmts
}
