package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("storage: create schema_migrations: %w", err)
	}
	names, err := migrationNames(".up.sql")
	if err != nil {
		return err
	}
	for _, name := range names {
		version := strings.TrimSuffix(path.Base(name), ".up.sql")
		var applied int
		if err := db.QueryRow("SELECT COUNT(1) FROM schema_migrations WHERE name = ?", version).Scan(&applied); err != nil {
			return fmt.Errorf("storage: check migration %s: %w", version, err)
		}
		if applied > 0 {
			continue
		}
		if err := runMigration(db, name); err != nil {
			return err
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (name) VALUES (?)", version); err != nil {
			return fmt.Errorf("storage: record migration %s: %w", version, err)
		}
	}
	return nil
}

func MigrateDown(db *sql.DB) error {
	names, err := migrationNames(".down.sql")
	if err != nil {
		return err
	}
	for i := len(names) - 1; i >= 0; i-- {
		if err := runMigration(db, names[i]); err != nil {
			return err
		}
	}
	if _, err := db.Exec("DROP TABLE IF EXISTS schema_migrations"); err != nil {
		return fmt.Errorf("storage: drop schema_migrations: %w", err)
	}
	return nil
}

func migrationNames(suffix string) ([]string, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("storage: glob migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func runMigration(db *sql.DB, name string) error {
	stmt, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("storage: read migration %s: %w", name, err)
	}
	if _, err := db.Exec(string(stmt)); err != nil {
		return fmt.Errorf("storage: apply migration %s: %w", name, err)
	}
	return nil
}
