// ABOUTME: Versioned schema migrations
// ABOUTME: Applies each step once; every step is safe to repeat from a concurrent process
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{version: 1, name: "base tables", sql: schemaV1},
	{version: 2, name: "lookup indexes", sql: schemaV2},
}

// currentSchemaVersion is the highest version known to this build.
var currentSchemaVersion = migrations[len(migrations)-1].version

// schemaVersion returns the highest applied migration, 0 for a fresh file.
func schemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("check schema version: %w", err)
	}
	return version, nil
}

// migrate brings the schema up to currentSchemaVersion.
//
// Statements use IF NOT EXISTS and the version row uses INSERT OR IGNORE,
// so two processes starting against the same file both succeed.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionTable); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	version, err := schemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		log.Debug("storage: migration applied", "version", m.version, "name", m.name)
	}

	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.sql); err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}

	_, err = tx.Exec(
		"INSERT OR IGNORE INTO schema_version (version, applied_at) VALUES (?, ?)",
		m.version, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
