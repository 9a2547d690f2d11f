// Package db persists scan reports into a single-file SQLite inventory
// database and reads them back for the info and browse commands.
package db

import (
	"database/sql"
	"fmt"
)

const entriesTableDDL = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY,
    path TEXT NOT NULL,
    rel_path TEXT UNIQUE NOT NULL,
    parent TEXT NOT NULL,
    name TEXT NOT NULL,
    is_dir INTEGER NOT NULL,
    size INTEGER NOT NULL,
    created INTEGER,
    mtime INTEGER NOT NULL,
    hidden TEXT NOT NULL,
    file_type TEXT NOT NULL,
    kind TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    depth INTEGER NOT NULL,
    levels TEXT NOT NULL
);
`

const scanMetaTableDDL = `
CREATE TABLE IF NOT EXISTS scan_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    root_path TEXT NOT NULL,
    start_time INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,
    total_size INTEGER DEFAULT 0,
    file_count INTEGER DEFAULT 0,
    dir_count INTEGER DEFAULT 0,
    error_count INTEGER DEFAULT 0,
    max_depth INTEGER DEFAULT 0,
    interrupted INTEGER DEFAULT 0
);
`

const scanErrorsTableDDL = `
CREATE TABLE IF NOT EXISTS scan_errors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL,
    kind TEXT NOT NULL,
    message TEXT NOT NULL
);
`

const entriesParentIndexDDL = `CREATE INDEX IF NOT EXISTS idx_entries_parent ON entries(parent);`
const entriesParentSizeIndexDDL = `CREATE INDEX IF NOT EXISTS idx_entries_parent_size ON entries(parent, size DESC);`

// InitSchema creates all tables and indexes in the database.
func InitSchema(db *sql.DB) error {
	ddls := []string{
		entriesTableDDL,
		scanMetaTableDDL,
		scanErrorsTableDDL,
		entriesParentIndexDDL,
		entriesParentSizeIndexDDL,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// ApplyWritePragmas configures SQLite for fast bulk ingestion.
func ApplyWritePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
	}
	return applyPragmas(db, pragmas)
}

// ApplyReadPragmas configures SQLite for read-only browsing.
func ApplyReadPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA query_only = ON",
	}
	return applyPragmas(db, pragmas)
}

// Finalize compacts the database into a single self-contained file.
func Finalize(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA wal_checkpoint(TRUNCATE)",
		"PRAGMA journal_mode = DELETE",
		"PRAGMA optimize",
	}
	return applyPragmas(db, pragmas)
}

func applyPragmas(db *sql.DB, pragmas []string) error {
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}
