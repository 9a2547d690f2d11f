package db

import (
	"database/sql"
	"fmt"
	"path"
	"strings"

	"github.com/sztaroszta/dirscope/internal/entry"
)

// tagSeparator joins a tag set into a single text column.
const tagSeparator = ", "

// WriteReport stores a completed scan report in one transaction: every
// entry, every recorded error, and the run statistics.
func WriteReport(db *sql.DB, report *entry.Report) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertEntry, err := tx.Prepare(`
		INSERT INTO entries (path, rel_path, parent, name, is_dir, size, created, mtime, hidden, file_type, kind, tags, depth, levels)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer insertEntry.Close()

	for _, e := range report.Entries {
		var created any
		if e.Created != nil {
			created = e.Created.Unix()
		}
		isDir := 0
		if e.IsDir {
			isDir = 1
		}
		_, err := insertEntry.Exec(
			e.Path, e.RelPath, parentOf(e.RelPath), e.Name, isDir, e.Size,
			created, e.Modified.Unix(), e.Hidden, e.FileType, e.Kind,
			strings.Join(e.Tags, tagSeparator), e.Depth, strings.Join(e.Levels, "/"),
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.RelPath, err)
		}
	}

	insertError, err := tx.Prepare(`INSERT INTO scan_errors (path, kind, message) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare error insert: %w", err)
	}
	defer insertError.Close()

	for _, se := range report.Errors {
		if _, err := insertError.Exec(se.Path, se.Kind.String(), se.Message); err != nil {
			return fmt.Errorf("failed to insert scan error: %w", err)
		}
	}

	interrupted := 0
	if report.Interrupted {
		interrupted = 1
	}
	_, err = tx.Exec(`
		INSERT INTO scan_meta (id, root_path, start_time, elapsed_ms, total_size, file_count, dir_count, error_count, max_depth, interrupted)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.Root, report.Started.Unix(), report.Elapsed.Milliseconds(),
		report.TotalSize, report.Files, report.Dirs, report.ErrorCount(),
		report.MaxDepth, interrupted)
	if err != nil {
		return fmt.Errorf("failed to insert scan metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}
	return nil
}

// parentOf returns the rel_path of an entry's containing directory,
// "." for top-level entries.
func parentOf(rel string) string {
	return path.Dir(rel)
}
