package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Meta holds the statistics stored alongside an inventory.
type Meta struct {
	RootPath    string
	StartTime   time.Time
	Elapsed     time.Duration
	TotalSize   int64
	FileCount   int64
	DirCount    int64
	ErrorCount  int64
	MaxDepth    int
	Interrupted bool
}

// DisplayEntry is the row shape the browse TUI and listings consume.
type DisplayEntry struct {
	Name     string
	RelPath  string
	IsDir    bool
	Size     int64
	Kind     string
	Tags     []string
	FileType string
	Hidden   string
	Modified time.Time
}

// GetMeta reads the scan statistics.
func GetMeta(db *sql.DB) (*Meta, error) {
	var m Meta
	var start, elapsedMs int64
	var interrupted int
	err := db.QueryRow(`
		SELECT root_path, start_time, elapsed_ms, total_size, file_count, dir_count, error_count, max_depth, interrupted
		FROM scan_meta WHERE id = 1
	`).Scan(&m.RootPath, &start, &elapsedMs, &m.TotalSize, &m.FileCount,
		&m.DirCount, &m.ErrorCount, &m.MaxDepth, &interrupted)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan metadata: %w", err)
	}
	m.StartTime = time.Unix(start, 0)
	m.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	m.Interrupted = interrupted != 0
	return &m, nil
}

// Children lists the direct children of a directory by its rel_path
// ("." for the root), ordered by the given sort column.
func Children(db *sql.DB, parentRel, sortBy string, limit int) ([]DisplayEntry, error) {
	order := "size DESC, name ASC"
	switch sortBy {
	case "name":
		order = "name ASC"
	case "kind":
		order = "kind ASC, name ASC"
	}

	rows, err := db.Query(fmt.Sprintf(`
		SELECT name, rel_path, is_dir, size, kind, tags, file_type, hidden, mtime
		FROM entries WHERE parent = ?
		ORDER BY %s LIMIT ?
	`, order), parentRel, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of %s: %w", parentRel, err)
	}
	defer rows.Close()

	var out []DisplayEntry
	for rows.Next() {
		var e DisplayEntry
		var isDir int
		var tags string
		var mtime int64
		if err := rows.Scan(&e.Name, &e.RelPath, &isDir, &e.Size, &e.Kind, &tags, &e.FileType, &e.Hidden, &mtime); err != nil {
			return nil, fmt.Errorf("failed to scan child row: %w", err)
		}
		e.IsDir = isDir != 0
		if tags != "" {
			e.Tags = strings.Split(tags, tagSeparator)
		}
		e.Modified = time.Unix(mtime, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ScanErrorRow is one recorded read failure.
type ScanErrorRow struct {
	Path    string
	Kind    string
	Message string
}

// Errors lists the read failures recorded during the scan.
func Errors(db *sql.DB) ([]ScanErrorRow, error) {
	rows, err := db.Query(`SELECT path, kind, message FROM scan_errors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan errors: %w", err)
	}
	defer rows.Close()

	var out []ScanErrorRow
	for rows.Next() {
		var r ScanErrorRow
		if err := rows.Scan(&r.Path, &r.Kind, &r.Message); err != nil {
			return nil, fmt.Errorf("failed to scan error row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
