// Package export renders a completed scan report into its output
// formats. The row schema is shared across formats: row number, path,
// size (KB and raw bytes), timestamps, hidden status, tags, kind, file
// type, and one column per folder level.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sztaroszta/dirscope/internal/entry"
)

// Format selects an output renderer.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// DetectFormat resolves the output format from an explicit selection or,
// when empty or "auto", from the output file extension.
func DetectFormat(outPath, explicit string) (Format, error) {
	switch explicit {
	case string(FormatXLSX), string(FormatCSV), string(FormatSQLite):
		return Format(explicit), nil
	case "", "auto":
	default:
		return "", fmt.Errorf("unknown output format %q", explicit)
	}

	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("cannot infer format from %q (expected .xlsx, .csv, or .db)", outPath)
	}
}

// Write renders the report to outPath in the given format.
func Write(report *entry.Report, outPath string, format Format, sheet string) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(report, outPath, sheet)
	case FormatCSV:
		return WriteCSV(report, outPath)
	case FormatSQLite:
		return WriteSQLite(report, outPath)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// headers returns the header row for the tabular formats.
func headers(maxDepth int) []string {
	h := []string{
		"#", "Path", "Size (KB)", "Size (Bytes)", "Creation Date",
		"Last Modified", "Is Hidden?", "Tags", "Kind", "File Type",
	}
	for i := 1; i <= maxDepth; i++ {
		h = append(h, fmt.Sprintf("Level %d", i))
	}
	return h
}

// fixedColumns is the number of columns before the level columns.
const fixedColumns = 10

const timeLayout = "2006-01-02 15:04:05"
