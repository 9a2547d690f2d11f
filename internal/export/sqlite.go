package export

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/sztaroszta/dirscope/internal/db"
	"github.com/sztaroszta/dirscope/internal/entry"
)

// WriteSQLite renders the report as a self-contained SQLite inventory
// database, replacing any existing file at outPath.
func WriteSQLite(report *entry.Report, outPath string) error {
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace %s: %w", outPath, err)
	}

	database, err := sql.Open("sqlite", outPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer database.Close()

	if err := db.InitSchema(database); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := db.ApplyWritePragmas(database); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := db.WriteReport(database, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := db.Finalize(database); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}
	return nil
}
