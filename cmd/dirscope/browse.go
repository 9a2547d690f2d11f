package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sztaroszta/dirscope/internal/db"
	"github.com/sztaroszta/dirscope/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	_ "modernc.org/sqlite"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse an inventory database interactively",
	Long:  `Open an interactive TUI to browse a scanned directory tree with sizes and metadata.`,
	RunE:  runBrowse,
}

var browseDB string

func init() {
	browseCmd.Flags().StringVarP(&browseDB, "db", "d", "", "Path to inventory database file")
	browseCmd.MarkFlagRequired("db")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	database, err := sql.Open("sqlite", browseDB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := db.ApplyReadPragmas(database); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	model := tui.NewModel(database)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
