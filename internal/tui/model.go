// Package tui is an interactive browser over a SQLite inventory
// database: folder navigation with cumulative sizes, kinds, and tags.
package tui

import (
	"database/sql"
	"path"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sztaroszta/dirscope/internal/db"
)

// SortColumn represents the current sort field.
type SortColumn int

const (
	SortBySize SortColumn = iota
	SortByName
	SortByKind
)

func (s SortColumn) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortByKind:
		return "kind"
	default:
		return "size"
	}
}

const pageSize = 1000

// Model holds the TUI state.
type Model struct {
	db         *sql.DB
	meta       *db.Meta
	currentRel string
	entries    []db.DisplayEntry
	cursor     int
	sort       SortColumn
	width      int
	height     int
	err        error
}

// NewModel creates a new browser model.
func NewModel(database *sql.DB) *Model {
	return &Model{
		db:         database,
		currentRel: ".",
		sort:       SortBySize,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadInitialData
}

type dataLoadedMsg struct {
	meta    *db.Meta
	entries []db.DisplayEntry
	err     error
}

type entriesLoadedMsg struct {
	entries []db.DisplayEntry
	err     error
}

func (m *Model) loadInitialData() tea.Msg {
	meta, err := db.GetMeta(m.db)
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	entries, err := db.Children(m.db, ".", m.sort.String(), pageSize)
	if err != nil {
		return dataLoadedMsg{err: err}
	}

	return dataLoadedMsg{meta: meta, entries: entries}
}

func (m *Model) loadEntries(rel string) tea.Cmd {
	return func() tea.Msg {
		entries, err := db.Children(m.db, rel, m.sort.String(), pageSize)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

// parentRel returns the rel_path of the current directory's parent.
func (m *Model) parentRel() string {
	return path.Dir(m.currentRel)
}
