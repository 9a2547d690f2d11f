package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sztaroszta/dirscope/internal/db"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.meta = msg.meta
		m.currentRel = "."
		m.setEntries(msg.entries)
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setEntries(msg.entries)
		return m, nil
	}

	return m, nil
}

func (m *Model) setEntries(entries []db.DisplayEntry) {
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "l", "right":
		if len(m.entries) > 0 && m.cursor < len(m.entries) {
			selected := m.entries[m.cursor]
			if selected.IsDir {
				m.currentRel = selected.RelPath
				m.cursor = 0
				return m, m.loadEntries(selected.RelPath)
			}
		}
		return m, nil

	case "backspace", "h", "left":
		if m.currentRel != "." {
			m.currentRel = m.parentRel()
			m.cursor = 0
			return m, m.loadEntries(m.currentRel)
		}
		return m, nil

	case "s":
		m.sort = SortBySize
		return m, m.loadEntries(m.currentRel)

	case "n":
		m.sort = SortByName
		return m, m.loadEntries(m.currentRel)

	case "t":
		m.sort = SortByKind
		return m, m.loadEntries(m.currentRel)

	case "home", "g":
		m.cursor = 0
		return m, nil

	case "end", "G":
		if len(m.entries) > 0 {
			m.cursor = len(m.entries) - 1
		}
		return m, nil

	case "pgup":
		m.cursor -= 10
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case "pgdown":
		m.cursor += 10
		if m.cursor >= len(m.entries) {
			m.cursor = len(m.entries) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}
