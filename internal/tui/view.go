package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	sizeColWidth = 10
	kindColWidth = 24
	colGap       = 2
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\nPress q to quit."
	}

	if m.meta == nil {
		return "Loading..."
	}

	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	writeLine(titleStyle.Render("dirscope - Directory Inventory Browser"))

	scanInfo := fmt.Sprintf("Scanned: %s | Total: %s | Files: %s | Dirs: %s",
		m.meta.StartTime.Format("2006-01-02 15:04"),
		humanize.Bytes(uint64(m.meta.TotalSize)),
		humanize.Comma(m.meta.FileCount),
		humanize.Comma(m.meta.DirCount),
	)
	if m.meta.ErrorCount > 0 {
		scanInfo += fmt.Sprintf(" | Errors: %s", humanize.Comma(m.meta.ErrorCount))
	}
	if m.meta.Interrupted {
		scanInfo += " | PARTIAL"
	}
	writeLine(statsStyle.Render(scanInfo))

	current := m.meta.RootPath
	if m.currentRel != "." {
		current += "/" + m.currentRel
	}
	writeLine(breadcrumbStyle.Render("Path: " + truncateMiddle(current, max(10, m.width-8))))
	writeLine("")

	gap := strings.Repeat(" ", colGap)
	header := fmt.Sprintf("%*s%s%-*s%s%s",
		sizeColWidth, sortLabel("SIZE", m.sort == SortBySize),
		gap,
		kindColWidth, sortLabel("KIND", m.sort == SortByKind),
		gap,
		sortLabel("NAME", m.sort == SortByName),
	)
	writeLine(headerStyle.Render(header))

	footerLines := 2
	visibleRows := m.height - headerLines - footerLines
	if visibleRows < 5 {
		visibleRows = 5
	}

	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.entries), startIdx+visibleRows)

	if len(m.entries) == 0 {
		b.WriteString(statsStyle.Render("  (empty folder)"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		e := m.entries[i]

		kind := e.Kind
		if kind == "" {
			kind = e.FileType
		}
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		if len(e.Tags) > 0 {
			name += "  [" + strings.Join(e.Tags, ", ") + "]"
		}

		line := fmt.Sprintf("%*s%s%-*s%s%s",
			sizeColWidth, humanize.Bytes(uint64(e.Size)),
			gap,
			kindColWidth, truncateRight(kind, kindColWidth),
			gap,
			truncateRight(name, max(10, m.width-sizeColWidth-kindColWidth-2*colGap)),
		)

		switch {
		case i == m.cursor:
			line = selectedStyle.Render(line)
		case e.IsDir:
			line = dirStyle.Render(line)
		default:
			line = fileStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: open | backspace: up | s/n/t: sort | q: quit"))
	return b.String()
}

func sortLabel(label string, active bool) string {
	if active {
		return label + " v"
	}
	return label
}

func truncateRight(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

func truncateMiddle(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 5 {
		return s[:width]
	}
	keep := (width - 3) / 2
	return s[:keep] + "..." + s[len(s)-(width-3-keep):]
}
