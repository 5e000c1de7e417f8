package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Lej77/firefox-session-tui/internal/filter"
	"github.com/Lej77/firefox-session-tui/internal/session"
)

// treeRow is one visible line of the session tree. Window header rows
// carry tab == -1.
type treeRow struct {
	window int
	tab    int
}

// isWindow reports whether the row is a window header.
func (r treeRow) isWindow() bool {
	return r.tab < 0
}

// applyFilter recomputes the visible document from the loaded one and
// rebuilds the tree rows. Collapse state is reset because window
// positions shift as the filter changes.
func (m *Model) applyFilter() {
	m.view = filter.Apply(m.doc, m.query)
	m.collapsed = make(map[int]bool)
	m.sourceCache = ""
	m.rebuildRows()
}

// rebuildRows flattens the visible document into navigable rows,
// skipping tabs of collapsed windows.
func (m *Model) rebuildRows() {
	rows := make([]treeRow, 0, len(m.view.Windows))
	for wi := range m.view.Windows {
		rows = append(rows, treeRow{window: wi, tab: -1})
		if m.collapsed[wi] {
			continue
		}
		for ti := range m.view.Windows[wi].Tabs {
			rows = append(rows, treeRow{window: wi, tab: ti})
		}
	}
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
	m.updatePreview()
}

// moveCursor moves the tree cursor by delta, clamped to the row range.
func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.ensureCursorVisible()
	m.updatePreview()
}

// treePageSize is the number of tree rows that fit on screen, after
// title, footer and status bar.
func (m *Model) treePageSize() int {
	page := m.height - 7
	if page < 1 {
		page = 1
	}
	return page
}

// ensureCursorVisible scrolls the tree so the cursor stays on screen.
func (m *Model) ensureCursorVisible() {
	page := m.treePageSize()
	if m.cursor < m.treeOffset {
		m.treeOffset = m.cursor
	}
	if m.cursor >= m.treeOffset+page {
		m.treeOffset = m.cursor - page + 1
	}
	if m.treeOffset < 0 {
		m.treeOffset = 0
	}
}

// currentRow returns the row under the cursor.
func (m *Model) currentRow() (treeRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return treeRow{}, false
	}
	return m.rows[m.cursor], true
}

// currentTab returns the tab under the cursor when the cursor is on a
// tab row.
func (m *Model) currentTab() (session.Tab, bool) {
	row, ok := m.currentRow()
	if !ok || row.isWindow() {
		return session.Tab{}, false
	}
	return m.view.Windows[row.window].Tabs[row.tab], true
}

// toggleWindow flips the collapse state of the window under the cursor
// and parks the cursor on its header row.
func (m *Model) toggleWindow() {
	row, ok := m.currentRow()
	if !ok {
		return
	}
	m.collapsed[row.window] = !m.collapsed[row.window]
	m.rebuildRows()
	for i, r := range m.rows {
		if r.window == row.window && r.isWindow() {
			m.cursor = i
			break
		}
	}
	m.ensureCursorVisible()
	m.updatePreview()
}

// updatePreview refreshes the preview pane for the current selection.
// Content is wrapped to the viewport width because the viewport itself
// does not wrap long lines. The source view keeps its scroll position
// across cursor moves since its content does not follow the cursor.
func (m *Model) updatePreview() {
	if !m.viewportReady {
		return
	}
	var content string
	if m.showSource {
		content = m.highlightedSource()
	} else {
		content = m.renderPreviewContent()
	}
	if m.previewView.Width > 0 {
		content = lipgloss.NewStyle().Width(m.previewView.Width).Render(content)
	}
	m.previewView.SetContent(content)
	if !m.showSource {
		m.previewView.GotoTop()
	}
}

// windowLabel names a window for display, matching the labels used in
// exports.
func windowLabel(win session.Window, index int) string {
	label := win.Title
	if label == "" {
		label = fmt.Sprintf("Window %d", index+1)
	}
	if win.Closed {
		label += " (closed)"
	}
	return label
}
