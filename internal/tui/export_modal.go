package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lej77/firefox-session-tui/internal/export"
)

// Export form fields, in traversal order.
const (
	exportFieldFormat = iota
	exportFieldPath
	exportFieldOverwrite
	exportFieldDirs
	exportFieldCount
)

// openExportModal opens the export form, seeded from settings and the
// previous export.
func (m *Model) openExportModal() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, m.setErrorMessage("Load a session before exporting")
	}
	if m.exporting() {
		return m, m.setErrorMessage("An export is already running, esc cancels it")
	}
	if m.view.Empty() {
		return m, m.setErrorMessage("Nothing to export")
	}
	m.exportField = exportFieldFormat
	m.exportPath.SetValue(m.defaultExportPath())
	m.exportPath.CursorEnd()
	m.exportPath.Blur()
	m.mode = ModeExport
	return m, nil
}

// defaultExportPath suggests a destination built from the source name,
// the selected format and the directory of the previous export.
func (m *Model) defaultExportPath() string {
	base := filepath.Base(m.doc.SourcePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = "session"
	}
	name += m.exportFormat.Ext()
	if m.state.LastExportDir == "" {
		return name
	}
	return filepath.Join(m.state.LastExportDir, name)
}

// handleExportKeys handles keys in the export form.
func (m *Model) handleExportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.exportPath.Blur()
		m.mode = ModeBrowse
		return m, nil
	case "enter":
		m.exportPath.Blur()
		return m.startExport()
	case "tab", "down":
		return m, m.setExportField((m.exportField + 1) % exportFieldCount)
	case "shift+tab", "up":
		return m, m.setExportField((m.exportField - 1 + exportFieldCount) % exportFieldCount)
	}

	switch m.exportField {
	case exportFieldFormat:
		switch key {
		case "left", "h":
			m.cycleFormat(-1)
		case "right", "l", " ":
			m.cycleFormat(1)
		}
		return m, nil

	case exportFieldPath:
		var cmd tea.Cmd
		m.exportPath, cmd = m.exportPath.Update(msg)
		return m, cmd

	case exportFieldOverwrite:
		switch key {
		case " ", "left", "right", "h", "l":
			m.exportOverwrite = !m.exportOverwrite
		}
		return m, nil

	case exportFieldDirs:
		switch key {
		case " ", "left", "right", "h", "l":
			m.exportDirs = !m.exportDirs
		}
		return m, nil
	}

	return m, nil
}

// setExportField moves the form focus, handing the cursor to the path
// input when it becomes active.
func (m *Model) setExportField(field int) tea.Cmd {
	m.exportField = field
	if field == exportFieldPath {
		return m.exportPath.Focus()
	}
	m.exportPath.Blur()
	return nil
}

// cycleFormat moves through the export formats, keeping the suggested
// path extension in sync as long as the user has not edited it away.
func (m *Model) cycleFormat(delta int) {
	infos := export.Formats()
	idx := 0
	for i, info := range infos {
		if info.Format == m.exportFormat {
			idx = i
			break
		}
	}
	old := m.exportFormat
	idx = (idx + delta + len(infos)) % len(infos)
	m.exportFormat = infos[idx].Format

	path := m.exportPath.Value()
	if strings.HasSuffix(path, old.Ext()) {
		m.exportPath.SetValue(strings.TrimSuffix(path, old.Ext()) + m.exportFormat.Ext())
		m.exportPath.CursorEnd()
	}
}

// renderExportModal renders the export form.
func (m *Model) renderExportModal() string {
	var b strings.Builder

	writeRow := func(field int, text string) {
		if m.exportField == field {
			b.WriteString(styleSelected.Render("> "+text) + "\n")
		} else {
			b.WriteString("  " + text + "\n")
		}
	}

	writeRow(exportFieldFormat, fmt.Sprintf("Format       < %-8s >", string(m.exportFormat)))
	if m.exportFormat == export.FormatPDF && !m.engine.PDFAvailable() {
		b.WriteString("  " + styleWarning.Render("PDF needs a Chromium based browser on PATH") + "\n")
	}
	b.WriteString("\n")

	if m.exportField == exportFieldPath {
		b.WriteString(styleSelected.Render("> Path") + "  " + m.exportPath.View() + "\n")
	} else {
		b.WriteString("  Path  " + m.exportPath.Value() + "\n")
	}
	b.WriteString("\n")

	writeRow(exportFieldOverwrite, fmt.Sprintf("%s Overwrite existing file", checkbox(m.exportOverwrite)))
	writeRow(exportFieldDirs, fmt.Sprintf("%s Create missing directories", checkbox(m.exportDirs)))

	st := m.view.Stats()
	b.WriteString("\n")
	note := fmt.Sprintf("%d windows, %d tabs will be exported", st.Windows, st.Tabs)
	if m.query.Active() {
		note += " (filter applied)"
	}
	b.WriteString(styleSubtle.Render(note))

	footer := "tab/arrows move | space toggle | enter export | esc cancel"
	return m.renderModalWithFooter("Export", b.String(), footer, 72, 18)
}

// checkbox renders a toggle state.
func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
