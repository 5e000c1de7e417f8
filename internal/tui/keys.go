package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress routes key input to the handler for the current mode.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global binding, works in every mode.
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.mode {
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModePicker:
		return m.handlePickerKeys(msg)
	case ModeWizard:
		return m.handleWizardKeys(msg)
	case ModeRecent:
		return m.handleRecentKeys(msg)
	case ModeExport:
		return m.handleExportKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeErrorDetail:
		return m.handleErrorDetailKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

// quit stops background work, saves state and leaves the program.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	if m.exportCancel != nil {
		m.exportCancel()
	}
	m.saveState()
	return m, tea.Quit
}

// handleBrowseKeys handles keys in the main browsing view.
func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key != "g" {
		m.gPressed = false
	}

	switch key {
	case "q":
		return m.quit()

	case "esc":
		// The document stays browsable while background work runs;
		// esc stops the most recent piece of work first.
		if m.phase == PhaseLoading {
			return m.cancelLoad()
		}
		if m.exporting() {
			return m.cancelExport()
		}
		return m, nil

	case "?":
		m.mode = ModeHelp
		return m, nil

	case "j", "down":
		if m.focusPane == panePreview {
			m.previewView.LineDown(1)
		} else {
			m.moveCursor(1)
		}
		return m, nil

	case "k", "up":
		if m.focusPane == panePreview {
			m.previewView.LineUp(1)
		} else {
			m.moveCursor(-1)
		}
		return m, nil

	case "g":
		if m.gPressed {
			m.gPressed = false
			if m.focusPane == panePreview {
				m.previewView.GotoTop()
			} else {
				m.moveCursor(-len(m.rows))
			}
		} else {
			m.gPressed = true
		}
		return m, nil

	case "G":
		if m.focusPane == panePreview {
			m.previewView.GotoBottom()
		} else {
			m.moveCursor(len(m.rows))
		}
		return m, nil

	case "ctrl+d":
		if m.focusPane == panePreview {
			m.previewView.HalfViewDown()
		}
		return m, nil

	case "ctrl+u":
		if m.focusPane == panePreview {
			m.previewView.HalfViewUp()
		}
		return m, nil

	case "tab":
		if m.loaded {
			if m.focusPane == paneTree {
				m.focusPane = panePreview
			} else {
				m.focusPane = paneTree
			}
		}
		return m, nil

	case " ":
		m.toggleWindow()
		return m, nil

	case "enter":
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if row.isWindow() {
			m.toggleWindow()
			return m, nil
		}
		return m.copyCurrentURL()

	case "c":
		return m.copyLinks()

	case "/":
		if !m.loaded {
			return m, nil
		}
		m.savedQuery = m.query
		m.filterInput.SetValue(m.query.Text)
		m.filterInput.CursorEnd()
		m.mode = ModeFilter
		return m, m.filterInput.Focus()

	case "u":
		m.query.MatchURLs = !m.query.MatchURLs
		m.applyFilter()
		if m.query.MatchURLs {
			return m, m.setStatusMessage("Filter matches titles and URLs")
		}
		return m, m.setStatusMessage("Filter matches titles only")

	case "f":
		m.query.Fuzzy = !m.query.Fuzzy
		m.applyFilter()
		if m.query.Fuzzy {
			return m, m.setStatusMessage("Fuzzy matching on")
		}
		return m, m.setStatusMessage("Substring matching on")

	case "a":
		m.query.AllHistory = !m.query.AllHistory
		m.applyFilter()
		if m.query.AllHistory {
			return m, m.setStatusMessage("Filter searches all history entries")
		}
		return m, m.setStatusMessage("Filter searches current pages only")

	case "s":
		m.query.CaseSensitive = !m.query.CaseSensitive
		m.applyFilter()
		if m.query.CaseSensitive {
			return m, m.setStatusMessage("Case sensitive matching on")
		}
		return m, m.setStatusMessage("Case insensitive matching on")

	case "x":
		if m.query.Text == "" {
			return m, nil
		}
		m.query.Text = ""
		m.applyFilter()
		return m, m.setStatusMessage("Filter cleared")

	case "v":
		if !m.loaded {
			return m, nil
		}
		return m.toggleSourceView()

	case "e":
		return m.openExportModal()

	case "o":
		return m.openFilePicker()

	case "p":
		return m.discoverProfiles()

	case "r":
		return m.openRecentModal()

	case "R":
		return m.reload()

	case "C":
		return m.toggleIncludeClosed()

	case "l":
		return m.openLastFile()

	case "E":
		if m.fullErrorMessage == "" {
			return m, nil
		}
		m.mode = ModeErrorDetail
		return m, nil
	}

	return m, nil
}

// handleFilterKeys handles keys while the filter text is being edited.
// The filter applies live on every keystroke.
func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.query = m.savedQuery
		m.applyFilter()
		m.filterInput.Blur()
		m.mode = ModeBrowse
		return m, nil
	case "enter":
		m.filterInput.Blur()
		m.mode = ModeBrowse
		if m.query.Active() {
			return m, m.setStatusMessage(fmt.Sprintf("%d tabs match", m.view.Stats().Tabs))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if text := m.filterInput.Value(); text != m.query.Text {
		m.query.Text = text
		m.applyFilter()
	}
	return m, cmd
}

// handleHelpKeys handles keys in the help view.
func (m *Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeBrowse
	case "j", "down":
		m.modalView.LineDown(1)
	case "k", "up":
		m.modalView.LineUp(1)
	}
	return m, nil
}

// handleErrorDetailKeys handles keys in the error detail view.
func (m *Model) handleErrorDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "E":
		m.mode = ModeBrowse
	}
	return m, nil
}
