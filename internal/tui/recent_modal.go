package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// openRecentModal shows the recently opened files list.
func (m *Model) openRecentModal() (tea.Model, tea.Cmd) {
	if len(m.state.RecentFiles) == 0 {
		return m, m.setErrorMessage("No recently opened files")
	}
	m.recentIndex = 0
	m.mode = ModeRecent
	return m, nil
}

// handleRecentKeys handles keyboard input in the recent files list.
func (m *Model) handleRecentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recent := m.state.RecentFiles

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeBrowse

	case "j", "down":
		if len(recent) > 0 {
			m.recentIndex = (m.recentIndex + 1) % len(recent)
		}

	case "k", "up":
		if len(recent) > 0 {
			m.recentIndex = (m.recentIndex - 1 + len(recent)) % len(recent)
		}

	case "g":
		if m.gPressed {
			m.recentIndex = 0
		}
		m.gPressed = !m.gPressed
		return m, nil

	case "G":
		if len(recent) > 0 {
			m.recentIndex = len(recent) - 1
		}
		m.gPressed = false

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// Quick select by number
		index := int(msg.String()[0]-'0') - 1
		if index < len(recent) {
			m.recentIndex = index
			return m.handleRecentKeys(tea.KeyMsg{Type: tea.KeyEnter})
		}

	case "0":
		// 0 selects the tenth entry
		if len(recent) >= 10 {
			m.recentIndex = 9
			return m.handleRecentKeys(tea.KeyMsg{Type: tea.KeyEnter})
		}

	case "enter":
		if m.recentIndex < 0 || m.recentIndex >= len(recent) {
			return m, nil
		}
		path := recent[m.recentIndex]
		if _, err := os.Stat(path); err != nil {
			return m, m.setErrorMessage(fmt.Sprintf("File not found: %s", path))
		}
		m.mode = ModeBrowse
		return m, m.startLoad(path)

	default:
		m.gPressed = false
	}

	return m, nil
}

// renderRecentModal renders the recently opened files modal.
func (m *Model) renderRecentModal() string {
	recent := m.state.RecentFiles

	if len(recent) == 0 {
		return m.renderModal("Recent Files", "No recently opened files\n\nPress ESC to close", 60, 10)
	}

	home, _ := os.UserHomeDir()

	var content strings.Builder
	for i, path := range recent {
		displayPath := path
		if home != "" && strings.HasPrefix(path, home) {
			displayPath = "~" + strings.TrimPrefix(path, home)
		}

		// Number prefix for the first ten entries (1-9, then 0)
		var prefix string
		switch {
		case i < 9:
			prefix = fmt.Sprintf("%d. ", i+1)
		case i == 9:
			prefix = "0. "
		default:
			prefix = "   "
		}

		if i == m.recentIndex {
			content.WriteString(styleSelected.Render(prefix+displayPath) + "\n")
		} else {
			content.WriteString("  " + prefix + displayPath + "\n")
		}
	}

	if m.errorMessage != "" {
		content.WriteString("\n\n")
		content.WriteString(styleError.Render(m.errorMessage))
	}

	footer := "[↑/↓ j/k] navigate [1-9,0] quick select [enter] open [esc] close"

	// Auto-scroll keeps the selected file visible.
	return m.renderModalWithFooterAndScroll("Recent Files", content.String(), footer, 70, 18, m.recentIndex)
}
