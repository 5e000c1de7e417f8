package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lej77/firefox-session-tui/internal/firefox"
)

// Wizard panes.
const (
	wizardPaneProfiles = iota
	wizardPaneFiles
)

// openWizardWith shows the profile picker with the discovered profiles.
// The default profile starts selected.
func (m *Model) openWizardWith(profiles []firefox.Profile) {
	m.wizardProfiles = profiles
	m.wizardProfile = 0
	for i, p := range profiles {
		if p.Default {
			m.wizardProfile = i
			break
		}
	}
	m.wizardPane = wizardPaneProfiles
	m.refreshWizardFiles()
	m.mode = ModeWizard
}

// refreshWizardFiles lists the session files of the selected profile,
// newest first.
func (m *Model) refreshWizardFiles() {
	m.wizardFiles = nil
	m.wizardFile = 0
	if m.wizardProfile < 0 || m.wizardProfile >= len(m.wizardProfiles) {
		return
	}
	m.wizardFiles = m.wizardProfiles[m.wizardProfile].SessionFiles()
}

// handleWizardKeys handles keys in the profile and session file picker.
func (m *Model) handleWizardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeBrowse
		return m, nil

	case "tab", "h", "l", "left", "right":
		if m.wizardPane == wizardPaneProfiles {
			m.wizardPane = wizardPaneFiles
		} else {
			m.wizardPane = wizardPaneProfiles
		}
		return m, nil

	case "j", "down":
		m.moveWizardCursor(1)
		return m, nil

	case "k", "up":
		m.moveWizardCursor(-1)
		return m, nil

	case "g":
		m.moveWizardCursor(-len(m.wizardProfiles) - len(m.wizardFiles))
		return m, nil

	case "G":
		m.moveWizardCursor(len(m.wizardProfiles) + len(m.wizardFiles))
		return m, nil

	case "enter":
		if m.wizardPane == wizardPaneProfiles {
			if len(m.wizardFiles) == 0 {
				return m, m.setErrorMessage("No session files in this profile")
			}
			m.wizardPane = wizardPaneFiles
			return m, nil
		}
		if m.wizardFile < 0 || m.wizardFile >= len(m.wizardFiles) {
			return m, nil
		}
		path := m.wizardFiles[m.wizardFile].Path
		m.mode = ModeBrowse
		return m, m.startLoad(path)
	}

	return m, nil
}

// moveWizardCursor moves within the focused wizard pane, clamped to the
// list. Profile moves refresh the file list on the right.
func (m *Model) moveWizardCursor(delta int) {
	if m.wizardPane == wizardPaneProfiles {
		if len(m.wizardProfiles) == 0 {
			return
		}
		m.wizardProfile += delta
		if m.wizardProfile < 0 {
			m.wizardProfile = 0
		}
		if m.wizardProfile >= len(m.wizardProfiles) {
			m.wizardProfile = len(m.wizardProfiles) - 1
		}
		m.refreshWizardFiles()
		return
	}
	if len(m.wizardFiles) == 0 {
		return
	}
	m.wizardFile += delta
	if m.wizardFile < 0 {
		m.wizardFile = 0
	}
	if m.wizardFile >= len(m.wizardFiles) {
		m.wizardFile = len(m.wizardFiles) - 1
	}
}

// renderWizardModal renders the split profile and session file picker.
func (m *Model) renderWizardModal() string {
	width := m.width - 8
	if width > 90 {
		width = 90
	}
	height := m.height - 6
	if height > 24 {
		height = 24
	}
	itemWidth := (width-3)/2 - 4
	if itemWidth < 10 {
		itemWidth = 10
	}

	var left strings.Builder
	for i, p := range m.wizardProfiles {
		name := p.Name
		if p.Default {
			name += " (default)"
		}
		line := truncate(name, itemWidth)
		if i == m.wizardProfile {
			line = styleSelected.Render(line)
		}
		left.WriteString(line + "\n")
	}

	var right strings.Builder
	if len(m.wizardFiles) == 0 {
		right.WriteString(styleSubtle.Render("No session files found"))
	}
	for i, f := range m.wizardFiles {
		line := truncate(fmt.Sprintf("%s  %s", filepath.Base(f.Path), formatAge(time.Since(f.Modified))), itemWidth)
		if i == m.wizardFile {
			line = styleSelected.Render(line)
		}
		right.WriteString(line + "\n")
	}

	cfg := SplitPaneConfig{
		ModalWidth:   width,
		ModalHeight:  height,
		LeftTitle:    "Profiles",
		LeftContent:  left.String(),
		LeftFocused:  m.wizardPane == wizardPaneProfiles,
		RightTitle:   "Session files",
		RightContent: right.String(),
		RightFocused: m.wizardPane == wizardPaneFiles,
		Footer:       "j/k move | tab switch pane | enter open | esc cancel",
	}
	return renderSplitPaneModal(cfg, m.width, m.height)
}

// formatAge renders a file age compactly.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
