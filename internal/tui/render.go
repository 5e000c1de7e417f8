package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lej77/firefox-session-tui/internal/export"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	styleTitleUnfocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the main view (session tree + preview panel).
func (m *Model) renderMain() string {
	if !m.loaded {
		if m.phase == PhaseLoading {
			return m.renderLoadingScreen()
		}
		return m.renderWelcome()
	}

	treeWidth := m.treeWidth()
	previewWidth := m.width - treeWidth - 4

	tree := m.renderTree(treeWidth-2, m.height-ChromeHeight)
	preview := m.renderPreview()

	// Highlight the focused panel.
	treeBorderColor := colorGray
	previewBorderColor := colorGray
	if m.focusPane == paneTree {
		treeBorderColor = colorGreen
	} else {
		previewBorderColor = colorGreen
	}

	treeBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(treeBorderColor).
		Width(treeWidth).
		Height(m.height - ChromeHeight).
		Render(tree)

	previewBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(previewBorderColor).
		Width(previewWidth).
		Height(m.height - ChromeHeight).
		Render(preview)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, treeBox, previewBox)

	return lipgloss.JoinVertical(lipgloss.Left, mainView, m.renderStatusBar())
}

// treeWidth calculates the width of the tree pane. The calculation must
// match updateViewports.
func (m *Model) treeWidth() int {
	w := max(TreePaneMinWidth, m.width*TreeWidthPercent/100)
	if m.width < 100 {
		w = m.width / 2
	}
	return w
}

// renderTree renders the window and tab rows of the session tree.
func (m *Model) renderTree(width, height int) string {
	var lines []string

	lines = append(lines, styleTitle.Render("Session"))
	lines = append(lines, "")

	pageSize := height - 4
	if pageSize < 1 {
		pageSize = 1
	}
	end := m.treeOffset + pageSize
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.treeOffset; i < end; i++ {
		row := m.rows[i]
		win := m.view.Windows[row.window]

		var line string
		if row.isWindow() {
			arrow := "▾"
			if m.collapsed[row.window] {
				arrow = "▸"
			}
			noun := "tabs"
			if len(win.Tabs) == 1 {
				noun = "tab"
			}
			line = fmt.Sprintf("%s %s  (%d %s)", arrow, windowLabel(win, row.window), len(win.Tabs), noun)
		} else {
			tab := win.Tabs[row.tab]
			pin := " "
			if tab.Pinned {
				pin = "*"
			}
			focus := " "
			if row.tab == win.Selected {
				focus = ">"
			}
			line = "  " + pin + focus + " " + tab.Title()
		}

		line = truncate(line, width)
		if i == m.cursor {
			line = styleSelected.Render(line)
		} else if row.isWindow() && win.Closed {
			line = styleSubtle.Render(line)
		}
		lines = append(lines, line)
	}

	if len(m.rows) > 0 {
		lines = append(lines, "")
		footer := fmt.Sprintf("[%d/%d]", m.cursor+1, len(m.rows))
		if s := m.filterSummary(); s != "" {
			footer += "  " + s
		}
		lines = append(lines, styleSubtle.Render(truncate(footer, width)))
	} else {
		lines = append(lines, "")
		msg := "Session is empty"
		if m.query.Active() {
			msg = "No tabs match the filter"
		}
		lines = append(lines, styleSubtle.Render(msg))
	}

	return strings.Join(lines, "\n")
}

// renderPreview renders the detail panel around its viewport.
func (m *Model) renderPreview() string {
	title := "Details"
	if m.showSource {
		title = "HTML source"
	}
	var lines []string
	lines = append(lines, styleTitle.Render(title))
	lines = append(lines, "")
	lines = append(lines, m.previewView.View())
	return strings.Join(lines, "\n")
}

// renderPreviewContent builds the detail text for the current tree
// selection.
func (m *Model) renderPreviewContent() string {
	row, ok := m.currentRow()
	if !ok {
		if m.query.Active() {
			return styleSubtle.Render("No tabs match the filter")
		}
		return styleSubtle.Render("Session is empty")
	}

	win := m.view.Windows[row.window]
	var lines []string

	if row.isWindow() {
		lines = append(lines, styleTitle.Render(windowLabel(win, row.window)))
		lines = append(lines, "")
		entries := 0
		pinned := 0
		for _, tab := range win.Tabs {
			entries += len(tab.History)
			if tab.Pinned {
				pinned++
			}
		}
		lines = append(lines, fmt.Sprintf("Tabs: %d", len(win.Tabs)))
		if pinned > 0 {
			lines = append(lines, fmt.Sprintf("Pinned: %d", pinned))
		}
		lines = append(lines, fmt.Sprintf("History entries: %d", entries))
		if win.Selected >= 0 && win.Selected < len(win.Tabs) {
			lines = append(lines, fmt.Sprintf("Active tab: %s", win.Tabs[win.Selected].Title()))
		}
		if win.Closed {
			lines = append(lines, "")
			lines = append(lines, styleWarning.Render("This window was closed"))
		}
		return strings.Join(lines, "\n")
	}

	tab := win.Tabs[row.tab]
	lines = append(lines, styleTitle.Render(tab.Title()))
	if tab.Pinned {
		lines = append(lines, styleWarning.Render("Pinned"))
	}
	lines = append(lines, "")
	lines = append(lines, styleSubtle.Render(tab.URL()))

	if len(tab.History) > 1 {
		lines = append(lines, "")
		lines = append(lines, styleTitle.Render(fmt.Sprintf("History (%d entries)", len(tab.History))))
		for i, entry := range tab.History {
			if i == tab.Active {
				lines = append(lines, styleSuccess.Render("> "+entry.DisplayTitle()))
			} else {
				lines = append(lines, "  "+entry.DisplayTitle())
			}
			lines = append(lines, styleSubtle.Render("    "+entry.URL))
		}
	}

	return strings.Join(lines, "\n")
}

// highlightedSource renders the visible document the way the HTML
// export writes it, with terminal syntax highlighting. The result is
// cached until the visible document changes.
func (m *Model) highlightedSource() string {
	if m.sourceCache != "" {
		return m.sourceCache
	}

	page, err := m.engine.Render(context.Background(), m.view, export.FormatHTML)
	if err != nil {
		return styleError.Render(fmt.Sprintf("Render failed: %v", err))
	}

	style := "github"
	if lipgloss.HasDarkBackground() {
		style = "monokai"
	}
	var b strings.Builder
	if err := quick.Highlight(&b, string(page), "html", "terminal256", style); err != nil {
		m.sourceCache = string(page)
	} else {
		m.sourceCache = b.String()
	}
	return m.sourceCache
}

// renderStatusBar renders the bottom status line.
func (m *Model) renderStatusBar() string {
	// Left side - current file and counts
	left := "No session"
	if m.loaded {
		st := m.view.Stats()
		base := filepath.Base(m.doc.SourcePath)
		if m.query.Active() {
			left = fmt.Sprintf("%s | %d/%d tabs match", base, st.Tabs, m.doc.Stats().Tabs)
		} else {
			left = fmt.Sprintf("%s | %d windows | %d tabs", base, st.Windows, st.Tabs)
		}
	} else if m.phase == PhaseLoading {
		left = "Loading " + filepath.Base(m.pendingPath)
	}

	// Right side - messages or input
	right := ""
	switch m.mode {
	case ModeFilter:
		right = "Filter: " + m.filterInput.View()
	default:
		switch {
		case m.phase == PhaseLoading:
			stage := m.loadStage
			if stage == "" {
				stage = "Loading"
			}
			right = m.spinner.View() + " " + styleWarning.Render(stage+"...")
		case m.exporting():
			note := m.statusMessage
			if note == "" {
				note = "Exporting..."
			}
			right = m.spinner.View() + " " + styleWarning.Render(note)
		case m.errorMessage != "":
			right = styleError.Render(m.errorMessage)
			if m.fullErrorMessage != m.errorMessage {
				right += styleSubtle.Render(" | E for details")
			}
		case m.statusMessage != "":
			// Make success messages green
			if strings.Contains(m.statusMessage, "Loaded") || strings.Contains(m.statusMessage, "Exported") ||
				strings.Contains(m.statusMessage, "Copied") || strings.Contains(m.statusMessage, "match") {
				right = styleSuccess.Render(m.statusMessage)
			} else {
				right = m.statusMessage
			}
		case !m.loaded:
			right = styleSubtle.Render("o open | p profiles | r recent | ? help | q quit")
		default:
			right = styleSubtle.Render("/ filter | e export | c copy | ? help | q quit")
		}
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// filterSummary describes the active filter for the tree footer.
func (m *Model) filterSummary() string {
	if !m.query.Active() {
		return ""
	}
	flags := make([]string, 0, 4)
	if m.query.MatchURLs {
		flags = append(flags, "urls")
	}
	if m.query.AllHistory {
		flags = append(flags, "history")
	}
	if m.query.CaseSensitive {
		flags = append(flags, "case")
	}
	if m.query.Fuzzy {
		flags = append(flags, "fuzzy")
	}
	s := fmt.Sprintf("filter: %q", m.query.Text)
	if len(flags) > 0 {
		s += " (" + strings.Join(flags, ", ") + ")"
	}
	return s
}

// renderWelcome renders the screen shown before any session is loaded.
func (m *Model) renderWelcome() string {
	lines := []string{
		styleTitle.Render("Firefox Session Viewer"),
		"",
		"No session loaded.",
		"",
		"o  browse for a session file",
		"p  pick a Firefox profile",
		"r  recently opened files",
	}
	if m.state.LastOpened != "" {
		lines = append(lines, "l  reopen "+filepath.Base(m.state.LastOpened))
	}
	lines = append(lines,
		"?  help",
		"q  quit",
	)

	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// renderLoadingScreen renders the full screen load progress view shown
// while no previous document is available.
func (m *Model) renderLoadingScreen() string {
	stage := m.loadStage
	if stage == "" {
		stage = "Loading"
	}
	lines := []string{
		styleTitle.Render(filepath.Base(m.pendingPath)),
		"",
		m.spinner.View() + " " + styleWarning.Render(stage+"..."),
		"",
		styleSubtle.Render("esc to cancel"),
	}

	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// truncate shortens s to max display runes, marking the cut with an
// ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
