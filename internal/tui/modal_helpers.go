package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// SplitPaneConfig describes a two-column modal layout.
type SplitPaneConfig struct {
	ModalWidth  int
	ModalHeight int

	LeftTitle   string
	LeftContent string
	LeftFocused bool

	RightTitle   string
	RightContent string
	RightFocused bool

	Footer string
}

// renderSplitPaneModal renders a centered modal with two bordered
// columns. The focused column gets a highlighted border and title.
func renderSplitPaneModal(cfg SplitPaneConfig, totalWidth, totalHeight int) string {
	paneHeight := cfg.ModalHeight - 4

	leftWidth := (cfg.ModalWidth - 3) / 2
	rightWidth := cfg.ModalWidth - leftWidth - 3

	leftTitleStyle := styleTitleUnfocused
	leftBorderColor := colorGray
	rightTitleStyle := styleTitleUnfocused
	rightBorderColor := colorGray
	if cfg.LeftFocused {
		leftTitleStyle = styleTitleFocused
		leftBorderColor = colorGreen
	}
	if cfg.RightFocused {
		rightTitleStyle = styleTitleFocused
		rightBorderColor = colorGreen
	}

	leftPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(leftBorderColor).
		Width(leftWidth).
		Height(paneHeight).
		Padding(0, 1).
		Render(leftTitleStyle.Render(cfg.LeftTitle) + "\n" + cfg.LeftContent)

	rightPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(rightBorderColor).
		Width(rightWidth).
		Height(paneHeight).
		Padding(0, 1).
		Render(rightTitleStyle.Render(cfg.RightTitle) + "\n" + cfg.RightContent)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		"\n"+styleSubtle.Render(cfg.Footer),
	)

	return lipgloss.Place(totalWidth, totalHeight, lipgloss.Center, lipgloss.Center, content)
}
