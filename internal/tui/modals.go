package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderModal renders a centered modal with a title.
func (m *Model) renderModal(title, content string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, "", width, height, -1)
}

// renderModalWithFooter renders a centered modal with a title and a
// footer hint line.
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, footer, width, height, -1)
}

// renderModalWithFooterAndScroll renders a modal whose content scrolls
// through the shared modal viewport. When selectedLine is non-negative
// the viewport scrolls just enough to keep that line visible; otherwise
// the previous scroll position is preserved.
func (m *Model) renderModalWithFooterAndScroll(title, content, footer string, width, height, selectedLine int) string {
	maxWidth := m.width - ViewportPaddingHorizontal
	maxHeight := m.height - ModalHeightMarginSmall

	if width > maxWidth {
		width = maxWidth
	}
	if height > maxHeight {
		height = maxHeight
	}
	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	footerLines := 0
	if footer != "" {
		footerLines = 2
	}
	contentHeight := height - ModalOverheadLines - footerLines
	if contentHeight < 1 {
		contentHeight = height - ModalOverheadMinimal - footerLines
		if contentHeight < 1 {
			contentHeight = 1
		}
	}

	m.modalView.Width = width - ViewportPaddingHorizontal
	if m.modalView.Width < 10 {
		m.modalView.Width = 10
	}
	m.modalView.Height = contentHeight

	// SetContent resets the scroll position, so save it first.
	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(content)

	if selectedLine >= 0 && m.modalView.Height > 0 {
		topVisible := savedOffset
		bottomVisible := savedOffset + m.modalView.Height - 1
		switch {
		case selectedLine < topVisible:
			m.modalView.SetYOffset(selectedLine)
		case selectedLine > bottomVisible:
			m.modalView.SetYOffset(selectedLine - m.modalView.Height + 1)
		default:
			m.modalView.SetYOffset(savedOffset)
		}
	} else {
		m.modalView.SetYOffset(savedOffset)
	}

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	// Nearly full screen modals are not worth centering.
	if width >= m.width-2 || height >= m.height-1 {
		return modalBox
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalBox)
}

// renderHelp renders the keybinding reference.
func (m *Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Navigation") + "\n")
	b.WriteString("  j/k, arrows    move through windows and tabs\n")
	b.WriteString("  gg / G         jump to top / bottom\n")
	b.WriteString("  enter, space   collapse or expand a window\n")
	b.WriteString("  tab            switch between tree and details\n")
	b.WriteString("  ctrl+d/ctrl+u  scroll details half a page\n\n")

	b.WriteString(styleTitle.Render("Filtering") + "\n")
	b.WriteString("  /              edit the filter text\n")
	b.WriteString("  u              also match URLs\n")
	b.WriteString("  a              search all history entries\n")
	b.WriteString("  s              case sensitive matching\n")
	b.WriteString("  f              fuzzy matching\n")
	b.WriteString("  x              clear the filter\n\n")

	b.WriteString(styleTitle.Render("Files") + "\n")
	b.WriteString("  o              browse for a session file\n")
	b.WriteString("  p              pick a Firefox profile and session file\n")
	b.WriteString("  r              recently opened files\n")
	b.WriteString("  l              reopen the last file\n")
	b.WriteString("  R              reload the current file\n")
	b.WriteString("  C              include or hide closed windows\n\n")

	b.WriteString(styleTitle.Render("Output") + "\n")
	b.WriteString("  e              export the visible tabs\n")
	b.WriteString("  c              copy all visible links\n")
	b.WriteString("  enter          copy the selected tab's URL\n")
	b.WriteString("  v              preview the export HTML\n\n")

	b.WriteString(styleTitle.Render("Other") + "\n")
	b.WriteString("  esc            cancel a running load or export\n")
	b.WriteString("  E              show the full text of the last error\n")
	b.WriteString("  ?              toggle this help\n")
	b.WriteString("  q, ctrl+c      quit\n")

	return m.renderModalWithFooter("Help", b.String(), "j/k to scroll, esc to close",
		HelpModalWidth, m.height-4)
}

// renderErrorDetail shows the untruncated text of the last error.
func (m *Model) renderErrorDetail() string {
	wrapped := lipgloss.NewStyle().
		Width(ErrorModalWidth - ViewportPaddingHorizontal - 2).
		Render(styleError.Render(m.fullErrorMessage))
	return m.renderModalWithFooter("Error", wrapped, "esc to close",
		ErrorModalWidth, 14)
}
