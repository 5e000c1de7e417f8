package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// openFilePicker opens the file browser for choosing a session file by
// hand. Hidden files stay visible because profile directories live
// under dot directories like ~/.mozilla.
func (m *Model) openFilePicker() (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.CurrentDirectory = m.pickerStartDir()
	fp.ShowHidden = true
	fp.AutoHeight = false
	fp.Height = m.pickerHeight()
	m.picker = fp
	m.mode = ModePicker
	return m, fp.Init()
}

// pickerStartDir resolves where the file browser starts: the directory
// of the last opened file when it still exists, otherwise the home
// directory.
func (m *Model) pickerStartDir() string {
	if m.state.LastOpened != "" {
		dir := filepath.Dir(m.state.LastOpened)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// pickerHeight is the number of file rows that fit inside the browser
// modal. The calculation must match renderPickerModal.
func (m *Model) pickerHeight() int {
	h := m.height - 14
	if h < 5 {
		h = 5
	}
	return h
}

// handlePickerKeys drives the file browser. Everything except closing
// the modal is handled by the picker itself, including directory
// navigation.
func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = ModeBrowse
		return m, m.startLoad(path)
	}
	return m, cmd
}

// renderPickerModal renders the session file browser.
func (m *Model) renderPickerModal() string {
	dir := m.picker.CurrentDirectory
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(dir, home) {
		dir = "~" + strings.TrimPrefix(dir, home)
	}

	var b strings.Builder
	b.WriteString(styleSubtle.Render(truncate(dir, m.width-16)) + "\n\n")
	b.WriteString(m.picker.View())

	footer := "j/k move | h/l out/into directory | enter open | esc cancel"
	return m.renderModalWithFooter("Open session file", b.String(), footer, m.width-8, m.height-4)
}
