package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lej77/firefox-session-tui/internal/export"
	"github.com/Lej77/firefox-session-tui/internal/firefox"
	"github.com/Lej77/firefox-session-tui/internal/loader"
)

// startLoad kicks off a background session load. A load already in
// flight is cancelled, and any events it still delivers are discarded
// by the generation check in Update.
func (m *Model) startLoad(path string) tea.Cmd {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	m.loadGen++
	gen := m.loadGen

	ctx, cancel := context.WithCancel(context.Background())
	m.loadCancel = cancel
	ch := make(chan tea.Msg, LoadEventBuffer)
	m.loadEvents = ch
	m.phase = PhaseLoading
	m.loadStage = ""
	m.pendingPath = path

	opts := loader.Options{
		IncludeClosed: m.settings.Load.IncludeClosed,
		Progress: func(status string) {
			ch <- loadProgressMsg{gen: gen, status: status}
		},
	}
	go func() {
		defer cancel()
		doc, err := loader.Load(ctx, path, opts)
		if err != nil {
			ch <- sessionFailedMsg{gen: gen, path: path, err: err}
		} else {
			ch <- sessionLoadedMsg{gen: gen, doc: doc}
		}
		close(ch)
	}()

	return tea.Batch(m.waitForLoadEvent(), m.spinner.Tick)
}

// waitForLoadEvent returns a command that delivers the next event from
// the current load. Update re-arms it after each progress event.
func (m *Model) waitForLoadEvent() tea.Cmd {
	ch := m.loadEvents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// cancelLoad aborts the load in flight, restoring the previous phase.
func (m *Model) cancelLoad() (tea.Model, tea.Cmd) {
	if m.loadCancel != nil {
		m.loadCancel()
		m.loadCancel = nil
	}
	return m, nil
}

// reload loads the current document's source file again.
func (m *Model) reload() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, m.setErrorMessage("Nothing to reload")
	}
	return m, m.startLoad(m.doc.SourcePath)
}

// openLastFile reopens the most recently opened session file.
func (m *Model) openLastFile() (tea.Model, tea.Cmd) {
	if m.state.LastOpened == "" {
		return m, m.setErrorMessage("No previously opened file")
	}
	return m, m.startLoad(m.state.LastOpened)
}

// toggleIncludeClosed flips closed-window loading. The loader owns the
// setting, so a loaded session is read again to honor it.
func (m *Model) toggleIncludeClosed() (tea.Model, tea.Cmd) {
	m.settings.Load.IncludeClosed = !m.settings.Load.IncludeClosed
	note := "Closed windows hidden"
	if m.settings.Load.IncludeClosed {
		note = "Closed windows included"
	}
	if !m.loaded {
		return m, m.setStatusMessage(note)
	}
	return m, tea.Batch(m.setStatusMessage(note), m.startLoad(m.doc.SourcePath))
}

// startExport launches a background export of the visible document.
// The export works on a snapshot, so later filter changes or reloads do
// not affect the file being written.
func (m *Model) startExport() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.exportPath.Value())
	if path == "" {
		return m, m.setErrorMessage("Export path cannot be empty")
	}
	format := m.exportFormat
	doc := m.view
	opts := export.Options{Overwrite: m.exportOverwrite, CreateDirs: m.exportDirs}

	ctx, cancel := context.WithCancel(context.Background())
	m.exportCancel = cancel
	m.mode = ModeBrowse

	eng := m.engine
	run := func() tea.Msg {
		defer cancel()
		if err := eng.Export(ctx, doc, format, path, opts); err != nil {
			return exportFailedMsg{err: err}
		}
		return exportDoneMsg{format: format, path: path}
	}
	return m, tea.Batch(m.setStatusMessage(fmt.Sprintf("Exporting %s to %s", format, path)),
		m.spinner.Tick, run)
}

// cancelExport aborts the export in flight.
func (m *Model) cancelExport() (tea.Model, tea.Cmd) {
	if m.exportCancel != nil {
		m.exportCancel()
		m.exportCancel = nil
	}
	return m, nil
}

// exporting reports whether an export is still writing its snapshot.
func (m *Model) exporting() bool {
	return m.exportCancel != nil
}

// copyLinks puts every visible link on the clipboard, one URL per line.
func (m *Model) copyLinks() (tea.Model, tea.Cmd) {
	links := m.view.Links()
	if len(links) == 0 {
		return m, m.setErrorMessage("No links to copy")
	}
	var b strings.Builder
	for _, link := range links {
		b.WriteString(link.URL)
		b.WriteByte('\n')
	}
	text := b.String()
	count := len(links)
	return m, func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errorMsg(fmt.Sprintf("Clipboard copy failed: %v", err))
		}
		return clipboardCopiedMsg{count: count}
	}
}

// copyCurrentURL puts the URL of the tab under the cursor on the
// clipboard.
func (m *Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	tab, ok := m.currentTab()
	if !ok {
		return m, nil
	}
	url := tab.URL()
	if url == "" {
		return m, m.setErrorMessage("Tab has no URL")
	}
	return m, func() tea.Msg {
		if err := clipboard.WriteAll(url); err != nil {
			return errorMsg(fmt.Sprintf("Clipboard copy failed: %v", err))
		}
		return clipboardCopiedMsg{count: 1}
	}
}

// discoverProfiles scans for Firefox profiles and opens the wizard with
// the result.
func (m *Model) discoverProfiles() (tea.Model, tea.Cmd) {
	return m, func() tea.Msg {
		profiles, err := firefox.Profiles()
		if err != nil {
			return errorMsg(fmt.Sprintf("Profile discovery failed: %v", err))
		}
		if len(profiles) == 0 {
			return errorMsg("No Firefox profiles found")
		}
		return wizardProfilesMsg{profiles: profiles}
	}
}

// toggleSourceView switches the preview pane between the detail view
// and the highlighted HTML a html export would produce.
func (m *Model) toggleSourceView() (tea.Model, tea.Cmd) {
	m.showSource = !m.showSource
	m.updatePreview()
	m.previewView.GotoTop()
	if m.showSource {
		return m, m.setStatusMessage("Preview shows export HTML")
	}
	return m, m.setStatusMessage("Preview shows tab details")
}
