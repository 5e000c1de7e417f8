package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Lej77/firefox-session-tui/internal/config"
	"github.com/Lej77/firefox-session-tui/internal/export"
	"github.com/Lej77/firefox-session-tui/internal/filter"
	"github.com/Lej77/firefox-session-tui/internal/firefox"
	"github.com/Lej77/firefox-session-tui/internal/logging"
	"github.com/Lej77/firefox-session-tui/internal/session"
)

// Mode represents the current input mode of the TUI.
type Mode int

const (
	// ModeBrowse is the default mode for navigating the session tree.
	ModeBrowse Mode = iota
	// ModeFilter is active while the filter text is being edited.
	ModeFilter
	// ModePicker shows the session file browser.
	ModePicker
	// ModeWizard shows the profile and session file picker.
	ModeWizard
	// ModeRecent shows the recently opened files list.
	ModeRecent
	// ModeExport shows the export form.
	ModeExport
	// ModeHelp shows the keybinding reference.
	ModeHelp
	// ModeErrorDetail shows the full text of the last error.
	ModeErrorDetail
)

// Phase represents the lifecycle of the loaded document. It is
// independent of the input mode: a modal can be open while a load is
// running, and a failed load keeps the previous phase rather than
// introducing a failure state of its own. Exports are tracked
// separately through their cancel handle, so a load can replace the
// document while an older snapshot is still being written out.
type Phase int

const (
	// PhaseEmpty means no session has been loaded yet.
	PhaseEmpty Phase = iota
	// PhaseLoading means a background load is in flight.
	PhaseLoading
	// PhaseReady means a document is loaded and browsable.
	PhaseReady
)

// Focusable panes in the main layout.
const (
	paneTree = iota
	panePreview
)

// Model is the main TUI model containing all application state.
type Model struct {
	// Configuration and services
	settings config.Settings
	state    config.State
	logger   *logging.Logger
	engine   *export.Engine

	// Document state
	doc    session.Document // last successfully loaded session
	view   session.Document // doc with the active filter applied
	loaded bool
	query  filter.Query

	// Load lifecycle
	phase       Phase
	loadGen     int
	loadCancel  context.CancelFunc
	loadEvents  chan tea.Msg
	loadStage   string
	pendingPath string
	openOnStart string

	// Export lifecycle
	exportCancel context.CancelFunc

	// Tree navigation
	rows       []treeRow
	cursor     int
	treeOffset int
	collapsed  map[int]bool
	focusPane  int
	gPressed   bool

	// Filter editing
	filterInput textinput.Model
	savedQuery  filter.Query

	// Session file browser
	picker filepicker.Model

	// Wizard state
	wizardProfiles []firefox.Profile
	wizardFiles    []firefox.SessionFile
	wizardPane     int
	wizardProfile  int
	wizardFile     int

	// Recent files modal
	recentIndex int

	// Export form
	exportFormat    export.Format
	exportPath      textinput.Model
	exportOverwrite bool
	exportDirs      bool
	exportField     int

	// UI state
	mode    Mode
	width   int
	height  int
	spinner spinner.Model

	// Status bar messages
	statusMessage    string
	errorMessage     string
	fullErrorMessage string
	statusID         int
	errorID          int

	// Viewports
	previewView   viewport.Model
	modalView     viewport.Model
	viewportReady bool

	// Preview source view
	showSource  bool
	sourceCache string
}

// Init returns the initial command, starting a load when a session file
// was given on the command line.
func (m *Model) Init() tea.Cmd {
	if m.openOnStart != "" {
		path := m.openOnStart
		m.openOnStart = ""
		return m.startLoad(path)
	}
	return nil
}

// Update handles all incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewports()
		if m.mode == ModePicker {
			m.picker.Height = m.pickerHeight()
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs while background work is in flight.
		if m.phase != PhaseLoading && !m.exporting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadProgressMsg:
		if msg.gen != m.loadGen {
			return m, nil
		}
		m.loadStage = msg.status
		return m, m.waitForLoadEvent()

	case sessionLoadedMsg:
		if msg.gen != m.loadGen {
			return m, nil
		}
		return m, m.finishLoad(msg.doc)

	case sessionFailedMsg:
		if msg.gen != m.loadGen {
			return m, nil
		}
		return m, m.failLoad(msg.path, msg.err)

	case exportDoneMsg:
		m.exportCancel = nil
		m.state.RememberExport(msg.path, string(msg.format))
		m.saveState()
		m.logger.Info("export complete",
			zap.String("format", string(msg.format)),
			zap.String("path", msg.path))
		return m, m.setStatusMessage(fmt.Sprintf("Exported %s to %s", msg.format, msg.path))

	case exportFailedMsg:
		m.exportCancel = nil
		if errors.Is(msg.err, context.Canceled) {
			return m, m.setStatusMessage("Export cancelled")
		}
		m.logger.Warn("export failed", zap.Error(msg.err))
		if errors.Is(msg.err, export.ErrExists) {
			return m, m.setErrorMessage(fmt.Sprintf("%v (enable overwrite in the export form)", msg.err))
		}
		return m, m.setErrorMessage(fmt.Sprintf("Export failed: %v", msg.err))

	case clipboardCopiedMsg:
		word := "links"
		if msg.count == 1 {
			word = "link"
		}
		return m, m.setStatusMessage(fmt.Sprintf("Copied %d %s to clipboard", msg.count, word))

	case wizardProfilesMsg:
		m.openWizardWith(msg.profiles)
		return m, nil

	case errorMsg:
		return m, m.setErrorMessage(string(msg))

	case statusClearMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
		}
		return m, nil

	case errorClearMsg:
		if msg.id == m.errorID {
			m.errorMessage = ""
		}
		return m, nil
	}

	// Messages without a case above belong to the file browser while it
	// is open, notably its directory listing results.
	if m.mode == ModePicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	return m, nil
}

// finishLoad installs a freshly loaded document and reports its stats.
func (m *Model) finishLoad(doc session.Document) tea.Cmd {
	m.loadCancel = nil
	m.loadEvents = nil
	m.loadStage = ""
	m.pendingPath = ""
	m.doc = doc
	m.loaded = true
	m.phase = PhaseReady
	m.focusPane = paneTree
	m.cursor = 0
	m.applyFilter()

	m.state.RememberOpened(doc.SourcePath)
	m.saveState()

	st := doc.Stats()
	m.logger.Info("session loaded",
		zap.String("path", doc.SourcePath),
		zap.Int("windows", st.Windows),
		zap.Int("tabs", st.Tabs),
		zap.Int("entries", st.Entries))
	return m.setStatusMessage(fmt.Sprintf("Loaded %d windows, %d tabs, %d history entries",
		st.Windows, st.Tabs, st.Entries))
}

// failLoad reports a load failure. The previously loaded document, if
// any, stays on screen.
func (m *Model) failLoad(path string, err error) tea.Cmd {
	m.loadCancel = nil
	m.loadEvents = nil
	m.loadStage = ""
	m.pendingPath = ""
	if m.loaded {
		m.phase = PhaseReady
	} else {
		m.phase = PhaseEmpty
	}
	if errors.Is(err, context.Canceled) {
		return m.setStatusMessage("Load cancelled")
	}
	m.logger.Warn("session load failed", zap.String("path", path), zap.Error(err))
	return m.setErrorMessage(fmt.Sprintf("Load failed: %v", err))
}

// saveState persists the runtime state, logging instead of interrupting
// the session when the write fails.
func (m *Model) saveState() {
	if err := config.SaveState(m.state); err != nil {
		m.logger.Warn("state save failed", zap.Error(err))
	}
}

// setStatusMessage sets an informational message and schedules its
// removal.
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	if len(msg) > StatusMessageMaxLength {
		msg = msg[:StatusMessageMaxLength-3] + "..."
	}
	m.statusMessage = msg
	m.statusID++
	id := m.statusID
	return tea.Tick(StatusMessageDuration, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

// setErrorMessage sets an error message and schedules its removal. The
// untruncated text stays available for the error detail view.
func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.fullErrorMessage = msg
	if len(msg) > StatusMessageMaxLength {
		msg = msg[:StatusMessageMaxLength-3] + "..."
	}
	m.errorMessage = msg
	m.errorID++
	id := m.errorID
	return tea.Tick(ErrorMessageDuration, func(time.Time) tea.Msg {
		return errorClearMsg{id: id}
	})
}

// updateViewports resizes the viewports after a terminal resize. The
// width calculation must match renderMain.
func (m *Model) updateViewports() {
	previewWidth := m.width - m.treeWidth() - 6
	if previewWidth < 0 {
		previewWidth = 0
	}
	// Two rows of the preview pane hold its title.
	previewHeight := m.height - ChromeHeight - 2
	if previewHeight < 0 {
		previewHeight = 0
	}
	if !m.viewportReady {
		m.previewView = viewport.New(previewWidth, previewHeight)
		m.modalView = viewport.New(m.width-ModalWidthMargin, m.height-ModalHeightMargin)
		m.viewportReady = true
	} else {
		m.previewView.Width = previewWidth
		m.previewView.Height = previewHeight
	}
	m.updatePreview()
}

// View renders the current state of the model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModePicker:
		return m.renderPickerModal()
	case ModeWizard:
		return m.renderWizardModal()
	case ModeRecent:
		return m.renderRecentModal()
	case ModeExport:
		return m.renderExportModal()
	case ModeHelp:
		return m.renderHelp()
	case ModeErrorDetail:
		return m.renderErrorDetail()
	default:
		return m.renderMain()
	}
}

// errorMsg carries an error description for the status bar.
type errorMsg string

// loadProgressMsg reports a stage change from a background load.
type loadProgressMsg struct {
	gen    int
	status string
}

// sessionLoadedMsg delivers a successfully loaded session document.
type sessionLoadedMsg struct {
	gen int
	doc session.Document
}

// sessionFailedMsg delivers a load failure.
type sessionFailedMsg struct {
	gen  int
	path string
	err  error
}

// exportDoneMsg reports a completed export.
type exportDoneMsg struct {
	format export.Format
	path   string
}

// exportFailedMsg reports a failed export.
type exportFailedMsg struct {
	err error
}

// clipboardCopiedMsg reports how many links were copied.
type clipboardCopiedMsg struct {
	count int
}

// wizardProfilesMsg delivers discovered Firefox profiles to the wizard.
type wizardProfilesMsg struct {
	profiles []firefox.Profile
}

// statusClearMsg clears the status message it was scheduled for.
type statusClearMsg struct {
	id int
}

// errorClearMsg clears the error message it was scheduled for.
type errorClearMsg struct {
	id int
}
