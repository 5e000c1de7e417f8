package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lej77/firefox-session-tui/internal/config"
	"github.com/Lej77/firefox-session-tui/internal/export"
	"github.com/Lej77/firefox-session-tui/internal/logging"
	"github.com/Lej77/firefox-session-tui/internal/session"
)

func TestNewModelDefaults(t *testing.T) {
	m := CreateTestModel(t)

	AssertModelField(t, "mode", m.mode, ModeBrowse)
	AssertModelField(t, "phase", m.phase, PhaseEmpty)
	AssertModelField(t, "loaded", m.loaded, false)
	AssertModelField(t, "exportFormat", m.exportFormat, export.FormatHTML)
}

func TestWindowSizeUpdatesDimensions(t *testing.T) {
	m := CreateTestModel(t)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	um := model.(*Model)

	AssertModelField(t, "width", um.width, 80)
	AssertModelField(t, "height", um.height, 24)
}

func TestSessionLoadedBuildsRows(t *testing.T) {
	m := CreateTestModel(t)
	m.loadGen = 1

	model, cmd := m.Update(sessionLoadedMsg{gen: 1, doc: testDocument()})
	um := model.(*Model)

	AssertModelField(t, "phase", um.phase, PhaseReady)
	AssertModelField(t, "loaded", um.loaded, true)
	// Two window rows plus three tab rows.
	AssertModelField(t, "rows", len(um.rows), 5)
	if cmd == nil {
		t.Fatal("expected a status message command")
	}
	if !strings.Contains(um.statusMessage, "2 windows, 3 tabs, 4 history entries") {
		t.Errorf("statusMessage = %q, want load stats", um.statusMessage)
	}
}

func TestStaleLoadResultDiscarded(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())
	m.loadGen = 5

	model, _ := m.Update(sessionLoadedMsg{gen: 4, doc: session.Document{SourcePath: "/tmp/old.jsonlz4"}})
	um := model.(*Model)
	AssertModelField(t, "doc path", um.doc.SourcePath, "/tmp/recovery.jsonlz4")

	model, _ = um.Update(sessionFailedMsg{gen: 4, path: "/tmp/old.jsonlz4", err: errors.New("boom")})
	um = model.(*Model)
	AssertModelField(t, "errorMessage", um.errorMessage, "")
	AssertModelField(t, "phase", um.phase, PhaseReady)
}

func TestFailedLoadKeepsDocument(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())
	m.phase = PhaseLoading

	model, _ := m.Update(sessionFailedMsg{gen: m.loadGen, path: "/tmp/next.jsonlz4", err: errors.New("bad magic")})
	um := model.(*Model)

	AssertModelField(t, "phase", um.phase, PhaseReady)
	AssertModelField(t, "loaded", um.loaded, true)
	AssertModelField(t, "rows kept", len(um.rows), 5)
	if !strings.Contains(um.errorMessage, "bad magic") {
		t.Errorf("errorMessage = %q, want load failure", um.errorMessage)
	}
}

func TestFailedLoadWithoutDocumentReturnsToEmpty(t *testing.T) {
	m := CreateTestModel(t)
	m.loadGen = 1
	m.phase = PhaseLoading

	model, _ := m.Update(sessionFailedMsg{gen: 1, path: "/tmp/x.jsonlz4", err: errors.New("no such file")})
	um := model.(*Model)

	AssertModelField(t, "phase", um.phase, PhaseEmpty)
	AssertModelField(t, "loaded", um.loaded, false)
}

func TestCancelledLoadReportsStatus(t *testing.T) {
	m := CreateTestModel(t)
	m.loadGen = 1
	m.phase = PhaseLoading

	model, _ := m.Update(sessionFailedMsg{gen: 1, path: "/tmp/x.jsonlz4", err: context.Canceled})
	um := model.(*Model)

	AssertModelField(t, "statusMessage", um.statusMessage, "Load cancelled")
	AssertModelField(t, "errorMessage", um.errorMessage, "")
}

func TestLoadProgressUpdatesStage(t *testing.T) {
	m := CreateTestModel(t)
	m.loadGen = 2
	m.loadEvents = make(chan tea.Msg, 1)

	model, cmd := m.Update(loadProgressMsg{gen: 2, status: "Parsing session data"})
	um := model.(*Model)
	AssertModelField(t, "loadStage", um.loadStage, "Parsing session data")
	if cmd == nil {
		t.Fatal("expected the next event wait command")
	}

	// Stale progress is dropped without re-arming the wait.
	model, cmd = um.Update(loadProgressMsg{gen: 1, status: "Reading input file"})
	um = model.(*Model)
	AssertModelField(t, "loadStage unchanged", um.loadStage, "Parsing session data")
	if cmd != nil {
		t.Fatal("stale progress must not re-arm the wait")
	}
}

func TestStatusClearGuard(t *testing.T) {
	m := CreateTestModel(t)
	m.setStatusMessage("first")
	oldID := m.statusID
	m.setStatusMessage("second")

	model, _ := m.Update(statusClearMsg{id: oldID})
	um := model.(*Model)
	AssertModelField(t, "statusMessage", um.statusMessage, "second")

	model, _ = um.Update(statusClearMsg{id: um.statusID})
	um = model.(*Model)
	AssertModelField(t, "statusMessage cleared", um.statusMessage, "")
}

func TestErrorTruncationKeepsFullText(t *testing.T) {
	m := CreateTestModel(t)
	long := strings.Repeat("x", 150)

	m.setErrorMessage(long)

	AssertModelField(t, "errorMessage length", len(m.errorMessage), StatusMessageMaxLength)
	if !strings.HasSuffix(m.errorMessage, "...") {
		t.Error("errorMessage should end with an ellipsis")
	}
	AssertModelField(t, "fullErrorMessage", m.fullErrorMessage, long)
}

func TestExportDoneRecordsState(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())
	m.exportCancel = func() {}

	model, _ := m.Update(exportDoneMsg{format: export.FormatHTML, path: "/tmp/out/session.html"})
	um := model.(*Model)

	AssertModelField(t, "exporting", um.exporting(), false)
	AssertModelField(t, "lastExportDir", um.state.LastExportDir, "/tmp/out")
	AssertModelField(t, "lastFormat", um.state.LastFormat, "html")
	if !strings.Contains(um.statusMessage, "Exported html") {
		t.Errorf("statusMessage = %q, want export confirmation", um.statusMessage)
	}
}

func TestExportExistsErrorSuggestsOverwrite(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())
	m.exportCancel = func() {}

	err := &export.ExportError{Format: export.FormatText, Path: "/tmp/x.txt", Err: export.ErrExists}
	model, _ := m.Update(exportFailedMsg{err: err})
	um := model.(*Model)

	AssertModelField(t, "exporting", um.exporting(), false)
	if !strings.Contains(um.errorMessage, "overwrite") {
		t.Errorf("errorMessage = %q, want overwrite hint", um.errorMessage)
	}
}

func TestCancelledExportReportsStatus(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())
	m.exportCancel = func() {}

	model, _ := m.Update(exportFailedMsg{err: context.Canceled})
	um := model.(*Model)

	AssertModelField(t, "exporting", um.exporting(), false)
	AssertModelField(t, "statusMessage", um.statusMessage, "Export cancelled")
	AssertModelField(t, "errorMessage", um.errorMessage, "")
}

func TestSpinnerTicksOnlyWhileBusy(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())

	_, cmd := m.Update(m.spinner.Tick())
	if cmd != nil {
		t.Fatal("spinner must stay idle while nothing runs")
	}

	m.phase = PhaseLoading
	_, cmd = m.Update(m.spinner.Tick())
	if cmd == nil {
		t.Fatal("spinner should keep ticking while a load runs")
	}

	m.phase = PhaseReady
	m.exportCancel = func() {}
	_, cmd = m.Update(m.spinner.Tick())
	if cmd == nil {
		t.Fatal("spinner should keep ticking while an export runs")
	}
}

func TestClipboardCopiedMessage(t *testing.T) {
	m := CreateTestModel(t)

	model, _ := m.Update(clipboardCopiedMsg{count: 3})
	um := model.(*Model)
	AssertModelField(t, "statusMessage", um.statusMessage, "Copied 3 links to clipboard")

	model, _ = um.Update(clipboardCopiedMsg{count: 1})
	um = model.(*Model)
	AssertModelField(t, "singular", um.statusMessage, "Copied 1 link to clipboard")
}

func TestViewBeforeFirstResize(t *testing.T) {
	m := New(config.DefaultSettings(), config.State{}, logging.NewNop())

	AssertModelField(t, "view", (&m).View(), "Initializing...")
}

func TestWelcomeViewListsOpeners(t *testing.T) {
	m := CreateTestModel(t)

	view := m.View()
	for _, want := range []string{"No session loaded", "pick a Firefox profile", "recently opened"} {
		if !strings.Contains(view, want) {
			t.Errorf("welcome view missing %q", want)
		}
	}
}

func TestMainViewShowsWindowsAndTabs(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())

	view := m.View()
	for _, want := range []string{"Research", "Maps", "Daily news", "Window 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("main view missing %q", want)
		}
	}
}

func TestFilterNarrowsTreeAndStats(t *testing.T) {
	m := CreateTestModelWithDocument(t, testDocument())

	m.query.Text = "ma"
	m.applyFilter()

	// Maps and Mail match; Daily news does not.
	AssertModelField(t, "windows", len(m.view.Windows), 2)
	AssertModelField(t, "tabs", m.view.Stats().Tabs, 2)
	AssertModelField(t, "rows", len(m.rows), 4)

	m.query.Text = ""
	m.applyFilter()
	AssertModelField(t, "restored rows", len(m.rows), 5)
}
