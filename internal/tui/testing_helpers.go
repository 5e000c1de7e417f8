package tui

import (
	"testing"

	"github.com/Lej77/firefox-session-tui/internal/config"
	"github.com/Lej77/firefox-session-tui/internal/logging"
	"github.com/Lej77/firefox-session-tui/internal/session"
)

// CreateTestModel creates a model with default settings, a no-op logger
// and the dimensions of a regular terminal.
func CreateTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(config.DefaultSettings(), config.State{}, logging.NewNop())
	m.width = 120
	m.height = 40
	m.updateViewports()
	return &m
}

// CreateTestModelWithDocument creates a model that already has doc
// loaded and ready for browsing.
func CreateTestModelWithDocument(t *testing.T, doc session.Document) *Model {
	t.Helper()
	m := CreateTestModel(t)
	m.loadGen++
	_ = m.finishLoad(doc)
	m.statusMessage = ""
	return m
}

// testDocument builds a small session with two windows, three tabs and
// four history entries.
func testDocument() session.Document {
	return session.Document{
		SourcePath: "/tmp/recovery.jsonlz4",
		Windows: []session.Window{
			{
				Title:    "Research",
				Selected: 0,
				Tabs: []session.Tab{
					{
						History: []session.HistoryEntry{
							{URL: "https://example.com/start", Title: "Start"},
							{URL: "https://example.com/maps", Title: "Maps"},
						},
						Active: 1,
						Pinned: true,
					},
					{
						History: []session.HistoryEntry{
							{URL: "https://example.org/news", Title: "Daily news"},
						},
					},
				},
			},
			{
				Selected: 0,
				Tabs: []session.Tab{
					{
						History: []session.HistoryEntry{
							{URL: "https://mail.example.com", Title: "Mail"},
						},
					},
				},
			},
		},
	}
}

// AssertModelField fails the test when got differs from want.
func AssertModelField[T comparable](t *testing.T, name string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
