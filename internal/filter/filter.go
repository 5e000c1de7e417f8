// Package filter implements the query engine over session documents.
// Everything here is pure: filtering derives a new document and never
// touches the one that was loaded.
package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"

	"github.com/Lej77/firefox-session-tui/internal/session"
)

// folder implements Unicode case folding, so "STRASSE" matches "straße"
// and not just ASCII case pairs
var folder = cases.Fold()

// Query describes one filter pass over a document
type Query struct {
	Text          string
	MatchURLs     bool // Also match entry URLs, not only titles
	AllHistory    bool // Search every history entry, not only the active one
	CaseSensitive bool // Exact-case substring instead of folded matching
	Fuzzy         bool // Subsequence matching instead of substring
}

// Active reports whether the query would filter anything
func (q Query) Active() bool {
	return strings.TrimSpace(q.Text) != ""
}

// Apply returns a document reduced to the tabs matching the query, keeping
// only windows that still hold at least one tab. Relative order of windows
// and tabs is preserved and a surviving tab keeps its whole history.
// An empty or whitespace-only query returns the document unchanged.
func Apply(doc session.Document, q Query) session.Document {
	if !q.Active() {
		return doc
	}

	text := strings.TrimSpace(q.Text)
	if !q.CaseSensitive {
		text = folder.String(text)
	}

	out := session.Document{
		SourcePath: doc.SourcePath,
		LoadedAt:   doc.LoadedAt,
	}

	for _, win := range doc.Windows {
		filtered := session.Window{
			Title:    win.Title,
			Selected: -1,
			Closed:   win.Closed,
		}
		for i, tab := range win.Tabs {
			if !tabMatches(tab, text, q) {
				continue
			}
			// Keep the window's focused-tab marker when that tab survives
			if i == win.Selected {
				filtered.Selected = len(filtered.Tabs)
			}
			filtered.Tabs = append(filtered.Tabs, tab)
		}
		if len(filtered.Tabs) > 0 {
			out.Windows = append(out.Windows, filtered)
		}
	}

	return out
}

// tabMatches reports whether the tab's candidate strings match the
// prepared query text. The candidates are the active entry's title and,
// per the query flags, its URL and the rest of the history.
func tabMatches(tab session.Tab, text string, q Query) bool {
	if q.Fuzzy {
		return fuzzyMatches(tab, q)
	}

	for _, s := range candidates(tab, q) {
		if !q.CaseSensitive {
			s = folder.String(s)
		}
		if strings.Contains(s, text) {
			return true
		}
	}
	return false
}

// fuzzyMatches runs subsequence matching over the tab's candidate strings.
// The fuzzy matcher handles case-insensitivity itself, so the CaseSensitive
// flag only applies to substring mode.
func fuzzyMatches(tab session.Tab, q Query) bool {
	return len(fuzzy.Find(strings.TrimSpace(q.Text), candidates(tab, q))) > 0
}

// candidates collects the strings a query is matched against: the active
// history entry, or all of them with AllHistory, titles always and URLs
// when MatchURLs is set.
func candidates(tab session.Tab, q Query) []string {
	entries := []session.HistoryEntry{tab.Current()}
	if q.AllHistory {
		entries = tab.History
	}

	out := make([]string, 0, len(entries)*2)
	for _, entry := range entries {
		out = append(out, entry.Title)
		if q.MatchURLs {
			out = append(out, entry.URL)
		}
	}
	return out
}
