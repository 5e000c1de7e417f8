// Package loader turns session store files into documents. It owns the
// staged load (read, decompress, parse, collect) and the normalization
// rules that keep the rest of the program free of on-disk quirks.
package loader

import (
	"context"
	"fmt"
	"html"
	"os"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Lej77/firefox-session-tui/internal/session"
	"github.com/Lej77/firefox-session-tui/internal/sessionstore"
)

// Load stage descriptions, reported through Options.Progress
const (
	StatusReading       = "Reading input file"
	StatusDecompressing = "Decompressing data"
	StatusParsing       = "Parsing session data"
	StatusCollecting    = "Collecting windows and tabs"
)

// titlePolicy strips markup from page titles. Titles are page-controlled
// text; dropping tags here keeps them from reaching exports or the
// terminal. Entities are unescaped afterwards so the document holds plain
// text, not HTML-escaped text.
var titlePolicy = bluemonday.StrictPolicy()

// LoadError wraps any failure while loading a session store file.
// The cause is a *sessionstore.DecodeError for decode failures, so callers
// can branch on the stage with errors.As.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load session: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options controls a load
type Options struct {
	// IncludeClosed appends windows from the closed-windows list after the
	// open ones
	IncludeClosed bool

	// Progress, when set, receives a status line as each stage starts.
	// It is called from the loading goroutine and must not block.
	Progress func(status string)
}

// Load reads a session store file and builds the document. The context is
// checked between stages; a canceled load returns promptly without a
// partial document.
func Load(ctx context.Context, path string, opts Options) (session.Document, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}

	fail := func(err error) (session.Document, error) {
		return session.Document{}, &LoadError{Path: path, Err: err}
	}

	progress(StatusReading)
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(&sessionstore.DecodeError{Path: path, Stage: sessionstore.StageRead, Err: err})
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if sessionstore.IsCompressed(data) {
		progress(StatusDecompressing)
	}
	plain, err := sessionstore.Decompress(data)
	if err != nil {
		return fail(&sessionstore.DecodeError{Path: path, Stage: sessionstore.StageDecompress, Err: err})
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	progress(StatusParsing)
	store, err := sessionstore.Parse(plain)
	if err != nil {
		return fail(&sessionstore.DecodeError{Path: path, Stage: sessionstore.StageParse, Err: err})
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	progress(StatusCollecting)
	return buildDocument(store, path, opts.IncludeClosed), nil
}

// buildDocument normalizes a raw store into a document
func buildDocument(store *sessionstore.Store, path string, includeClosed bool) session.Document {
	doc := session.Document{
		SourcePath: path,
		LoadedAt:   time.Now(),
	}

	for _, raw := range store.Windows {
		doc.Windows = append(doc.Windows, buildWindow(raw, false))
	}
	if includeClosed {
		for _, raw := range store.ClosedWindows {
			doc.Windows = append(doc.Windows, buildWindow(raw, true))
		}
	}

	return doc
}

func buildWindow(raw sessionstore.RawWindow, closed bool) session.Window {
	win := session.Window{Selected: -1, Closed: closed}

	for _, rawTab := range raw.Tabs {
		win.Tabs = append(win.Tabs, buildTab(rawTab))
	}

	// Firefox stores the selection 1-based
	if raw.Selected >= 1 && raw.Selected <= len(win.Tabs) {
		win.Selected = raw.Selected - 1
	}

	return win
}

// buildTab normalizes one raw tab. A tab without history entries, which
// Firefox writes for tabs it never loaded, gets exactly one synthetic entry
// from the last known URL so every tab stays visible and addressable.
func buildTab(raw sessionstore.RawTab) session.Tab {
	tab := session.Tab{Pinned: raw.Pinned}

	for _, entry := range raw.Entries {
		tab.History = append(tab.History, session.HistoryEntry{
			URL:   entry.URL,
			Title: sanitizeTitle(entry.Title),
		})
	}

	if len(tab.History) == 0 {
		tab.History = []session.HistoryEntry{{URL: raw.UserTypedValue}}
	}

	// Firefox stores the active entry 1-based; clamp whatever we find
	tab.Active = raw.Index - 1
	if tab.Active < 0 {
		tab.Active = 0
	} else if tab.Active >= len(tab.History) {
		tab.Active = len(tab.History) - 1
	}

	return tab
}

func sanitizeTitle(title string) string {
	return html.UnescapeString(titlePolicy.Sanitize(title))
}
