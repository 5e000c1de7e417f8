package session

import "time"

// Document is an immutable snapshot of one browser session: every window,
// tab and per-tab history entry from a session store file, in source order.
// Filtering and export derive new values and never modify a loaded document.
type Document struct {
	Windows    []Window
	SourcePath string
	LoadedAt   time.Time
}

// Window represents one browser window and its tabs
type Window struct {
	Title    string
	Tabs     []Tab
	Selected int  // Index of the focused tab, -1 when unknown
	Closed   bool // True for windows restored from the closed-windows list
}

// Tab represents one tab and its navigation history
// A loaded tab always holds at least one history entry
type Tab struct {
	History []HistoryEntry
	Active  int // Index into History of the current entry
	Pinned  bool
}

// HistoryEntry is a single visited page in a tab's history
type HistoryEntry struct {
	URL   string
	Title string
}

// Stats holds document-wide counts
type Stats struct {
	Windows int
	Tabs    int
	Entries int
}

// Link is one exportable URL with its position in the document
type Link struct {
	URL    string
	Title  string
	Window int // 0-based window index
	Tab    int // 0-based tab index within the window
}

// Current returns the tab's active history entry.
// The index is clamped so a tab with history never yields an out-of-range access.
func (t Tab) Current() HistoryEntry {
	if len(t.History) == 0 {
		return HistoryEntry{}
	}
	idx := t.Active
	if idx < 0 {
		idx = 0
	} else if idx >= len(t.History) {
		idx = len(t.History) - 1
	}
	return t.History[idx]
}

// Title returns the title of the tab's active entry
func (t Tab) Title() string {
	return t.Current().Title
}

// URL returns the URL of the tab's active entry
func (t Tab) URL() string {
	return t.Current().URL
}

// DisplayTitle returns the entry title, falling back to the URL when
// the page never reported one
func (e HistoryEntry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.URL
}

// Empty reports whether the document holds no windows
func (d Document) Empty() bool {
	return len(d.Windows) == 0
}

// Stats counts windows, tabs and history entries
func (d Document) Stats() Stats {
	s := Stats{Windows: len(d.Windows)}
	for _, w := range d.Windows {
		s.Tabs += len(w.Tabs)
		for _, t := range w.Tabs {
			s.Entries += len(t.History)
		}
	}
	return s
}

// Links flattens the document into its active links, in document order.
// One link per tab, taken from the tab's current history entry.
func (d Document) Links() []Link {
	var links []Link
	for wi, w := range d.Windows {
		for ti, t := range w.Tabs {
			entry := t.Current()
			links = append(links, Link{
				URL:    entry.URL,
				Title:  entry.Title,
				Window: wi,
				Tab:    ti,
			})
		}
	}
	return links
}

// AllLinks flattens the document into every history entry of every tab,
// in document order
func (d Document) AllLinks() []Link {
	var links []Link
	for wi, w := range d.Windows {
		for ti, t := range w.Tabs {
			for _, entry := range t.History {
				links = append(links, Link{
					URL:    entry.URL,
					Title:  entry.Title,
					Window: wi,
					Tab:    ti,
				})
			}
		}
	}
	return links
}
