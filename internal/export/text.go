package export

import (
	"strings"

	"github.com/Lej77/firefox-session-tui/internal/session"
)

// TextRenderer emits one link per line: the URL, then a tab and the title
// when the page has one. Lines are grouped per window with a blank line
// between groups.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (*TextRenderer) Render(doc session.Document) ([]byte, error) {
	var b strings.Builder
	lastWindow := -1
	for _, link := range doc.Links() {
		if lastWindow >= 0 && link.Window != lastWindow {
			b.WriteString("\n")
		}
		lastWindow = link.Window

		b.WriteString(link.URL)
		if link.Title != "" {
			b.WriteString("\t")
			b.WriteString(link.Title)
		}
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
