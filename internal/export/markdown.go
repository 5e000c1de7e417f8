package export

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/Lej77/firefox-session-tui/internal/session"
)

// MarkdownRenderer derives Markdown from the HTML renderer's output, so the
// two formats always carry the same structure and the same escaping rules.
type MarkdownRenderer struct {
	html *HTMLRenderer
	conv *converter.Converter
}

func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		html: NewHTMLRenderer(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

func (r *MarkdownRenderer) Render(doc session.Document) ([]byte, error) {
	page, err := r.html.Render(doc)
	if err != nil {
		return nil, err
	}

	result, err := r.conv.ConvertString(string(page))
	if err != nil {
		return nil, fmt.Errorf("convert to markdown: %w", err)
	}

	return []byte(strings.TrimSpace(result) + "\n"), nil
}
