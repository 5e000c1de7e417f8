package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Lej77/firefox-session-tui/internal/session"
)

// pageView is the template-friendly projection of a Document.
type pageView struct {
	Source  string
	Stats   session.Stats
	Windows []windowView
}

type windowView struct {
	Label string
	Tabs  []tabView
}

type tabView struct {
	Title    string
	URL      string
	Pinned   bool
	Selected bool
	History  []session.HistoryEntry
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Firefox session links</title>
<style>
body{font-family:system-ui,sans-serif;max-width:800px;margin:2rem auto;padding:0 1rem;color:#222;background:#fafafa}
h1{font-size:1.4rem;border-bottom:2px solid #e0e0e0;padding-bottom:.5rem}
h2{font-size:1.1rem;color:#444;margin-top:1.5rem}
ul.tabs{list-style:none;padding-left:0}
ul.tabs>li{background:#fff;border:1px solid #e0e0e0;border-radius:6px;padding:.5rem .8rem;margin-bottom:.4rem}
.pin{font-size:.75rem;color:#946200;border:1px solid #e0c080;border-radius:4px;padding:0 .3rem;margin-right:.4rem}
.sel{font-size:.75rem;color:#00695c;border:1px solid #80cbc4;border-radius:4px;padding:0 .3rem;margin-right:.4rem}
ol.history{font-size:.85rem;color:#666;margin:.4rem 0 0}
.meta{font-size:.8rem;color:#666}
</style></head><body>
<h1>Firefox session links</h1>
{{- if .Source}}
<p class="meta">{{.Source}}</p>
{{- end}}
<p class="meta">{{.Stats.Windows}} windows, {{.Stats.Tabs}} tabs, {{.Stats.Entries}} history entries</p>
{{- range .Windows}}
<h2>{{.Label}}</h2>
<ul class="tabs">
{{- range .Tabs}}
<li>{{if .Pinned}}<span class="pin">pinned</span>{{end}}{{if .Selected}}<span class="sel">active</span>{{end}}<a href="{{.URL}}">{{.Title}}</a>
{{- if .History}}
<ol class="history">
{{- range .History}}
<li><a href="{{.URL}}">{{.DisplayTitle}}</a></li>
{{- end}}
</ol>
{{- end}}</li>
{{- end}}
</ul>
{{- end}}
</body></html>
`))

// HTMLRenderer produces a standalone HTML page with the session's links
// grouped under window headings. Titles and URLs go through html/template's
// contextual escaping.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: pageTmpl}
}

func (r *HTMLRenderer) Render(doc session.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, newPageView(doc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newPageView(doc session.Document) pageView {
	view := pageView{
		Source:  doc.SourcePath,
		Stats:   doc.Stats(),
		Windows: make([]windowView, 0, len(doc.Windows)),
	}
	for i, win := range doc.Windows {
		view.Windows = append(view.Windows, newWindowView(i, win))
	}
	return view
}

func newWindowView(index int, win session.Window) windowView {
	label := win.Title
	if label == "" {
		label = fmt.Sprintf("Window %d", index+1)
	}
	if win.Closed {
		label += " (closed)"
	}

	view := windowView{
		Label: label,
		Tabs:  make([]tabView, 0, len(win.Tabs)),
	}
	for i, tab := range win.Tabs {
		current := tab.Current()
		tv := tabView{
			Title:    current.DisplayTitle(),
			URL:      current.URL,
			Pinned:   tab.Pinned,
			Selected: i == win.Selected,
		}
		// The nested history list only appears when there is more than the
		// current page to show.
		if len(tab.History) > 1 {
			tv.History = tab.History
		}
		view.Tabs = append(view.Tabs, tv)
	}
	return view
}
