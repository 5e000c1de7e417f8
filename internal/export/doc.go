/*
Package export renders session documents to files.

# Overview

The export package provides:
  - HTML, Markdown and plain text renderers
  - Optional PDF output through a pluggable converter
  - Atomic destination writes
  - Overwrite and create-directory handling

# Renderers

HTML (html.go):
  - html/template page with contextual escaping
  - Links grouped under window headings
  - Per-tab history as nested lists

Markdown (markdown.go):
  - Derived from the HTML renderer's output via html-to-markdown
  - Keeps the two formats structurally identical

Text (text.go):
  - One URL per line, title after a tab when present
  - Shared with the preview pane and clipboard copy

PDF (pdf.go, chromepdf subpackage):
  - Renders the HTML page, converts it through a PDFConverter
  - Output is validated with pdfcpu before anything touches disk
  - Without a converter, PDF export fails with ErrUnsupportedFormat
    and every other format keeps working

# Write Discipline

All exports render fully in memory, write to a temp file beside the
destination and rename it into place. A failed export never leaves a
partial file where the caller asked for output.

# Example Usage

	engine := export.NewEngine(nil)

	err := engine.Export(ctx, doc, export.FormatHTML, "links.html", export.Options{
		Overwrite:  true,
		CreateDirs: true,
	})
	if err != nil {
		var exportErr *export.ExportError
		if errors.As(err, &exportErr) {
			log.Printf("export to %s failed: %v", exportErr.Path, exportErr.Err)
		}
	}
*/
package export
