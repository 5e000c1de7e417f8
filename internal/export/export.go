package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lej77/firefox-session-tui/internal/session"
)

// Format identifies an output format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatPDF      Format = "pdf"
)

// FormatInfo describes a format for pickers and CLI listings.
type FormatInfo struct {
	Format    Format
	Name      string
	Extension string
}

// Formats lists every format the engine knows about, in display order.
// Whether PDF actually works depends on the engine's converter.
func Formats() []FormatInfo {
	return []FormatInfo{
		{Format: FormatHTML, Name: "HTML", Extension: ".html"},
		{Format: FormatMarkdown, Name: "Markdown", Extension: ".md"},
		{Format: FormatText, Name: "Plain text", Extension: ".txt"},
		{Format: FormatPDF, Name: "PDF", Extension: ".pdf"},
	}
}

// Ext returns the conventional file extension for the format.
func (f Format) Ext() string {
	for _, info := range Formats() {
		if info.Format == f {
			return info.Extension
		}
	}
	return ""
}

// ParseFormat resolves a format from a name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format: %q", s)
	}
}

// ErrUnsupportedFormat reports a format the engine cannot produce in the
// current environment. Today that means PDF without a working converter.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ErrExists reports a destination that already exists while Overwrite is off.
var ErrExists = errors.New("destination already exists")

// ExportError wraps a failed export with the format and destination involved.
type ExportError struct {
	Format Format
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s to %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Renderer produces one output format from a document.
type Renderer interface {
	Render(doc session.Document) ([]byte, error)
}

// PDFConverter turns a rendered HTML page into PDF bytes. Implementations
// live outside the engine; chromepdf provides one backed by a headless
// browser. A nil or unavailable converter disables PDF export without
// affecting the other formats.
type PDFConverter interface {
	// Available reports whether the converter can run at all, for example
	// whether a browser binary was found. It must be cheap to call.
	Available() bool

	// Convert renders the HTML page to PDF.
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// Options controls how the destination is handled.
type Options struct {
	// Overwrite replaces an existing file at the destination. Without it an
	// existing file fails the export with ErrExists.
	Overwrite bool

	// CreateDirs creates missing parent directories before writing.
	CreateDirs bool
}

// Engine renders session documents and writes them out atomically.
type Engine struct {
	renderers map[Format]Renderer
	pdf       PDFConverter
}

// NewEngine builds an engine with the standard renderer set. converter may
// be nil when no PDF backend is present.
func NewEngine(converter PDFConverter) *Engine {
	return &Engine{
		renderers: map[Format]Renderer{
			FormatHTML:     NewHTMLRenderer(),
			FormatMarkdown: NewMarkdownRenderer(),
			FormatText:     NewTextRenderer(),
		},
		pdf: converter,
	}
}

// PDFAvailable reports whether PDF export can work right now.
func (e *Engine) PDFAvailable() bool {
	return e.pdf != nil && e.pdf.Available()
}

// Supported reports whether the engine can produce the given format.
func (e *Engine) Supported(format Format) bool {
	if format == FormatPDF {
		return e.PDFAvailable()
	}
	_, ok := e.renderers[format]
	return ok
}

// Render produces the output bytes for a format without touching disk.
// PDF output is validated before it is returned, so callers never see
// converter output that merely claims to be a PDF.
func (e *Engine) Render(ctx context.Context, doc session.Document, format Format) ([]byte, error) {
	if format == FormatPDF {
		return e.renderPDF(ctx, doc)
	}

	r, ok := e.renderers[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return r.Render(doc)
}

func (e *Engine) renderPDF(ctx context.Context, doc session.Document) ([]byte, error) {
	if !e.PDFAvailable() {
		return nil, ErrUnsupportedFormat
	}

	page, err := e.renderers[FormatHTML].Render(doc)
	if err != nil {
		return nil, err
	}

	data, err := e.pdf.Convert(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("convert to pdf: %w", err)
	}

	if err := validatePDF(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Export renders the document and writes it to path. Rendering happens
// entirely in memory before the destination is considered, so an
// unsupported format or a broken converter never creates or truncates a
// file. The final write goes through a temp file and a rename.
func (e *Engine) Export(ctx context.Context, doc session.Document, format Format, path string, opts Options) error {
	fail := func(err error) error {
		return &ExportError{Format: format, Path: path, Err: err}
	}

	data, err := e.Render(ctx, doc, format)
	if err != nil {
		return fail(err)
	}

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fail(ErrExists)
		}
	}

	if opts.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fail(err)
		}
	}

	if err := writeAtomic(path, data); err != nil {
		return fail(err)
	}
	return nil
}

// writeAtomic writes data next to the destination and renames it into
// place. The temp file is removed if the rename fails.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
