// Package cli implements the headless command paths: exporting a session
// file without the TUI and the profile/format listings.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Lej77/firefox-session-tui/internal/export"
	"github.com/Lej77/firefox-session-tui/internal/export/chromepdf"
	"github.com/Lej77/firefox-session-tui/internal/filter"
	"github.com/Lej77/firefox-session-tui/internal/firefox"
	"github.com/Lej77/firefox-session-tui/internal/loader"
)

// ExportOptions contains options for exporting a session file in CLI mode
type ExportOptions struct {
	FilePath      string
	Formats       []string // Format names; empty means html
	OutputPath    string   // File for a single format, directory for several
	Query         string   // Title filter applied before export
	MatchURLs     bool
	AllHistory    bool
	CaseSensitive bool
	Fuzzy         bool
	IncludeClosed bool
	Overwrite     bool
	CreateDirs    bool

	// Out receives progress and result lines. Defaults to os.Stdout.
	Out io.Writer
}

// Export loads a session store file and writes it out in every requested
// format. Formats render concurrently; the first failure cancels the rest.
func Export(opts ExportOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	formats, err := parseFormats(opts.Formats)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	doc, err := loader.Load(ctx, opts.FilePath, loader.Options{
		IncludeClosed: opts.IncludeClosed,
		Progress: func(status string) {
			fmt.Fprintf(out, "%s...\n", status)
		},
	})
	if err != nil {
		return err
	}

	if opts.Query != "" {
		doc = filter.Apply(doc, filter.Query{
			Text:          opts.Query,
			MatchURLs:     opts.MatchURLs,
			AllHistory:    opts.AllHistory,
			CaseSensitive: opts.CaseSensitive,
			Fuzzy:         opts.Fuzzy,
		})
	}

	stats := doc.Stats()
	fmt.Fprintf(out, "Loaded %d windows, %d tabs, %d history entries\n",
		stats.Windows, stats.Tabs, stats.Entries)

	// The browser-backed converter is only wired up when a PDF was asked
	// for, so plain exports never probe for a browser binary.
	var converter export.PDFConverter
	for _, f := range formats {
		if f == export.FormatPDF {
			converter = chromepdf.NewConverter()
			break
		}
	}
	engine := export.NewEngine(converter)

	writeOpts := export.Options{
		Overwrite:  opts.Overwrite,
		CreateDirs: opts.CreateDirs,
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		path := destination(opts, format, len(formats) > 1)
		g.Go(func() error {
			if err := engine.Export(ctx, doc, format, path, writeOpts); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", path)
			return nil
		})
	}
	return g.Wait()
}

// parseFormats resolves and dedupes the requested format names.
func parseFormats(names []string) ([]export.Format, error) {
	if len(names) == 0 {
		return []export.Format{export.FormatHTML}, nil
	}

	seen := make(map[export.Format]bool)
	var formats []export.Format
	for _, name := range names {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// destination resolves the output path for one format. With several
// formats the output path is treated as a directory; with one it may name
// the file directly.
func destination(opts ExportOptions, format export.Format, multi bool) string {
	name := outputName(opts.FilePath, format)

	if multi {
		dir := opts.OutputPath
		if dir == "" {
			dir = "."
		}
		return filepath.Join(dir, name)
	}

	out := opts.OutputPath
	if out == "" {
		return name
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, name)
	}
	return out
}

// outputName derives a file name from the input session store, so
// sessionstore.jsonlz4 becomes sessionstore.html and so on.
func outputName(inputPath string, format export.Format) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "session"
	}
	return base + format.Ext()
}

// ListProfiles prints the discovered Firefox profiles with their newest
// session store file.
func ListProfiles(w io.Writer) error {
	profiles, err := firefox.Profiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles found")
		return nil
	}

	for _, p := range profiles {
		marker := " "
		if p.Default {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, p.Name)
		fmt.Fprintf(w, "    %s\n", p.Path)

		if file, err := p.FindSessionFile(); err == nil {
			fmt.Fprintf(w, "    session: %s\n", file)
		} else {
			fmt.Fprintln(w, "    session: none found")
		}
	}
	return nil
}

// ListFormats prints the export formats and whether each can be produced
// on this machine.
func ListFormats(w io.Writer) error {
	engine := export.NewEngine(chromepdf.NewConverter())

	for _, info := range export.Formats() {
		note := ""
		if !engine.Supported(info.Format) {
			note = "  (unavailable: no browser found)"
		}
		fmt.Fprintf(w, "%-10s %-6s %s%s\n", info.Format, info.Extension, info.Name, note)
	}
	return nil
}
