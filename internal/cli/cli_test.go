package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lej77/firefox-session-tui/internal/export"
	"github.com/Lej77/firefox-session-tui/internal/sessionstore"
)

const testSession = `{
	"windows": [
		{
			"tabs": [
				{"entries": [{"url": "https://mail.example.com/inbox", "title": "Mail inbox"}], "index": 1},
				{"entries": [{"url": "https://news.example.com", "title": "Daily news"}], "index": 1}
			],
			"selected": 1
		}
	]
}`

func writeSessionFile(t *testing.T) string {
	t.Helper()

	data, err := sessionstore.Compress([]byte(testSession))
	if err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sessionstore.jsonlz4")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestExportMultipleFormats(t *testing.T) {
	input := writeSessionFile(t)
	outDir := t.TempDir()
	var out bytes.Buffer

	err := Export(ExportOptions{
		FilePath:   input,
		Formats:    []string{"html", "markdown", "text"},
		OutputPath: outDir,
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	for _, name := range []string{"sessionstore.html", "sessionstore.md", "sessionstore.txt"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if got := strings.Count(out.String(), "Wrote "); got != 3 {
		t.Errorf("got %d Wrote lines, want 3:\n%s", got, out.String())
	}
	if !strings.Contains(out.String(), "Loaded 1 windows, 2 tabs") {
		t.Errorf("missing stats line:\n%s", out.String())
	}
}

func TestExportSingleFormatExplicitPath(t *testing.T) {
	input := writeSessionFile(t)
	outPath := filepath.Join(t.TempDir(), "links.txt")
	var out bytes.Buffer

	err := Export(ExportOptions{
		FilePath:   input,
		Formats:    []string{"text"},
		OutputPath: outPath,
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "https://mail.example.com/inbox") {
		t.Errorf("output missing link:\n%s", data)
	}
}

func TestExportAppliesQuery(t *testing.T) {
	input := writeSessionFile(t)
	outPath := filepath.Join(t.TempDir(), "filtered.txt")

	err := Export(ExportOptions{
		FilePath:   input,
		Formats:    []string{"text"},
		OutputPath: outPath,
		Query:      "mail",
		Out:        &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "mail.example.com") {
		t.Error("filter dropped the matching tab")
	}
	if strings.Contains(string(data), "news.example.com") {
		t.Error("filter kept a non-matching tab")
	}
}

func TestExportAllHistoryFlag(t *testing.T) {
	session := `{
		"windows": [
			{
				"tabs": [
					{"entries": [
						{"url": "https://start.example.com", "title": "Start page"},
						{"url": "https://docs.example.com", "title": "Docs"}
					], "index": 2},
					{"entries": [{"url": "https://news.example.com", "title": "Daily news"}], "index": 1}
				],
				"selected": 1
			}
		]
	}`
	data, err := sessionstore.Compress([]byte(session))
	if err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	input := filepath.Join(t.TempDir(), "sessionstore.jsonlz4")
	if err := os.WriteFile(input, data, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	outPath := filepath.Join(t.TempDir(), "all.txt")

	// "start" only appears in the first tab's back history.
	err = Export(ExportOptions{
		FilePath:   input,
		Formats:    []string{"text"},
		OutputPath: outPath,
		Query:      "start",
		AllHistory: true,
		Out:        &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	// The surviving tab exports its active entry, not the matched one.
	if !strings.Contains(string(got), "docs.example.com") {
		t.Errorf("history match dropped the tab:\n%s", got)
	}
	if strings.Contains(string(got), "news.example.com") {
		t.Errorf("filter kept a non-matching tab:\n%s", got)
	}
}

func TestExportCaseSensitiveFlag(t *testing.T) {
	input := writeSessionFile(t)
	outPath := filepath.Join(t.TempDir(), "exact.txt")

	err := Export(ExportOptions{
		FilePath:      input,
		Formats:       []string{"text"},
		OutputPath:    outPath,
		Query:         "MAIL",
		CaseSensitive: true,
		Out:           &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if strings.Contains(string(got), "example.com") {
		t.Errorf("exact-case query MAIL should match nothing:\n%s", got)
	}
}

func TestExportDedupesFormats(t *testing.T) {
	input := writeSessionFile(t)
	outDir := t.TempDir()
	var out bytes.Buffer

	err := Export(ExportOptions{
		FilePath:   input,
		Formats:    []string{"html", "HTML", ".html"},
		OutputPath: outDir,
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if got := strings.Count(out.String(), "Wrote "); got != 1 {
		t.Errorf("got %d Wrote lines, want 1 after dedupe", got)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	err := Export(ExportOptions{
		FilePath: "does-not-matter",
		Formats:  []string{"docx"},
		Out:      &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "docx") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input  string
		format export.Format
		want   string
	}{
		{input: "/p/sessionstore.jsonlz4", format: export.FormatHTML, want: "sessionstore.html"},
		{input: "/p/recovery.baklz4", format: export.FormatMarkdown, want: "recovery.md"},
		{input: "/p/upgrade.jsonlz4-20250101", format: export.FormatText, want: "upgrade.txt"},
		{input: "session.json", format: export.FormatPDF, want: "session.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := outputName(tt.input, tt.format); got != tt.want {
				t.Errorf("outputName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestListProfiles(t *testing.T) {
	root := t.TempDir()
	profileDir := filepath.Join(root, "abc.default")
	if err := os.MkdirAll(profileDir, 0755); err != nil {
		t.Fatalf("creating profile dir: %v", err)
	}
	ini := "[Profile0]\nName=default\nIsRelative=1\nPath=abc.default\nDefault=1\n"
	if err := os.WriteFile(filepath.Join(root, "profiles.ini"), []byte(ini), 0644); err != nil {
		t.Fatalf("writing profiles.ini: %v", err)
	}
	if err := os.WriteFile(filepath.Join(profileDir, "sessionstore.jsonlz4"), []byte("x"), 0644); err != nil {
		t.Fatalf("writing session file: %v", err)
	}
	t.Setenv("FIREFOX_HOME", root)

	var out bytes.Buffer
	if err := ListProfiles(&out); err != nil {
		t.Fatalf("ListProfiles returned error: %v", err)
	}

	listing := out.String()
	if !strings.Contains(listing, "* default") {
		t.Errorf("missing default marker:\n%s", listing)
	}
	if !strings.Contains(listing, "sessionstore.jsonlz4") {
		t.Errorf("missing session file line:\n%s", listing)
	}
}

func TestListFormats(t *testing.T) {
	var out bytes.Buffer
	if err := ListFormats(&out); err != nil {
		t.Fatalf("ListFormats returned error: %v", err)
	}

	listing := out.String()
	for _, want := range []string{"html", "markdown", ".txt", "PDF"} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing missing %q:\n%s", want, listing)
		}
	}
}
