package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lej77/firefox-session-tui/internal/cli"
	"github.com/Lej77/firefox-session-tui/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "firefox-session-tui [file]",
	Short: "Browse and export Firefox session store files",
	Long: `firefox-session-tui shows the windows, tabs and tab history stored in a
Firefox session store file (recovery.jsonlz4, previous.jsonlz4 and their
backups) and exports them to HTML, Markdown, plain text or PDF.

Run without arguments to pick a profile and session file interactively,
or pass a session store file to open it directly.

Examples:
  firefox-session-tui                            # Start the TUI
  firefox-session-tui recovery.jsonlz4           # Open a file directly
  firefox-session-tui export recovery.jsonlz4    # Export as HTML
  firefox-session-tui export -f markdown -f pdf backup.jsonlz4
  firefox-session-tui export -q golang -u backup.jsonlz4
  firefox-session-tui profiles                   # List Firefox profiles
  firefox-session-tui formats                    # List export formats`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return tui.Run(path)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a session store file without the TUI",
	Long: `Export reads a session store file and writes it out in one or more
formats. With a single format --output may name the destination file;
with several it names the directory the files are written into.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List Firefox profiles and their session files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListProfiles(os.Stdout)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List export formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListFormats(os.Stdout)
	},
}

// Flags for export
var (
	flagFormats       []string
	flagOutput        string
	flagQuery         string
	flagMatchURLs     bool
	flagAllHistory    bool
	flagCaseSensitive bool
	flagFuzzy         bool
	flagIncludeClosed bool
	flagOverwrite     bool
	flagCreateDirs    bool
)

func init() {
	exportCmd.Flags().StringArrayVarP(&flagFormats, "format", "f", []string{}, "Output format: html, markdown, text or pdf (default html), can be repeated")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file, or directory when several formats are requested")
	exportCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Only export tabs matching this filter")
	exportCmd.Flags().BoolVarP(&flagMatchURLs, "match-urls", "u", false, "Match the filter against URLs too")
	exportCmd.Flags().BoolVarP(&flagAllHistory, "all-history", "a", false, "Match the filter against every history entry")
	exportCmd.Flags().BoolVarP(&flagCaseSensitive, "case-sensitive", "s", false, "Match the filter case sensitively")
	exportCmd.Flags().BoolVar(&flagFuzzy, "fuzzy", false, "Fuzzy filter matching")
	exportCmd.Flags().BoolVarP(&flagIncludeClosed, "include-closed", "c", false, "Include closed windows")
	exportCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "Overwrite existing files")
	exportCmd.Flags().BoolVar(&flagCreateDirs, "create-dirs", false, "Create missing output directories")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(formatsCmd)
}

// runExport exports a session file in CLI mode
func runExport(filePath string) error {
	opts := cli.ExportOptions{
		FilePath:      filePath,
		Formats:       flagFormats,
		OutputPath:    flagOutput,
		Query:         flagQuery,
		MatchURLs:     flagMatchURLs,
		AllHistory:    flagAllHistory,
		CaseSensitive: flagCaseSensitive,
		Fuzzy:         flagFuzzy,
		IncludeClosed: flagIncludeClosed,
		Overwrite:     flagOverwrite,
		CreateDirs:    flagCreateDirs,
	}
	return cli.Export(opts)
}
