package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lej77/firefox-session-tui/internal/config"
	"github.com/Lej77/firefox-session-tui/internal/export"
	"github.com/Lej77/firefox-session-tui/internal/export/chromepdf"
	"github.com/Lej77/firefox-session-tui/internal/filter"
	"github.com/Lej77/firefox-session-tui/internal/logging"
)

// New creates the TUI model from loaded settings and state.
func New(settings config.Settings, state config.State, logger *logging.Logger) Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "type to filter"
	filterInput.CharLimit = 128
	filterInput.Prompt = ""

	exportPath := textinput.New()
	exportPath.CharLimit = 512
	exportPath.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleWarning

	// The previous session's format wins over the configured default.
	format, err := export.ParseFormat(settings.Export.Format)
	if err != nil {
		format = export.FormatHTML
	}
	if state.LastFormat != "" {
		if f, err := export.ParseFormat(state.LastFormat); err == nil {
			format = f
		}
	}

	return Model{
		settings: settings,
		state:    state,
		logger:   logger,
		engine:   export.NewEngine(chromepdf.NewConverter()),
		query: filter.Query{
			MatchURLs:     settings.Filter.MatchURLs,
			AllHistory:    settings.Filter.AllHistory,
			CaseSensitive: settings.Filter.CaseSensitive,
			Fuzzy:         settings.Filter.Fuzzy,
		},
		collapsed:       make(map[int]bool),
		filterInput:     filterInput,
		spinner:         sp,
		exportPath:      exportPath,
		exportFormat:    format,
		exportOverwrite: settings.Export.Overwrite,
		exportDirs:      settings.Export.CreateDirs,
		mode:            ModeBrowse,
		phase:           PhaseEmpty,
	}
}

// Run starts the TUI, optionally loading the given session file first.
func Run(path string) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	state, err := config.LoadState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	logFile := settings.Log.File
	if logFile == "" {
		logFile = config.LogFile
	}
	logger, err := logging.New(logging.Config{Level: settings.Log.Level, File: logFile})
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer logger.Sync()

	m := New(settings, state, logger)
	m.openOnStart = path

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
