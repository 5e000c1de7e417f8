package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

// localSettingsFile, when present in the working directory, takes
// precedence over the global settings file.
const localSettingsFile = ".firefox-session-tui.yaml"

// maxRecentFiles caps the recent-files list persisted in state.json.
const maxRecentFiles = 10

var (
	// ConfigDir is the global configuration directory (~/.firefox-session-tui)
	ConfigDir string

	// SettingsFile is the global settings file
	SettingsFile string

	// StateFile holds the last opened and exported paths between runs
	StateFile string

	// LogFile is the log destination when file logging is enabled
	LogFile string
)

// Settings are the user-editable options read from settings.yaml.
type Settings struct {
	Filter FilterSettings  `yaml:"filter"`
	Load   LoadingSettings `yaml:"load"`
	Export ExportSettings  `yaml:"export"`
	Log    LogSettings     `yaml:"log"`
}

// FilterSettings controls the initial filter behavior.
type FilterSettings struct {
	MatchURLs     bool `yaml:"match_urls"`
	AllHistory    bool `yaml:"all_history"`
	CaseSensitive bool `yaml:"case_sensitive"`
	Fuzzy         bool `yaml:"fuzzy"`
}

// LoadingSettings controls how session files are loaded.
type LoadingSettings struct {
	IncludeClosed bool `yaml:"include_closed"`
}

// ExportSettings holds the default export options.
type ExportSettings struct {
	Format     string `yaml:"format"`
	Overwrite  bool   `yaml:"overwrite"`
	CreateDirs bool   `yaml:"create_dirs"`
}

// LogSettings controls the file logger.
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// State is runtime state persisted between runs.
type State struct {
	LastOpened    string   `json:"lastOpened,omitempty"`
	LastExportDir string   `json:"lastExportDir,omitempty"`
	LastFormat    string   `json:"lastFormat,omitempty"`
	RecentFiles   []string `json:"recentFiles,omitempty"`
}

// DefaultSettings returns the settings used when no file overrides them.
func DefaultSettings() Settings {
	return Settings{
		Export: ExportSettings{Format: "html"},
		Log:    LogSettings{Level: "info"},
	}
}

// defaultSettingsYAML seeds the global settings file on first run.
const defaultSettingsYAML = `# firefox-session-tui settings
filter:
  match_urls: false
  all_history: false
  case_sensitive: false
  fuzzy: false
load:
  include_closed: false
export:
  format: html
  overwrite: false
  create_dirs: false
log:
  level: info
`

// Initialize sets up the configuration directory and files
// It creates ~/.firefox-session-tui/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	// Set global paths
	ConfigDir = filepath.Join(homeDir, ".firefox-session-tui")
	SettingsFile = filepath.Join(ConfigDir, "settings.yaml")
	StateFile = filepath.Join(ConfigDir, "state.json")
	LogFile = filepath.Join(ConfigDir, "firefox-session-tui.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Seed a settings file with the defaults spelled out
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettingsYAML), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// GetSettingsPath returns the settings file path (local or global)
func GetSettingsPath() string {
	if _, err := os.Stat(localSettingsFile); err == nil {
		return localSettingsFile
	}
	return SettingsFile
}

// LoadSettings reads the settings file over the defaults, so keys missing
// from the file keep their default values. A missing file is not an error.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(GetSettingsPath())
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// LoadState reads the persisted state. A missing file yields a zero state.
func LoadState() (State, error) {
	var state State

	data, err := os.ReadFile(StateFile)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to read state: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("failed to parse state: %w", err)
	}
	return state, nil
}

// SaveState writes the state file through a temp file and a rename, so a
// crash mid-write never corrupts it.
func SaveState(state State) error {
	if StateFile == "" {
		return fmt.Errorf("config not initialized")
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := StateFile + ".tmp"
	if err := os.WriteFile(tmp, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, StateFile); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// RememberOpened records a successfully opened session file: it becomes
// LastOpened and moves to the front of the recent list.
func (s *State) RememberOpened(path string) {
	s.LastOpened = path

	recent := make([]string, 0, len(s.RecentFiles)+1)
	recent = append(recent, path)
	for _, p := range s.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	s.RecentFiles = recent
}

// RememberExport records a successful export destination and format.
func (s *State) RememberExport(path, format string) {
	s.LastExportDir = filepath.Dir(path)
	s.LastFormat = format
}
