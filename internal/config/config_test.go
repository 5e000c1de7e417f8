package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// initTestConfig points the package at a throwaway home directory.
func initTestConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	return home
}

func TestInitializeCreatesLayout(t *testing.T) {
	home := initTestConfig(t)

	if want := filepath.Join(home, ".firefox-session-tui"); ConfigDir != want {
		t.Errorf("ConfigDir = %q, want %q", ConfigDir, want)
	}
	if _, err := os.Stat(ConfigDir); err != nil {
		t.Errorf("config dir was not created: %v", err)
	}

	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		t.Fatalf("settings file was not seeded: %v", err)
	}
	if !strings.Contains(string(data), "format: html") {
		t.Error("seeded settings file is missing defaults")
	}
}

func TestInitializeKeepsExistingSettings(t *testing.T) {
	initTestConfig(t)

	custom := []byte("export:\n  format: markdown\n")
	if err := os.WriteFile(SettingsFile, custom, FilePermissions); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	if err := Initialize(); err != nil {
		t.Fatalf("second Initialize returned error: %v", err)
	}

	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		t.Fatalf("reading settings: %v", err)
	}
	if string(data) != string(custom) {
		t.Error("Initialize overwrote an existing settings file")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	initTestConfig(t)

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if settings.Export.Format != "html" {
		t.Errorf("default export format = %q, want html", settings.Export.Format)
	}
	if settings.Log.Level != "info" {
		t.Errorf("default log level = %q, want info", settings.Log.Level)
	}
	if settings.Filter.Fuzzy || settings.Filter.MatchURLs || settings.Filter.AllHistory ||
		settings.Filter.CaseSensitive || settings.Load.IncludeClosed {
		t.Error("boolean settings should default to false")
	}
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	initTestConfig(t)

	partial := "filter:\n  fuzzy: true\n"
	if err := os.WriteFile(SettingsFile, []byte(partial), FilePermissions); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if !settings.Filter.Fuzzy {
		t.Error("fuzzy override was not applied")
	}
	if settings.Export.Format != "html" {
		t.Errorf("missing keys lost their defaults: format = %q", settings.Export.Format)
	}
}

func TestLoadSettingsLocalOverride(t *testing.T) {
	initTestConfig(t)

	work := t.TempDir()
	t.Chdir(work)
	local := "export:\n  format: text\n"
	if err := os.WriteFile(filepath.Join(work, localSettingsFile), []byte(local), FilePermissions); err != nil {
		t.Fatalf("writing local settings: %v", err)
	}

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if settings.Export.Format != "text" {
		t.Errorf("local settings file was ignored: format = %q", settings.Export.Format)
	}
}

func TestLoadSettingsBadYAML(t *testing.T) {
	initTestConfig(t)

	if err := os.WriteFile(SettingsFile, []byte("{not yaml"), FilePermissions); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	settings, err := LoadSettings()
	if err == nil {
		t.Fatal("expected error for malformed settings, got nil")
	}
	if settings.Export.Format != "html" {
		t.Error("malformed settings should fall back to defaults")
	}
}

func TestStateRoundTrip(t *testing.T) {
	initTestConfig(t)

	state := State{
		LastOpened:    "/profiles/work/sessionstore.jsonlz4",
		LastExportDir: "/home/user/exports",
		LastFormat:    "markdown",
		RecentFiles:   []string{"/a", "/b"},
	}
	if err := SaveState(state); err != nil {
		t.Fatalf("SaveState returned error: %v", err)
	}

	if _, err := os.Stat(StateFile + ".tmp"); !os.IsNotExist(err) {
		t.Error("SaveState left a temp file behind")
	}

	got, err := LoadState()
	if err != nil {
		t.Fatalf("LoadState returned error: %v", err)
	}
	if got.LastOpened != state.LastOpened || got.LastFormat != state.LastFormat {
		t.Errorf("state round trip mismatch: %+v", got)
	}
	if len(got.RecentFiles) != 2 {
		t.Errorf("recent files round trip mismatch: %+v", got.RecentFiles)
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	initTestConfig(t)

	state, err := LoadState()
	if err != nil {
		t.Fatalf("LoadState returned error: %v", err)
	}
	if state.LastOpened != "" || len(state.RecentFiles) != 0 {
		t.Errorf("missing state file should yield zero state, got %+v", state)
	}
}

func TestRememberOpened(t *testing.T) {
	var state State

	state.RememberOpened("/a")
	state.RememberOpened("/b")
	state.RememberOpened("/a")

	if state.LastOpened != "/a" {
		t.Errorf("LastOpened = %q, want /a", state.LastOpened)
	}
	want := []string{"/a", "/b"}
	if len(state.RecentFiles) != len(want) {
		t.Fatalf("RecentFiles = %v, want %v", state.RecentFiles, want)
	}
	for i := range want {
		if state.RecentFiles[i] != want[i] {
			t.Errorf("RecentFiles[%d] = %q, want %q", i, state.RecentFiles[i], want[i])
		}
	}
}

func TestRememberOpenedCapsList(t *testing.T) {
	var state State
	for i := 0; i < maxRecentFiles+5; i++ {
		state.RememberOpened(filepath.Join("/sessions", string(rune('a'+i))))
	}
	if len(state.RecentFiles) != maxRecentFiles {
		t.Errorf("recent list grew to %d, want cap %d", len(state.RecentFiles), maxRecentFiles)
	}
}

func TestRememberExport(t *testing.T) {
	var state State
	state.RememberExport("/home/user/exports/links.md", "markdown")

	if state.LastExportDir != "/home/user/exports" {
		t.Errorf("LastExportDir = %q", state.LastExportDir)
	}
	if state.LastFormat != "markdown" {
		t.Errorf("LastFormat = %q", state.LastFormat)
	}
}
