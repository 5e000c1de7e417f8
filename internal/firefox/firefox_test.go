package firefox

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeProfilesINI(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, "profiles.ini"), []byte(content), 0644); err != nil {
		t.Fatalf("writing profiles.ini: %v", err)
	}
}

const sampleINI = `[General]
StartWithLastProfile=1
Version=2

; managed by the browser, do not edit
[InstallFF6D34AA1D3E2F1C]
Default=abc123.default-release
Locked=1

[Profile1]
Name=default-release
IsRelative=1
Path=abc123.default-release

[Profile0]
Name=dev
IsRelative=1
Path=xyz789.dev
Default=1

[Profile2]
Name=portable
IsRelative=0
Path=/opt/firefox/portable-profile
`

func TestProfilesAt(t *testing.T) {
	root := t.TempDir()
	writeProfilesINI(t, root, sampleINI)

	profiles, err := ProfilesAt(root)
	if err != nil {
		t.Fatalf("ProfilesAt returned error: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("got %d profiles, want 3", len(profiles))
	}

	byName := make(map[string]Profile)
	for _, p := range profiles {
		byName[p.Name] = p
	}

	release, ok := byName["default-release"]
	if !ok {
		t.Fatal("missing default-release profile")
	}
	if want := filepath.Join(root, "abc123.default-release"); release.Path != want {
		t.Errorf("relative path resolved to %q, want %q", release.Path, want)
	}
	if !release.Default {
		t.Error("install section default was not honored")
	}

	dev, ok := byName["dev"]
	if !ok {
		t.Fatal("missing dev profile")
	}
	if !dev.Default {
		t.Error("Default=1 flag was not honored")
	}

	portable, ok := byName["portable"]
	if !ok {
		t.Fatal("missing portable profile")
	}
	if portable.Path != "/opt/firefox/portable-profile" {
		t.Errorf("absolute path changed to %q", portable.Path)
	}
	if portable.Default {
		t.Error("portable profile should not be default")
	}
}

func TestProfilesAtNameFallback(t *testing.T) {
	root := t.TempDir()
	writeProfilesINI(t, root, `[Profile0]
IsRelative=1
Path=abc123.nameless
`)

	profiles, err := ProfilesAt(root)
	if err != nil {
		t.Fatalf("ProfilesAt returned error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("got %d profiles, want 1", len(profiles))
	}
	if profiles[0].Name != "abc123.nameless" {
		t.Errorf("name fallback = %q, want directory name", profiles[0].Name)
	}
}

func TestProfilesAtSkipsPathlessSections(t *testing.T) {
	root := t.TempDir()
	writeProfilesINI(t, root, `[Profile0]
Name=broken

[Profile1]
Name=ok
IsRelative=1
Path=abc.ok
`)

	profiles, err := ProfilesAt(root)
	if err != nil {
		t.Fatalf("ProfilesAt returned error: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "ok" {
		t.Errorf("got %+v, want only the ok profile", profiles)
	}
}

func TestProfilesAtMissingFile(t *testing.T) {
	if _, err := ProfilesAt(t.TempDir()); err == nil {
		t.Fatal("expected error for missing profiles.ini, got nil")
	}
}

func TestRootOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FIREFOX_HOME", dir)

	root, err := Root()
	if err != nil {
		t.Fatalf("Root returned error: %v", err)
	}
	if root != dir {
		t.Errorf("Root() = %q, want FIREFOX_HOME value %q", root, dir)
	}
}

func TestSessionFilesNewestFirst(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "sessionstore-backups")
	if err := os.MkdirAll(backups, 0755); err != nil {
		t.Fatalf("creating backups dir: %v", err)
	}

	now := time.Now()
	files := []struct {
		path string
		age  time.Duration
	}{
		{path: filepath.Join(dir, "sessionstore.jsonlz4"), age: 2 * time.Hour},
		{path: filepath.Join(backups, "recovery.jsonlz4"), age: 5 * time.Minute},
		{path: filepath.Join(backups, "previous.jsonlz4"), age: 24 * time.Hour},
		{path: filepath.Join(backups, "upgrade.jsonlz4-20250101000000"), age: 48 * time.Hour},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte("x"), 0644); err != nil {
			t.Fatalf("writing %s: %v", f.path, err)
		}
		mtime := now.Add(-f.age)
		if err := os.Chtimes(f.path, mtime, mtime); err != nil {
			t.Fatalf("setting mtime on %s: %v", f.path, err)
		}
	}

	profile := Profile{Name: "test", Path: dir}
	got := profile.SessionFiles()
	if len(got) != 4 {
		t.Fatalf("got %d session files, want 4", len(got))
	}

	wantOrder := []string{
		filepath.Join(backups, "recovery.jsonlz4"),
		filepath.Join(dir, "sessionstore.jsonlz4"),
		filepath.Join(backups, "previous.jsonlz4"),
		filepath.Join(backups, "upgrade.jsonlz4-20250101000000"),
	}
	for i, want := range wantOrder {
		if got[i].Path != want {
			t.Errorf("session file %d = %s, want %s", i, got[i].Path, want)
		}
	}

	newest, err := profile.FindSessionFile()
	if err != nil {
		t.Fatalf("FindSessionFile returned error: %v", err)
	}
	if newest != wantOrder[0] {
		t.Errorf("FindSessionFile = %s, want %s", newest, wantOrder[0])
	}
}

func TestFindSessionFileEmptyProfile(t *testing.T) {
	profile := Profile{Name: "empty", Path: t.TempDir()}
	if _, err := profile.FindSessionFile(); err == nil {
		t.Fatal("expected error for profile without session files, got nil")
	}
}
