// Package firefox locates Firefox profiles and the session store files
// inside them. Discovery reads the install's profiles.ini, so it sees the
// same profile list the browser's own profile manager shows.
package firefox

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Profile is one entry from profiles.ini.
type Profile struct {
	Name    string
	Path    string // Absolute profile directory
	Default bool   // True for the install's default profile
}

// SessionFile is one session store candidate inside a profile.
type SessionFile struct {
	Path     string
	Modified time.Time
}

// Root returns the directory holding profiles.ini. The FIREFOX_HOME
// environment variable overrides the per-OS default, which also makes
// discovery testable against a fixture tree.
func Root() (string, error) {
	if dir := os.Getenv("FIREFOX_HOME"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Firefox"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Mozilla", "Firefox"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "Mozilla", "Firefox"), nil
	default:
		return filepath.Join(home, ".mozilla", "firefox"), nil
	}
}

// Profiles lists the profiles registered at the default root.
func Profiles() ([]Profile, error) {
	root, err := Root()
	if err != nil {
		return nil, err
	}
	return ProfilesAt(root)
}

// profileEntry accumulates one [ProfileN] section before path resolution.
type profileEntry struct {
	name     string
	path     string // Raw Path value, kept for matching against [Install*] sections
	relative bool
	def      bool
}

// ProfilesAt lists the profiles registered in root's profiles.ini.
//
// Modern Firefox marks the default profile through [Install*] sections
// whose Default key names a profile path; older installs set Default=1 on
// the profile section itself. Both are honored.
func ProfilesAt(root string) ([]Profile, error) {
	iniPath := filepath.Join(root, "profiles.ini")
	file, err := os.Open(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", iniPath, err)
	}
	defer file.Close()

	var (
		entries         []profileEntry
		installDefaults = make(map[string]bool)
		section         string
		current         profileEntry
		inProfile       bool
	)

	flush := func() {
		if inProfile && current.path != "" {
			entries = append(entries, current)
		}
		current = profileEntry{}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			inProfile = strings.HasPrefix(section, "Profile")
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch {
		case inProfile:
			switch key {
			case "Name":
				current.name = value
			case "Path":
				current.path = value
			case "IsRelative":
				current.relative = value == "1"
			case "Default":
				current.def = value == "1"
			}
		case strings.HasPrefix(section, "Install") && key == "Default":
			installDefaults[value] = true
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", iniPath, err)
	}

	profiles := make([]Profile, 0, len(entries))
	for _, e := range entries {
		p := Profile{
			Name:    e.name,
			Default: e.def || installDefaults[e.path],
		}
		if e.relative {
			p.Path = filepath.Join(root, filepath.FromSlash(e.path))
		} else {
			p.Path = e.path
		}
		if p.Name == "" {
			p.Name = filepath.Base(p.Path)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// sessionFileNames are the session store locations inside a profile.
// sessionstore.jsonlz4 only exists after a clean shutdown; a running
// browser keeps the live session in sessionstore-backups/recovery.jsonlz4.
var sessionFileNames = []string{
	"sessionstore.jsonlz4",
	filepath.Join("sessionstore-backups", "recovery.jsonlz4"),
	filepath.Join("sessionstore-backups", "recovery.baklz4"),
	filepath.Join("sessionstore-backups", "previous.jsonlz4"),
}

// SessionFiles returns the session store files present in the profile,
// newest first.
func (p Profile) SessionFiles() []SessionFile {
	var files []SessionFile
	add := func(path string) {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return
		}
		files = append(files, SessionFile{Path: path, Modified: info.ModTime()})
	}

	for _, name := range sessionFileNames {
		add(filepath.Join(p.Path, name))
	}

	// Upgrade backups carry a build id suffix.
	matches, _ := filepath.Glob(filepath.Join(p.Path, "sessionstore-backups", "upgrade.jsonlz4-*"))
	for _, m := range matches {
		add(m)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	return files
}

// FindSessionFile returns the most recently written session store in the
// profile.
func (p Profile) FindSessionFile() (string, error) {
	files := p.SessionFiles()
	if len(files) == 0 {
		return "", fmt.Errorf("no session store files in %s", p.Path)
	}
	return files[0].Path, nil
}
