package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Info("session loaded", zap.Int("windows", 2))
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"message":"session loaded"`) {
		t.Errorf("log line missing message: %s", line)
	}
	if !strings.Contains(line, `"windows":2`) {
		t.Errorf("log line missing field: %s", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(Config{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Info("quiet")
	log.Warn("loud")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "quiet") {
		t.Error("info line logged despite warn level")
	}
	if !strings.Contains(string(data), "loud") {
		t.Error("warn line missing from log")
	}
}

func TestNoFileIsNop(t *testing.T) {
	log, err := New(Config{Level: "info"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	// Must not panic or touch the filesystem.
	log.Info("dropped")
}

func TestBadLevel(t *testing.T) {
	_, err := New(Config{Level: "shouting", File: filepath.Join(t.TempDir(), "app.log")})
	if err == nil {
		t.Fatal("expected error for unknown level, got nil")
	}
}
