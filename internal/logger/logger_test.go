package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readLogFile(t *testing.T, dir string) string {
	t.Helper()
	filename := filepath.Join(dir, "searchpilot-"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(data)
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(Config{LogDir: dir, Level: DEBUG})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer l.Close()

	l.Info("hello %s", "world")

	content := readLogFile(t, dir)
	if !strings.Contains(content, "[INFO] hello world") {
		t.Errorf("Expected info line in log file, got: %q", content)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(Config{LogDir: dir, Level: WARN})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer l.Close()

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	content := readLogFile(t, dir)
	if strings.Contains(content, "debug message") || strings.Contains(content, "info message") {
		t.Error("Expected debug/info to be filtered at WARN level")
	}
	if !strings.Contains(content, "warn message") || !strings.Contains(content, "error message") {
		t.Error("Expected warn/error messages in log file")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level %d: expected %q, got %q", tt.level, tt.want, got)
		}
	}
}

func TestPackageLevelFunctionsBeforeInit(t *testing.T) {
	// Must not panic when no default logger exists.
	Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op")
	if err := Close(); err != nil {
		t.Errorf("Close before Init should be a no-op, got: %v", err)
	}
}

func TestLoggerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	l, err := NewLogger(Config{LogDir: dir, Level: INFO})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected log directory to be created: %v", err)
	}
}
