package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	if err := Init(Config{DataDir: dataDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	logDir := filepath.Join(dataDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "key", "value")
	Error("Test error message")
}

func TestWarnIsWrittenToFile(t *testing.T) {
	dataDir := t.TempDir()

	if err := Init(Config{DataDir: dataDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Close() })

	Info("should be filtered")
	Warn("streak file unreadable", "path", "x.json")

	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "streak file unreadable") {
		t.Errorf("log file missing warning, got %q", content)
	}
	if strings.Contains(content, "should be filtered") {
		t.Errorf("info message written at warn level: %q", content)
	}
}

func TestInitDebugModeQuiet(t *testing.T) {
	dataDir := t.TempDir()

	if err := Init(Config{Debug: true, Quiet: true, DataDir: dataDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	t.Cleanup(func() { Close() })

	Debug("debug line")

	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "debug line") {
		t.Errorf("debug message not written in debug mode: %q", string(data))
	}
}

func TestCloseDropsLaterLines(t *testing.T) {
	dataDir := t.TempDir()
	if err := Init(Config{DataDir: dataDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	Warn("before close")
	if err := Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	Warn("after close")

	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "before close") || strings.Contains(string(data), "after close") {
		t.Errorf("unexpected log content: %q", string(data))
	}
	if err := Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Close()

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
