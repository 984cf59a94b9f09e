package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/birkelund/voxvault/internal/config"
)

func TestSetupLogger_StderrOnly(t *testing.T) {
	logger, level, cleanup, err := config.SetupLogger(config.LoggingConfig{Level: config.LogWarn, Format: config.LogText})
	if err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}
	defer cleanup()

	if logger == nil {
		t.Fatal("SetupLogger() returned nil logger")
	}
	if got := level.Level(); got != slog.LevelWarn {
		t.Errorf("level = %v, want %v", got, slog.LevelWarn)
	}

	// Live adjustment through the LevelVar.
	level.Set(slog.LevelDebug)
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("logger should honour the adjusted level")
	}
}

func TestSetupLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxvault.log")
	logger, _, cleanup, err := config.SetupLogger(config.LoggingConfig{Level: config.LogInfo, Format: config.LogText, File: path})
	if err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}

	logger.Info("note written", "date", "2024-03-10")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"date":"2024-03-10"`) {
		t.Errorf("file sink should hold JSON records, got %q", data)
	}
}

func TestSetupLogger_BadFilePath(t *testing.T) {
	_, _, _, err := config.SetupLogger(config.LoggingConfig{
		Level:  config.LogInfo,
		Format: config.LogText,
		File:   filepath.Join(t.TempDir(), "missing", "dir", "voxvault.log"),
	})
	if err == nil {
		t.Error("SetupLogger() with unwritable file should fail")
	}
}
