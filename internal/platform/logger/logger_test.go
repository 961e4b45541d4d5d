package logger_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hdt/internal/platform/config"
	"hdt/internal/platform/logger"
)

func TestNewWritesToLogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "hdt.log")
	log, err := logger.New(config.Log{Level: "info", File: path}, "production")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("day completed")
	log.Debug("below level")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "day completed") {
		t.Fatalf("expected info entry in log, got %q", raw)
	}
	if strings.Contains(string(raw), "below level") {
		t.Fatalf("debug entry should be filtered at info level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := logger.New(config.Log{Level: "loud"}, "development"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
