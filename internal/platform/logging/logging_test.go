package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"lernova/internal/platform/config"
	"lernova/internal/platform/logging"
)

func TestNewHonoursLevelAndFormat(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New(config.LogConfig{Level: "warn", JSON: true}, buf)
	logger.Info("hidden")
	logger.Warn("oracle failed", "provider", "groq")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"provider":"groq"`) {
		t.Fatalf("expected json key/value output, got %s", out)
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New(config.LogConfig{Level: "nonsense"}, buf)
	logger.Info("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected info output, got %q", buf.String())
	}
}
