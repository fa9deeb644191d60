package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	NewComponentLogger(logger, "cleaner").Info("document cleaned",
		Int("segments_kept", 3),
		String("path", "/tmp/a b.json"),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO cleaner: document cleaned") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "segments_kept=3") {
		t.Errorf("missing int attr: %q", line)
	}
	if !strings.Contains(line, `path="/tmp/a b.json"`) {
		t.Errorf("expected quoted path attr: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be suppressed: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn record should be emitted: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != slog.LevelInfo {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("expected debug, got %v", got)
	}
}
