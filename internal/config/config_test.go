package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrub/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.VideoDir != filepath.Join(tempHome, "archive", "episodes") {
		t.Fatalf("unexpected video dir: %q", cfg.Paths.VideoDir)
	}
	if cfg.Extraction.SampleRate != 16000 {
		t.Fatalf("unexpected sample rate: %d", cfg.Extraction.SampleRate)
	}
	if cfg.Extraction.Channels != 1 {
		t.Fatalf("unexpected channel count: %d", cfg.Extraction.Channels)
	}
	if cfg.Cleaner.OutputSuffix != "_cleaned" {
		t.Fatalf("unexpected output suffix: %q", cfg.Cleaner.OutputSuffix)
	}
	if !cfg.Cleaner.SkipExisting {
		t.Fatal("expected skip_existing enabled by default")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.AudioDir, cfg.Paths.TranscriptDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be a directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.VideoDir); !os.IsNotExist(err) {
		t.Fatalf("video dir should not be created: %v", err)
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrub.toml")
	content := strings.Join([]string{
		"[paths]",
		`transcript_dir = "` + filepath.Join(dir, "tr") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		"[extraction]",
		"sample_rate = 44100",
		"channels = 2",
		`video_extensions = ["MKV", "webm"]`,
		"[cleaner]",
		"skip_existing = false",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Extraction.SampleRate != 44100 {
		t.Fatalf("unexpected sample rate: %d", cfg.Extraction.SampleRate)
	}
	if cfg.Cleaner.SkipExisting {
		t.Fatal("expected skip_existing disabled")
	}
	want := []string{".mkv", ".webm"}
	if len(cfg.Extraction.VideoExts) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Extraction.VideoExts)
	}
	for i, ext := range want {
		if cfg.Extraction.VideoExts[i] != ext {
			t.Fatalf("extension %d: got %q want %q", i, cfg.Extraction.VideoExts[i], ext)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero sample rate", func(c *config.Config) { c.Extraction.SampleRate = 0 }},
		{"too many channels", func(c *config.Config) { c.Extraction.Channels = 6 }},
		{"suffix with separator", func(c *config.Config) { c.Cleaner.OutputSuffix = "a/b" }},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}
