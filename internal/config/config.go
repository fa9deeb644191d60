// Package config loads and validates the TOML configuration for the scrub
// pipeline. All path fields are expanded and absolute after Load.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directory layout for the archive.
type Paths struct {
	VideoDir      string `toml:"video_dir"`
	AudioDir      string `toml:"audio_dir"`
	TranscriptDir string `toml:"transcript_dir"`
	LogDir        string `toml:"log_dir"`
}

// Extraction contains settings for the audio extraction stage.
type Extraction struct {
	FFmpegBinary   string   `toml:"ffmpeg_binary"`
	FFprobeBinary  string   `toml:"ffprobe_binary"`
	SampleRate     int      `toml:"sample_rate"`
	Channels       int      `toml:"channels"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	VideoExts      []string `toml:"video_extensions"`
}

// Cleaner contains settings for the transcript cleaning stage.
type Cleaner struct {
	OutputSuffix string `toml:"output_suffix"`
	SkipExisting bool   `toml:"skip_existing"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scrub.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Extraction Extraction `toml:"extraction"`
	Cleaner    Cleaner    `toml:"cleaner"`
	Logging    Logging    `toml:"logging"`
}

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		Paths: Paths{
			VideoDir:      "~/archive/episodes",
			AudioDir:      "~/archive/audio_extracted",
			TranscriptDir: "~/archive/transcripts",
			LogDir:        "~/.local/share/scrub/logs",
		},
		Extraction: Extraction{
			FFmpegBinary:   "ffmpeg",
			FFprobeBinary:  "ffprobe",
			SampleRate:     16000,
			Channels:       1,
			TimeoutSeconds: 600,
			VideoExts:      []string{".mkv", ".mp4", ".avi"},
		},
		Cleaner: Cleaner{
			OutputSuffix: "_cleaned",
			SkipExisting: true,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scrub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scrub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.VideoDir,
		&c.Paths.AudioDir,
		&c.Paths.TranscriptDir,
		&c.Paths.LogDir,
	} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if strings.TrimSpace(c.Extraction.FFmpegBinary) == "" {
		c.Extraction.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(c.Extraction.FFprobeBinary) == "" {
		c.Extraction.FFprobeBinary = "ffprobe"
	}
	if len(c.Extraction.VideoExts) == 0 {
		c.Extraction.VideoExts = Default().Extraction.VideoExts
	}
	normalized := make([]string, 0, len(c.Extraction.VideoExts))
	for _, ext := range c.Extraction.VideoExts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Extraction.VideoExts = normalized

	if strings.TrimSpace(c.Cleaner.OutputSuffix) == "" {
		c.Cleaner.OutputSuffix = Default().Cleaner.OutputSuffix
	}
	return nil
}

// EnsureDirectories creates the directories a run writes into. The video
// directory is input-only and intentionally not created here.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.AudioDir, c.Paths.TranscriptDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CatalogPath returns the location of the extraction catalog database.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Paths.LogDir, "catalog.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
