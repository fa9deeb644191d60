package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateCleaner(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.TranscriptDir) == "" {
		return errors.New("paths.transcript_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.SampleRate <= 0 {
		return errors.New("extraction.sample_rate must be positive")
	}
	if c.Extraction.Channels < 1 || c.Extraction.Channels > 2 {
		return errors.New("extraction.channels must be 1 (mono) or 2 (stereo)")
	}
	if c.Extraction.TimeoutSeconds <= 0 {
		return errors.New("extraction.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateCleaner() error {
	suffix := c.Cleaner.OutputSuffix
	if strings.ContainsAny(suffix, "/\\") {
		return fmt.Errorf("cleaner.output_suffix %q must not contain path separators", suffix)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
