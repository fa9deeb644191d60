package cleaner

import (
	"path/filepath"
	"strings"
)

// OutputPath derives the cleaned sibling path by inserting suffix before the
// file extension: /a/episode.json -> /a/episode_cleaned.json.
func OutputPath(inputPath, suffix string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + suffix + ext
}

// isCleanedOutput reports whether path already carries the output suffix and
// therefore must not be treated as cleaner input.
func isCleanedOutput(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, suffix)
}
