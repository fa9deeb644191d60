// Package episodeid parses season/episode codes from archive filenames and
// derives display titles for logs and the extraction catalog.
package episodeid

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var codePattern = regexp.MustCompile(`(?i)\bS(\d{2})E(\d{2})\b`)

// ID identifies one episode within the archive.
type ID struct {
	Season  int
	Episode int
}

// Code returns the canonical SxxEyy form.
func (id ID) Code() string {
	return fmt.Sprintf("S%02dE%02d", id.Season, id.Episode)
}

// SeasonDir returns the season-scoped output directory name, e.g. season_01.
func (id ID) SeasonDir() string {
	return fmt.Sprintf("season_%02d", id.Season)
}

// Parse extracts the first SxxEyy code from a file path's base name.
func Parse(path string) (ID, bool) {
	match := codePattern.FindStringSubmatch(filepath.Base(path))
	if match == nil {
		return ID{}, false
	}
	season, err := strconv.Atoi(match[1])
	if err != nil {
		return ID{}, false
	}
	episode, err := strconv.Atoi(match[2])
	if err != nil {
		return ID{}, false
	}
	return ID{Season: season, Episode: episode}, true
}

// DeriveTitle produces a human-readable episode title from a filename: the
// episode code and separators are stripped and the remainder title-cased.
// Falls back to the code itself when nothing else is left.
func DeriveTitle(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = codePattern.ReplaceAllString(base, " ")

	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		if id, ok := Parse(path); ok {
			return id.Code()
		}
		return "Unknown Episode"
	}
	return cases.Title(language.Und).String(title)
}
