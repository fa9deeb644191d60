// Package noise decides whether transcript text is genuine speech or
// transcription noise: sound-effect cues, filler-only utterances, and stray
// fragments. The rule set is an ordered table of named patterns and
// predicates so categories can be added without touching control flow.
package noise

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule marks a segment's whole trimmed text as noise when its pattern or
// predicate matches. Exactly one of Pattern and Predicate is set.
type Rule struct {
	Name      string
	Pattern   *regexp.Regexp
	Predicate func(string) bool
}

// Matches reports whether the rule applies to the given trimmed text.
func (r Rule) Matches(trimmed string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(trimmed)
	}
	if r.Predicate != nil {
		return r.Predicate(trimmed)
	}
	return false
}

// segmentRules is the ordered noise table applied to whole segments. All
// patterns are case-insensitive and anchored to the full trimmed string.
// paren_any supersedes the narrower parenthetical rules; those stay in the
// table so individual cue families remain documented and testable.
var segmentRules = []Rule{
	{
		Name:    "bracketed_cue",
		Pattern: regexp.MustCompile(`(?i)^\[(music|applause|laughter|sound|background|silence|noise|inaudible|crosstalk)\]$`),
	},
	{
		Name:    "bracketed_noise",
		Pattern: regexp.MustCompile(`(?i)^\[[^\]]*(music|applause|laughter|background)[^\]]*\]$`),
	},
	{
		Name:    "paren_sound",
		Pattern: regexp.MustCompile(`(?i)^\([^)]*(music|sound|noise|growling|laughing|sighing|crying|breathing)[^)]*\)$`),
	},
	{
		Name:    "paren_quoted",
		Pattern: regexp.MustCompile("(?i)^\\([^)]*[\"'][^)]*\\)$"),
	},
	{
		Name:    "paren_any",
		Pattern: regexp.MustCompile(`^\([^)]+\)$`),
	},
	{
		Name:    "filler_only",
		Pattern: regexp.MustCompile(`(?i)^(um+|uh+|hm+|ah+|oh+|like+|you know+|i mean+|basically+|actually+|literally+)$`),
	},
	{
		Name:      "short_text",
		Predicate: func(s string) bool { return utf8.RuneCountInString(s) <= 2 },
	},
	{
		Name:      "punctuation_only",
		Predicate: isPunctuationOnly,
	},
}

// Classify runs the rule table against a segment's text and returns the name
// of the first matching rule. Rules are independent ORs; order only affects
// which reason is reported.
func Classify(text string) (reason string, noise bool) {
	trimmed := strings.TrimSpace(text)
	for _, rule := range segmentRules {
		if rule.Matches(trimmed) {
			return rule.Name, true
		}
	}
	return "", false
}

// Rules returns the segment rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(segmentRules))
	copy(out, segmentRules)
	return out
}

func isPunctuationOnly(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
