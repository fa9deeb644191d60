package noise

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	parenExpr   = regexp.MustCompile(`\([^)]*\)`)
	bracketExpr = regexp.MustCompile(`\[[^\]]*\]`)
)

// fillerTokens are dropped from aggregate text after whitespace tokenization.
// The multi-word entries can only match a token when the source text had no
// space between the words; they are retained for parity with the segment
// rule table rather than as an effective multi-word phrase filter.
var fillerTokens = map[string]struct{}{
	"um":        {},
	"uh":        {},
	"hmm":       {},
	"ah":        {},
	"oh":        {},
	"like":      {},
	"you know":  {},
	"i mean":    {},
	"basically": {},
	"actually":  {},
	"literally": {},
}

// CleanFullText removes non-speech cues and filler from a document's
// aggregate text field. Parenthetical and bracketed expressions are stripped
// wholesale (non-recursive), then surviving tokens are filtered one by one.
// Empty input yields an empty string.
func CleanFullText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	stripped := parenExpr.ReplaceAllString(text, " ")
	stripped = bracketExpr.ReplaceAllString(stripped, " ")

	kept := make([]string, 0, 64)
	for _, token := range strings.Fields(stripped) {
		if dropToken(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// dropToken reports whether a single aggregate-text token is noise: a stray
// single character, pure punctuation, or a filler word.
func dropToken(token string) bool {
	if utf8.RuneCountInString(token) <= 1 {
		return true
	}
	if isPunctuationOnly(token) {
		return true
	}
	_, filler := fillerTokens[strings.ToLower(token)]
	return filler
}
