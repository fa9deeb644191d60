package noise

import "testing"

func TestClassifyDiscardsNoise(t *testing.T) {
	cases := []struct {
		text   string
		reason string
	}{
		{"[Music]", "bracketed_cue"},
		{"[APPLAUSE]", "bracketed_cue"},
		{"[inaudible]", "bracketed_cue"},
		{"[crosstalk]", "bracketed_cue"},
		{"[soft piano music]", "bracketed_noise"},
		{"[audience laughter continues]", "bracketed_noise"},
		{"[background chatter]", "bracketed_noise"},
		{"(growling loudly)", "paren_sound"},
		{"(MUSIC swells)", "paren_sound"},
		{"(heavy breathing)", "paren_sound"},
		{`(whispers "not now")`, "paren_quoted"},
		{"(door slams)", "paren_any"},
		{"um", "filler_only"},
		{"Um", "filler_only"},
		{"UM", "filler_only"},
		{"ummmm", "filler_only"},
		{"hmm", "filler_only"},
		{"Basically", "filler_only"},
		// Trailing-letter repetition is tolerated across the filler list,
		// not just the interjections.
		{"likeee", "filler_only"},
		{"basicallyyy", "filler_only"},
		{"literallyyy", "filler_only"},
		{"you know", "filler_only"},
		{"i mean", "filler_only"},
		{"a", "short_text"},
		{"!?", "short_text"},
		{"...", "punctuation_only"},
		{"?!?!", "punctuation_only"},
		{"   ", "short_text"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			reason, noise := Classify(tc.text)
			if !noise {
				t.Fatalf("Classify(%q) = retained, want discarded", tc.text)
			}
			if reason != tc.reason {
				t.Errorf("Classify(%q) reason = %q, want %q", tc.text, reason, tc.reason)
			}
		})
	}
}

func TestClassifyRetainsSpeech(t *testing.T) {
	cases := []string{
		"Hi there Little Bear",
		"What should we do today?",
		// A parenthetical alongside real words is not a whole-text match;
		// only parenthetical-only segments are discarded.
		"(laughing) I love you",
		"I really [truly] mean it",
		"The band played music all night",
		"Umbrella weather again",
		"Ohio is far away",
		"Likely",
	}
	for _, text := range cases {
		if reason, noise := Classify(text); noise {
			t.Errorf("Classify(%q) discarded with reason %q, want retained", text, reason)
		}
	}
}

func TestClassifyShortTextAlwaysDiscarded(t *testing.T) {
	for _, text := range []string{"", "a", "ab", "I.", "no", " x "} {
		if _, noise := Classify(text); !noise {
			t.Errorf("Classify(%q) retained, want discarded (<= 2 chars)", text)
		}
	}
}

func TestRulesTableIsOrderedAndComplete(t *testing.T) {
	rules := Rules()
	wantOrder := []string{
		"bracketed_cue",
		"bracketed_noise",
		"paren_sound",
		"paren_quoted",
		"paren_any",
		"filler_only",
		"short_text",
		"punctuation_only",
	}
	if len(rules) != len(wantOrder) {
		t.Fatalf("rule table has %d entries, want %d", len(rules), len(wantOrder))
	}
	for i, name := range wantOrder {
		if rules[i].Name != name {
			t.Errorf("rule %d = %q, want %q", i, rules[i].Name, name)
		}
	}
	// The catch-all must cover everything the narrower parenthetical rules do.
	for _, text := range []string{"(growling loudly)", `(he said "go")`} {
		if !rules[4].Matches(text) {
			t.Errorf("paren_any should cover %q", text)
		}
	}
}
