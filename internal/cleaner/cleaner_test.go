package cleaner

import (
	"encoding/json"
	"testing"

	"scrub/internal/transcript"
)

const archiveScenario = `{
	"segments": [
		{"text": "[Music]"},
		{"text": "Hi there Little Bear"},
		{"text": "um"},
		{"text": "(growling loudly)"}
	],
	"full_text": "[Music] Hi there Little Bear um (growling loudly)",
	"metadata": {"segment_count": 4, "word_count": 10}
}`

func TestCleanArchiveScenario(t *testing.T) {
	doc, err := transcript.Parse([]byte(archiveScenario))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	result, err := Clean(doc)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if result.OriginalSegments != 4 || result.KeptSegments != 1 || result.Removed() != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(doc.Segments) != 1 || doc.Segments[0].Text != "Hi there Little Bear" {
		t.Fatalf("unexpected segments: %+v", doc.Segments)
	}
	if doc.FullText == nil || *doc.FullText != "Hi there Little Bear" {
		t.Fatalf("unexpected full_text: %v", doc.FullText)
	}
	if string(doc.Metadata["segment_count"]) != "1" {
		t.Errorf("segment_count = %s, want 1", doc.Metadata["segment_count"])
	}
	if string(doc.Metadata["word_count"]) != "4" {
		t.Errorf("word_count = %s, want 4", doc.Metadata["word_count"])
	}

	reasons := map[string]string{}
	for _, removal := range result.Removals {
		reasons[removal.Text] = removal.Reason
	}
	if reasons["[Music]"] != "bracketed_cue" {
		t.Errorf("unexpected reason for [Music]: %q", reasons["[Music]"])
	}
	if reasons["um"] != "filler_only" {
		t.Errorf("unexpected reason for um: %q", reasons["um"])
	}
	if reasons["(growling loudly)"] != "paren_sound" {
		t.Errorf("unexpected reason for (growling loudly): %q", reasons["(growling loudly)"])
	}
}

func TestCleanIsAFixedPoint(t *testing.T) {
	doc, err := transcript.Parse([]byte(archiveScenario))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := Clean(doc); err != nil {
		t.Fatalf("first Clean failed: %v", err)
	}

	encoded, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	reparsed, err := transcript.Parse(encoded)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}

	second, err := Clean(reparsed)
	if err != nil {
		t.Fatalf("second Clean failed: %v", err)
	}
	if second.Removed() != 0 {
		t.Fatalf("second pass removed %d segments from already-clean input", second.Removed())
	}
	if *reparsed.FullText != *doc.FullText {
		t.Errorf("full_text drifted: %q -> %q", *doc.FullText, *reparsed.FullText)
	}
}

func TestCleanUsesSegmentWordAttributes(t *testing.T) {
	doc := mustParse(t, `{
		"segments": [
			{"text": "counted by transcriber", "words": 5},
			{"text": "three plain words"}
		],
		"metadata": {"segment_count": 2, "word_count": 0}
	}`)

	result, err := Clean(doc)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if result.WordCount != 8 {
		t.Fatalf("word count = %d, want 5 + 3 = 8", result.WordCount)
	}
	if string(doc.Metadata["word_count"]) != "8" {
		t.Errorf("metadata word_count = %s, want 8", doc.Metadata["word_count"])
	}
}

func TestCleanBareArrayDocument(t *testing.T) {
	doc := mustParse(t, `[{"text": "[applause]"}, {"text": "Welcome back everyone"}]`)

	result, err := Clean(doc)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if result.KeptSegments != 1 {
		t.Fatalf("expected 1 kept segment, got %d", result.KeptSegments)
	}

	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var arr []map[string]any
	if err := json.Unmarshal(out, &arr); err != nil {
		t.Fatalf("bare document should stay an array: %v", err)
	}
	if len(arr) != 1 || arr[0]["text"] != "Welcome back everyone" {
		t.Errorf("unexpected output: %v", arr)
	}
}

func TestCleanPreservesPassthroughFields(t *testing.T) {
	doc := mustParse(t, `{
		"episode_id": "S01E07",
		"segments": [
			{"text": "Hello Mother Bear", "speaker": "Little Bear", "start_ms": 1200},
			{"text": "..."}
		],
		"full_text": "Hello Mother Bear ...",
		"metadata": {"segment_count": 2, "word_count": 4, "duration_seconds": 88.2}
	}`)

	if _, err := Clean(doc); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["episode_id"] != "S01E07" {
		t.Errorf("top-level passthrough lost: %v", decoded)
	}
	segment := decoded["segments"].([]any)[0].(map[string]any)
	if segment["speaker"] != "Little Bear" || segment["start_ms"] != float64(1200) {
		t.Errorf("segment passthrough lost: %v", segment)
	}
	metadata := decoded["metadata"].(map[string]any)
	if metadata["duration_seconds"] != 88.2 {
		t.Errorf("metadata passthrough lost: %v", metadata)
	}
	if metadata["segment_count"] != float64(1) {
		t.Errorf("segment_count not recomputed: %v", metadata)
	}
}

func TestCleanEmptyFullTextAndNoMetadata(t *testing.T) {
	doc := mustParse(t, `{"segments": [{"text": "Keep this sentence"}], "full_text": ""}`)
	result, err := Clean(doc)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if *doc.FullText != "" {
		t.Errorf("empty full_text should stay empty, got %q", *doc.FullText)
	}
	if result.KeptSegments != 1 {
		t.Errorf("unexpected kept count: %d", result.KeptSegments)
	}
	if doc.Metadata != nil {
		t.Errorf("metadata should not be invented: %v", doc.Metadata)
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/a/b/S01E01.json", "/a/b/S01E01_cleaned.json"},
		{"episode.json", "episode_cleaned.json"},
		{"/a/noext", "/a/noext_cleaned"},
	}
	for _, tc := range cases {
		if got := OutputPath(tc.in, "_cleaned"); got != tc.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if !isCleanedOutput("/a/S01E01_cleaned.json", "_cleaned") {
		t.Error("cleaned output not recognized")
	}
	if isCleanedOutput("/a/S01E01.json", "_cleaned") {
		t.Error("input misclassified as cleaned output")
	}
}

func mustParse(t *testing.T, data string) *transcript.Document {
	t.Helper()
	doc, err := transcript.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}
