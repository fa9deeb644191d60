// Package transcript models the JSON documents produced by the transcription
// step. Two shapes exist in the archive: an object wrapping a segments array
// with aggregate text and metadata, and a bare array of segments (the older
// layout). Both parse into one Document; re-serialization preserves the
// original shape and every unrecognized field byte-for-byte.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Segment is one transcribed utterance. Text is required; Words carries the
// transcriber's own word count when present. All other keys (speaker labels,
// timestamps) ride along in Extra untouched.
type Segment struct {
	Text  string
	Words *int
	Extra map[string]json.RawMessage
}

// WordCount returns the segment's word count, preferring the transcriber's
// own count over tokenizing the text.
func (s Segment) WordCount() int {
	if s.Words != nil {
		return *s.Words
	}
	return len(strings.Fields(s.Text))
}

func (s *Segment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	text, ok := raw["text"]
	if !ok {
		return errors.New("segment missing required text field")
	}
	if err := json.Unmarshal(text, &s.Text); err != nil {
		return fmt.Errorf("segment text: %w", err)
	}
	delete(raw, "text")

	if words, ok := raw["words"]; ok {
		var count int
		if err := json.Unmarshal(words, &count); err != nil {
			return fmt.Errorf("segment words: %w", err)
		}
		s.Words = &count
		delete(raw, "words")
	}

	if len(raw) > 0 {
		s.Extra = raw
	} else {
		s.Extra = nil
	}
	return nil
}

func (s Segment) MarshalJSON() ([]byte, error) {
	merged := make(map[string]json.RawMessage, len(s.Extra)+2)
	for key, value := range s.Extra {
		merged[key] = value
	}
	text, err := json.Marshal(s.Text)
	if err != nil {
		return nil, err
	}
	merged["text"] = text
	if s.Words != nil {
		words, err := json.Marshal(*s.Words)
		if err != nil {
			return nil, err
		}
		merged["words"] = words
	}
	return json.Marshal(merged)
}

// Document is the normalized in-memory form of a transcript file.
type Document struct {
	Segments []Segment
	FullText *string
	Metadata map[string]json.RawMessage
	Extra    map[string]json.RawMessage

	bare        bool
	hasSegments bool
}

// Bare reports whether the source document was a bare segment array.
func (d *Document) Bare() bool { return d.bare }

// HasSegments reports whether the source document carried a segments
// sequence (always true for the bare shape).
func (d *Document) HasSegments() bool { return d.hasSegments }

// Parse decodes either document shape into a Document.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	if trimmed[0] == '[' {
		var segments []Segment
		if err := json.Unmarshal(data, &segments); err != nil {
			return nil, fmt.Errorf("parse segment array: %w", err)
		}
		return &Document{Segments: segments, bare: true, hasSegments: true}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{}
	if segments, ok := raw["segments"]; ok {
		if err := json.Unmarshal(segments, &doc.Segments); err != nil {
			return nil, fmt.Errorf("parse segments: %w", err)
		}
		doc.hasSegments = true
		delete(raw, "segments")
	}
	if fullText, ok := raw["full_text"]; ok {
		var text string
		if err := json.Unmarshal(fullText, &text); err != nil {
			return nil, fmt.Errorf("parse full_text: %w", err)
		}
		doc.FullText = &text
		delete(raw, "full_text")
	}
	if metadata, ok := raw["metadata"]; ok {
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("parse metadata: %w", err)
		}
		if doc.Metadata == nil {
			doc.Metadata = map[string]json.RawMessage{}
		}
		delete(raw, "metadata")
	}
	if len(raw) > 0 {
		doc.Extra = raw
	}
	return doc, nil
}

// SetMetadataCounts overwrites segment_count and word_count in the metadata
// record. No-op when the document has no metadata.
func (d *Document) SetMetadataCounts(segmentCount, wordCount int) error {
	if d.Metadata == nil {
		return nil
	}
	segments, err := json.Marshal(segmentCount)
	if err != nil {
		return err
	}
	words, err := json.Marshal(wordCount)
	if err != nil {
		return err
	}
	d.Metadata["segment_count"] = segments
	d.Metadata["word_count"] = words
	return nil
}

// Encode serializes the document in its original shape with two-space
// indentation, matching the transcription step's output formatting.
func (d *Document) Encode() ([]byte, error) {
	if d.bare {
		return json.MarshalIndent(d.Segments, "", "  ")
	}

	merged := make(map[string]json.RawMessage, len(d.Extra)+3)
	for key, value := range d.Extra {
		merged[key] = value
	}
	if d.hasSegments {
		segments, err := json.Marshal(d.Segments)
		if err != nil {
			return nil, err
		}
		merged["segments"] = segments
	}
	if d.FullText != nil {
		fullText, err := json.Marshal(*d.FullText)
		if err != nil {
			return nil, err
		}
		merged["full_text"] = fullText
	}
	if d.Metadata != nil {
		metadata, err := json.Marshal(d.Metadata)
		if err != nil {
			return nil, err
		}
		merged["metadata"] = metadata
	}
	return json.MarshalIndent(merged, "", "  ")
}
