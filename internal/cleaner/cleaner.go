// Package cleaner drives the transcript cleaning stage: discovery of
// transcript documents, per-document classification and metadata recompute,
// and run-level accounting.
package cleaner

import (
	"scrub/internal/noise"
	"scrub/internal/transcript"
)

// Removal records a single segment discarded during cleaning.
type Removal struct {
	Index  int
	Text   string
	Reason string
}

// Result summarizes the effect of cleaning one document.
type Result struct {
	OriginalSegments int
	KeptSegments     int
	WordCount        int
	Removals         []Removal
}

// Removed returns the number of discarded segments.
func (r Result) Removed() int {
	return r.OriginalSegments - r.KeptSegments
}

// Clean filters a document's segments through the noise rule table, cleans
// the aggregate text, and recomputes metadata counts so they match the
// filtered sequence. The document is modified in place; segments themselves
// are retained or discarded whole, never edited.
func Clean(doc *transcript.Document) (Result, error) {
	result := Result{OriginalSegments: len(doc.Segments)}

	if doc.HasSegments() {
		kept := make([]transcript.Segment, 0, len(doc.Segments))
		for i, segment := range doc.Segments {
			if reason, isNoise := noise.Classify(segment.Text); isNoise {
				result.Removals = append(result.Removals, Removal{
					Index:  i,
					Text:   segment.Text,
					Reason: reason,
				})
				continue
			}
			kept = append(kept, segment)
		}
		doc.Segments = kept
	}

	result.KeptSegments = len(doc.Segments)
	for _, segment := range doc.Segments {
		result.WordCount += segment.WordCount()
	}

	if doc.FullText != nil {
		cleaned := noise.CleanFullText(*doc.FullText)
		doc.FullText = &cleaned
	}

	if err := doc.SetMetadataCounts(result.KeptSegments, result.WordCount); err != nil {
		return result, err
	}
	return result, nil
}
