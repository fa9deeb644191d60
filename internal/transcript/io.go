package transcript

import (
	"fmt"
	"os"
)

// Load reads and parses a transcript document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return doc, nil
}

// Save serializes the document to path, replacing any prior content.
func (d *Document) Save(path string) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
