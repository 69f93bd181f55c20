package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes an analysis document from r.
//
// ReadJSON returns an error if the JSON is malformed, the unit is missing,
// or a kind is unknown. It does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Unit == "" {
		return nil, fmt.Errorf("decode: missing unit")
	}
	return &doc, nil
}

// ImportJSON reads an analysis document from the file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
