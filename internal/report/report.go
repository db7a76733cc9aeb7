// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes pipeline results to JSON files beside the
// input document.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scout-engine/pkg/types"
)

// OutputPath derives an output filename from an input path by dropping
// the extension and appending suffix, e.g. ("guide.pdf",
// "_chunks.json") → "guide_chunks.json". The output lands beside the
// input.
func OutputPath(inputPath, suffix string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + suffix
}

// WriteJSON writes v to path as pretty-printed JSON with 4-space
// indentation. HTML escaping is disabled so player names and analysis
// text survive byte-for-byte; Go leaves non-ASCII unescaped already.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadChunks loads a chunks file written by the chunk pipeline: a JSON
// array of objects with chunk_id and text fields.
func ReadChunks(path string) ([]types.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chunks file: %w", err)
	}

	var chunks []types.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parsing chunks file %s: %w", path, err)
	}
	return chunks, nil
}
