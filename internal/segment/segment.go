// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits extracted text into annotation units: fixed
// overlapping windows for chunked analysis, or header-delimited blocks
// for per-player profiles.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/scout-engine/pkg/types"
)

// DefaultHeaderPattern matches a scouting profile header line such as
// "RB Chez Mellusi RSP Scouting Profile". The capturing group is the
// player's display name.
const DefaultHeaderPattern = `(?:QB|RB|WR|TE)\s+([A-Z][a-zA-Z\s'.-]+?)\s+RSP Scouting Profile`

// Windows splits text into consecutive windows of length size whose
// neighbors share exactly overlap characters. Window IDs are 1-based
// and sequential; the final window may be shorter than size.
//
// Overlap must be smaller than size: each iteration then advances the
// start offset by size-overlap > 0, so the split always terminates.
func Windows(text string, size, overlap int) ([]types.Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size %d is not positive", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap %d must be in [0, %d)", overlap, size)
	}

	var chunks []types.Chunk
	step := size - overlap
	for start, id := 0, 1; start < len(text); start, id = start+step, id+1 {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, types.Chunk{ID: id, Text: text[start:end]})
	}

	return chunks, nil
}

// SplitProfiles splits text on a header pattern whose first capturing
// group is the player name. Each profile's body is the text between
// its header and the next one (or end of text), trimmed. Text before
// the first header is discarded. Zero matches is not an error: the
// caller sees an empty slice and decides how to report it.
func SplitProfiles(text string, re *regexp.Regexp) ([]types.Profile, error) {
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("header pattern %q has no capturing group for the player name", re)
	}

	matches := re.FindAllStringSubmatchIndex(text, -1)
	profiles := make([]types.Profile, 0, len(matches))
	for i, m := range matches {
		// m[2]:m[3] is the first capturing group; m[1] is the end of
		// the whole header match.
		name := strings.TrimSpace(text[m[2]:m[3]])

		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:bodyEnd])

		profiles = append(profiles, types.Profile{PlayerName: name, Text: body})
	}

	return profiles, nil
}
