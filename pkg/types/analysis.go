// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across pipeline stages.
package types

// Chunk is one fixed-size window of extracted text. IDs are 1-based
// and sequential in source order.
type Chunk struct {
	// ID is the chunk's position in the source text, starting at 1.
	ID int `json:"chunk_id" yaml:"chunk_id"`

	// Text is the window contents. Consecutive chunks overlap by the
	// configured number of characters.
	Text string `json:"text" yaml:"text"`

	// Analysis holds the model response once the chunk has been
	// annotated. Empty until then.
	Analysis string `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// Profile is one player's scouting profile, delimited by the header
// pattern in the source document.
type Profile struct {
	// PlayerName is the display name captured from the profile header.
	PlayerName string `json:"player_name" yaml:"player_name"`

	// Text is the profile body: everything between this header and the
	// next one (or end of the extracted range).
	Text string `json:"text" yaml:"text"`

	// Analysis holds the model response, or an error message when the
	// annotation call failed.
	Analysis string `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// SkillTable is the structured result the model returns for one
// skill-ranking page: a skill name plus the players listed under each
// ranked column.
type SkillTable struct {
	Skill   string              `json:"skill" yaml:"skill"`
	Ratings map[string][]string `json:"ratings" yaml:"ratings"`
}
