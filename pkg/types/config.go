// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that call the network.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scout-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for stages that call the Generative AI API.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the AI model identifier (e.g. "gemini-1.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Cooldown is the pause inserted after a rate-limit error and
	// after every PauseEvery successful calls (default 65s).
	Cooldown time.Duration `json:"cooldown" yaml:"cooldown"`

	// PauseEvery is the number of successful calls between proactive
	// cooldown pauses (default 14). Zero disables proactive pausing.
	PauseEvery int `json:"pause_every" yaml:"pause_every"`
}

// ChunkConfig holds settings for fixed-window text splitting.
type ChunkConfig struct {
	// Size is the character length of each window (default 2000).
	Size int `json:"size" yaml:"size"`

	// Overlap is the number of characters shared by consecutive
	// windows (default 200). Must be smaller than Size.
	Overlap int `json:"overlap" yaml:"overlap"`
}

// CleanseConfig controls player-name normalization during
// consolidation. It is passed into the cleansing functions rather than
// read from package globals so tests can substitute their own tables.
type CleanseConfig struct {
	// Suffixes are honorific suffixes stripped from the end of a name,
	// checked in order; at most one is removed.
	Suffixes []string `json:"suffixes" yaml:"suffixes"`

	// Aliases maps a cleansed name to the canonical cleansed name to
	// use instead, correcting known misspellings across sources.
	Aliases map[string]string `json:"aliases" yaml:"aliases"`
}
