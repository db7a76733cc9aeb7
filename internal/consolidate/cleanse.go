// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package consolidate

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scout-engine/pkg/types"
)

var (
	// nonNameChars matches everything a cleansed name drops: anything
	// outside word characters, whitespace, and apostrophes.
	nonNameChars = regexp.MustCompile(`[^\w\s']`)

	// spaceRuns collapses internal whitespace to single spaces.
	spaceRuns = regexp.MustCompile(`\s+`)
)

// DefaultCleanseConfig returns the standard suffix list and the known
// alias corrections. Suffixes are ordered: "iii" before "ii" so the
// longer numeral wins, and at most one is stripped.
func DefaultCleanseConfig() types.CleanseConfig {
	return types.CleanseConfig{
		Suffixes: []string{"iii", "iv", "ii", "jr", "sr", "v"},
		Aliases: map[string]string{
			"cam ward":         "cameron ward",
			"horace bru mccoy": "bru mccoy",
		},
	}
}

// LoadCleanseConfig reads suffixes and aliases from a YAML file.
// Fields left empty in the file fall back to the defaults.
func LoadCleanseConfig(path string) (types.CleanseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CleanseConfig{}, fmt.Errorf("reading cleanse config: %w", err)
	}

	cfg := types.CleanseConfig{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.CleanseConfig{}, fmt.Errorf("parsing cleanse config %s: %w", path, err)
	}

	defaults := DefaultCleanseConfig()
	if len(cfg.Suffixes) == 0 {
		cfg.Suffixes = defaults.Suffixes
	}
	if cfg.Aliases == nil {
		cfg.Aliases = defaults.Aliases
	}
	return cfg, nil
}

// Cleanse normalizes a player name into its lookup-key form:
// lowercase, at most one trailing honorific suffix removed, characters
// other than word characters, whitespace, and apostrophes dropped, and
// whitespace collapsed.
func Cleanse(name string, cfg types.CleanseConfig) string {
	cleaned := strings.ToLower(name)

	for _, suffix := range cfg.Suffixes {
		if strings.HasSuffix(cleaned, " "+suffix) {
			cleaned = strings.TrimSpace(cleaned[:len(cleaned)-len(suffix)-1])
			break
		}
	}

	cleaned = nonNameChars.ReplaceAllString(cleaned, "")
	cleaned = spaceRuns.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Resolve cleanses a name and applies the alias table, yielding the
// final lookup key.
func Resolve(name string, cfg types.CleanseConfig) string {
	key := Cleanse(name, cfg)
	if canonical, ok := cfg.Aliases[key]; ok {
		return canonical
	}
	return key
}
