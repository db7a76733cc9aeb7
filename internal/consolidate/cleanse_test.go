// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package consolidate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanse(t *testing.T) {
	cfg := DefaultCleanseConfig()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Cameron Ward", want: "cameron ward"},
		{name: "strips jr", in: "Cam Ward Jr", want: "cam ward"},
		{name: "strips sr", in: "Marvin Harrison Sr", want: "marvin harrison"},
		{name: "strips roman numeral", in: "Kenneth Walker III", want: "kenneth walker"},
		{name: "iii wins over ii", in: "Frank Gore III", want: "frank gore"},
		{name: "strips v", in: "Travis Hunter V", want: "travis hunter"},
		{name: "keeps apostrophe", in: "De'Von Achane", want: "de'von achane"},
		{name: "drops punctuation", in: "A.J. Brown", want: "aj brown"},
		{name: "collapses whitespace", in: "  Bru   McCoy  ", want: "bru mccoy"},
		{name: "suffix only at end", in: "Jr Smith", want: "jr smith"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cleanse(tt.in, cfg); got != tt.want {
				t.Errorf("Cleanse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanseIdempotent(t *testing.T) {
	cfg := DefaultCleanseConfig()

	for _, raw := range []string{"Cam Ward Jr", "Kenneth Walker III", "De'Von Achane", "A.J. Brown"} {
		once := Cleanse(raw, cfg)
		twice := Cleanse(once, cfg)
		if once != twice {
			t.Errorf("Cleanse not idempotent for %q: %q -> %q", raw, once, twice)
		}
	}
}

func TestCleanseStripsAtMostOneSuffix(t *testing.T) {
	cfg := DefaultCleanseConfig()

	// Only the outermost suffix comes off; the remaining "jr" stays.
	if got := Cleanse("John Doe Jr Sr", cfg); got != "john doe jr" {
		t.Errorf("Cleanse(%q) = %q, want %q", "John Doe Jr Sr", got, "john doe jr")
	}
}

func TestResolveAppliesAlias(t *testing.T) {
	cfg := DefaultCleanseConfig()

	if got := Resolve("Cam Ward Jr", cfg); got != "cameron ward" {
		t.Errorf("Resolve(%q) = %q, want %q", "Cam Ward Jr", got, "cameron ward")
	}
	if got := Resolve("Shedeur Sanders", cfg); got != "shedeur sanders" {
		t.Errorf("Resolve(%q) = %q, want %q", "Shedeur Sanders", got, "shedeur sanders")
	}
}

func TestLoadCleanseConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	content := `aliases:
  "mitch trubisky": "mitchell trubisky"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCleanseConfig(path)
	if err != nil {
		t.Fatalf("LoadCleanseConfig() error = %v", err)
	}

	if cfg.Aliases["mitch trubisky"] != "mitchell trubisky" {
		t.Errorf("aliases = %v", cfg.Aliases)
	}
	// Suffixes fall back to the defaults when the file omits them.
	if len(cfg.Suffixes) == 0 {
		t.Error("suffixes not defaulted")
	}
}

func TestLoadCleanseConfigMissingFile(t *testing.T) {
	if _, err := LoadCleanseConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
