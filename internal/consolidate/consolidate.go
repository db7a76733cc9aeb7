// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package consolidate merges per-position analysis files into a single
// name-keyed lookup of player analyses.
package consolidate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scout-engine/internal/report"
	"github.com/pdiddy/scout-engine/pkg/types"
)

const (
	// analysisSuffix selects the files the scan picks up.
	analysisSuffix = "_player_analysis.json"

	// outputFile is the consolidated lookup written into the scanned
	// directory.
	outputFile = "consolidated_analysis.json"
)

// Summary holds counts from a consolidation run.
type Summary struct {
	// Files is the number of analysis files read.
	Files int

	// Records is the number of player records collected across files.
	Records int

	// Entries is the number of unique lookup keys produced.
	Entries int
}

// Collect scans dir (non-recursive) for analysis files and returns
// every record they contain, in directory order. Files whose top level
// is not a JSON array are skipped with a warning; a missing directory
// is an error.
func Collect(dir string, w io.Writer) ([]types.Profile, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var records []types.Profile
	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), analysisSuffix) {
			continue
		}
		files++

		path := filepath.Join(dir, entry.Name())
		fmt.Fprintf(w, "reading %s\n", entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", entry.Name(), err)
			continue
		}

		var fileRecords []types.Profile
		if err := json.Unmarshal(data, &fileRecords); err != nil {
			fmt.Fprintf(w, "warning: %s does not contain a valid record list, skipping\n", entry.Name())
			continue
		}
		records = append(records, fileRecords...)
	}

	return records, files, nil
}

// BuildLookup maps each record's resolved name to its analysis text.
// Records missing a name or analysis are ignored. When two records
// resolve to the same key, the later one wins: intentional for alias
// corrections, silent for genuine collisions.
func BuildLookup(records []types.Profile, cfg types.CleanseConfig, w io.Writer) map[string]string {
	lookup := make(map[string]string)
	for _, rec := range records {
		if rec.PlayerName == "" || rec.Analysis == "" {
			continue
		}

		key := Cleanse(rec.PlayerName, cfg)
		if canonical, ok := cfg.Aliases[key]; ok {
			fmt.Fprintf(w, "applying alias: %q -> %q\n", key, canonical)
			key = canonical
		}
		lookup[key] = rec.Analysis
	}
	return lookup
}

// Run consolidates every analysis file in dir into
// consolidated_analysis.json. When no matching files exist, or no
// record carries both a name and an analysis, nothing is written and
// the summary reports zero entries.
func Run(dir string, cfg types.CleanseConfig, w io.Writer) (map[string]string, Summary, error) {
	records, files, err := Collect(dir, w)
	if err != nil {
		return nil, Summary{}, err
	}
	if files == 0 {
		fmt.Fprintf(w, "no files ending with %s found in %s\n", analysisSuffix, dir)
		return nil, Summary{}, nil
	}

	fmt.Fprintf(w, "collected %d player analyses from %d files\n", len(records), files)

	lookup := BuildLookup(records, cfg, w)
	summary := Summary{Files: files, Records: len(records), Entries: len(lookup)}
	if len(lookup) == 0 {
		fmt.Fprintf(w, "no usable analyses found, not writing %s\n", outputFile)
		return lookup, summary, nil
	}

	outPath := filepath.Join(dir, outputFile)
	if err := report.WriteJSON(outPath, lookup); err != nil {
		return nil, summary, err
	}
	fmt.Fprintf(w, "wrote %d entries to %s\n", len(lookup), outPath)

	return lookup, summary, nil
}
