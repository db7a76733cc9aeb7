// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scout-engine/internal/consolidate"
	"github.com/pdiddy/scout-engine/pkg/types"
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate <directory>",
	Short: "Merge player analysis files into one lookup",
	Long: `Consolidate scans a directory for *_player_analysis.json files,
cleanses every player name, applies the alias table, and writes a
single name-keyed lookup as consolidated_analysis.json in the same
directory. When two records cleanse to the same key the last one wins.

With --index the lookup is also written to a SQLite database
(analysis.db) queryable via the lookup subcommand.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		cfg, err := cleanseConfig(cmd)
		if err != nil {
			return err
		}

		lookup, summary, err := consolidate.Run(dir, cfg, os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "consolidated %d records from %d files into %d entries\n",
			summary.Records, summary.Files, summary.Entries)

		buildIndex, _ := cmd.Flags().GetBool("index")
		if !buildIndex || len(lookup) == 0 {
			return nil
		}

		idx, err := consolidate.OpenIndex(dir)
		if err != nil {
			return err
		}
		defer idx.Close()

		if err := idx.Rebuild(cmd.Context(), lookup); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "indexed %d players\n", len(lookup))
		return nil
	},
}

// cleanseConfig loads the cleansing tables from --aliases when given,
// or falls back to the built-in defaults.
func cleanseConfig(cmd *cobra.Command) (types.CleanseConfig, error) {
	aliasPath, _ := cmd.Flags().GetString("aliases")
	if aliasPath == "" {
		return consolidate.DefaultCleanseConfig(), nil
	}
	return consolidate.LoadCleanseConfig(aliasPath)
}

func init() {
	consolidateCmd.Flags().String("aliases", "", "YAML file with cleansing suffixes and alias overrides")
	consolidateCmd.Flags().Bool("index", false, "also build the SQLite lookup index (analysis.db)")

	rootCmd.AddCommand(consolidateCmd)
}
