// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scout-engine/internal/consolidate"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <directory> \"<player name>\"",
	Short: "Look up a player's analysis in the SQLite index",
	Long: `Lookup cleanses the given name, applies the alias table, and queries
the analysis.db index built by consolidate --index. The analysis text
is printed to stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, name := args[0], args[1]

		cfg, err := cleanseConfig(cmd)
		if err != nil {
			return err
		}

		idx, err := consolidate.OpenIndex(dir)
		if err != nil {
			return err
		}
		defer idx.Close()

		key := consolidate.Resolve(name, cfg)
		analysis, err := idx.Lookup(cmd.Context(), key)
		if err != nil {
			return err
		}

		fmt.Println(analysis)
		return nil
	},
}

func init() {
	lookupCmd.Flags().String("aliases", "", "YAML file with cleansing suffixes and alias overrides")

	rootCmd.AddCommand(lookupCmd)
}
