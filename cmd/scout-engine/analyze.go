// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scout-engine/internal/annotate"
	"github.com/pdiddy/scout-engine/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <chunks.json> \"<instruction>\"",
	Short: "Annotate every chunk in a chunks file",
	Long: `Analyze reads a chunks file produced by the chunk subcommand, sends
each chunk with the given instruction to the Gemini API, and writes
the annotated records as <base>_chunks_analysis.json. Per-chunk
failures are recorded in the output and do not stop the batch.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chunksPath, instruction := args[0], args[1]

		cfg, err := aiConfig(cmd)
		if err != nil {
			return err
		}

		chunks, err := report.ReadChunks(chunksPath)
		if err != nil {
			return err
		}
		if len(chunks) == 0 {
			fmt.Fprintln(os.Stderr, "chunks file is empty, nothing to analyze")
			return nil
		}

		units := make([]*annotate.Unit, len(chunks))
		for i, c := range chunks {
			units[i] = &annotate.Unit{ID: strconv.Itoa(c.ID), Text: c.Text}
		}

		runner, err := newRunner(cfg)
		if err != nil {
			return err
		}
		if err := runner.Run(cmd.Context(), instruction, units); err != nil {
			return err
		}

		for i, u := range units {
			chunks[i].Analysis = u.Analysis
		}

		outPath := report.OutputPath(chunksPath, "_analysis.json")
		if err := report.WriteJSON(outPath, chunks); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d annotated chunks to %s\n", len(chunks), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
