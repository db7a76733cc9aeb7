// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scout-engine/internal/pdfio"
	"github.com/pdiddy/scout-engine/internal/report"
	"github.com/pdiddy/scout-engine/internal/segment"
	"github.com/pdiddy/scout-engine/pkg/types"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <pdf>",
	Short: "Split a PDF's text into overlapping windows",
	Long: `Chunk extracts the full text of a PDF and splits it into fixed-size
overlapping windows, written as <base>_chunks.json beside the input.
The chunks file feeds the analyze subcommand.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]
		cfg := chunkConfig(cmd)

		doc, err := pdfio.Open(pdfPath)
		if err != nil {
			return err
		}
		defer doc.Close()

		fmt.Fprintf(os.Stderr, "extracting text from %s (%d pages)\n", pdfPath, doc.NumPage())
		text, err := pdfio.SectionText(doc, 1, doc.NumPage())
		if err != nil {
			return err
		}

		chunks, err := segment.Windows(text, cfg.Size, cfg.Overlap)
		if err != nil {
			return err
		}
		if len(chunks) == 0 {
			fmt.Fprintln(os.Stderr, "no text extracted, nothing to write")
			return nil
		}

		outPath := report.OutputPath(pdfPath, "_chunks.json")
		if err := report.WriteJSON(outPath, chunks); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d chunks to %s\n", len(chunks), outPath)
		return nil
	},
}

// chunkConfig resolves window settings for the chunk command: flags
// when set, config file or environment otherwise.
func chunkConfig(cmd *cobra.Command) types.ChunkConfig {
	cfg := types.ChunkConfig{
		Size:    viper.GetInt("chunk_size"),
		Overlap: viper.GetInt("overlap"),
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.Size, _ = cmd.Flags().GetInt("chunk-size")
	}
	if cmd.Flags().Changed("overlap") {
		cfg.Overlap, _ = cmd.Flags().GetInt("overlap")
	}
	return cfg
}

func init() {
	chunkCmd.Flags().Int("chunk-size", 2000, "character length of each window")
	chunkCmd.Flags().Int("overlap", 200, "characters shared by consecutive windows")

	rootCmd.AddCommand(chunkCmd)
}
