// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scout-engine/internal/annotate"
	"github.com/pdiddy/scout-engine/internal/pdfio"
	"github.com/pdiddy/scout-engine/internal/report"
	"github.com/pdiddy/scout-engine/pkg/types"
)

// tablePrompt asks the multimodal model to combine the skill text with
// the ranking table in the page image.
const tablePrompt = `You are a data extraction specialist. I am providing you with the text content and an image of a single page from a document.

First, read the provided text to identify the primary skill being discussed (e.g., "Vision", "Elusiveness").

Next, analyze the table in the provided image. The columns in the table represent ranked categories for that skill.

Return a single JSON object with two keys:
1. "skill": The name of the skill you identified from the text.
2. "ratings": An object where each key is a column title from the table (e.g., "Star Caliber", "Starter Caliber") and the value is an array of the player names listed in that column.`

var tablesCmd = &cobra.Command{
	Use:   "tables <pdf> <start-page> <end-page>",
	Short: "Extract skill-ranking tables from a page range",
	Long: `Tables renders each page in the range as an image, sends the image and
the page text to the multimodal Gemini API, and decodes the structured
response. Pages whose response fails to parse are skipped with a
warning. Results are written as <base>_skills_analysis.json.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]
		start, end, err := parsePageRange(args[1], args[2])
		if err != nil {
			return err
		}

		cfg, err := aiConfig(cmd)
		if err != nil {
			return err
		}

		doc, err := pdfio.Open(pdfPath)
		if err != nil {
			return err
		}
		defer doc.Close()

		var units []*annotate.Unit
		for page := start; page <= end; page++ {
			text, png, err := pdfio.PageContent(doc, page)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: skipping page %d: %v\n", page, err)
				continue
			}
			units = append(units, &annotate.Unit{
				ID:    strconv.Itoa(page),
				Text:  text,
				Image: png,
			})
		}
		if len(units) == 0 {
			fmt.Fprintln(os.Stderr, "no readable pages in range, nothing to analyze")
			return nil
		}

		runner, err := newRunner(cfg)
		if err != nil {
			return err
		}
		if err := runner.Run(cmd.Context(), tablePrompt, units); err != nil {
			return err
		}

		var tables []types.SkillTable
		for _, u := range units {
			if u.Status != annotate.StatusDone {
				fmt.Fprintf(os.Stderr, "warning: no analysis for page %s: %s\n", u.ID, u.Analysis)
				continue
			}
			table, err := annotate.ParseSkillTable(u.Analysis)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not parse response for page %s, skipping: %v\n", u.ID, err)
				continue
			}
			tables = append(tables, table)
		}

		if len(tables) == 0 {
			fmt.Fprintln(os.Stderr, "no pages were successfully analyzed, not writing output")
			return nil
		}

		outPath := report.OutputPath(pdfPath, "_skills_analysis.json")
		if err := report.WriteJSON(outPath, tables); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d skill tables to %s\n", len(tables), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
