// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scout-engine/internal/annotate"
	"github.com/pdiddy/scout-engine/internal/pdfio"
	"github.com/pdiddy/scout-engine/internal/report"
	"github.com/pdiddy/scout-engine/internal/segment"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles <pdf> <start-page> <end-page> \"<instruction>\"",
	Short: "Split a page range into player profiles and annotate each",
	Long: `Profiles extracts a page range, splits the text on the player-header
pattern, and sends each profile with the given instruction to the
Gemini API. Results are written as <base>_player_analysis.json beside
the input. Pages are 1-based and inclusive; an end page past the
document is clamped.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath, instruction := args[0], args[3]
		start, end, err := parsePageRange(args[1], args[2])
		if err != nil {
			return err
		}

		pattern, _ := cmd.Flags().GetString("pattern")
		headerRe, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid header pattern: %w", err)
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

		fmt.Fprintf(os.Stderr, "extracting text from %s (pages %d-%d)\n", pdfPath, start, end)
		text, err := pdfio.SectionText(doc, start, end)
		if err != nil {
			return err
		}

		profiles, err := segment.SplitProfiles(text, headerRe)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Fprintln(os.Stderr, "no player profiles found; check the header pattern")
			return nil
		}
		fmt.Fprintf(os.Stderr, "found %d player profiles (first: %s)\n", len(profiles), profiles[0].PlayerName)

		units := make([]*annotate.Unit, len(profiles))
		for i, p := range profiles {
			units[i] = &annotate.Unit{ID: p.PlayerName, Text: p.Text}
		}

		runner, err := newRunner(cfg)
		if err != nil {
			return err
		}
		// Frame each profile under its player name so the model sees
		// whose report it is reading.
		runner.BuildPrompt = func(instruction string, u *annotate.Unit) string {
			return fmt.Sprintf("%s\n\n---\n\nPLAYER PROFILE:\n%q", instruction, u.ID+"\n"+u.Text)
		}

		if err := runner.Run(cmd.Context(), instruction, units); err != nil {
			return err
		}

		for i, u := range units {
			profiles[i].Analysis = u.Analysis
		}

		outPath := report.OutputPath(pdfPath, "_player_analysis.json")
		if err := report.WriteJSON(outPath, profiles); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d analyzed profiles to %s\n", len(profiles), outPath)
		return nil
	},
}

// parsePageRange converts the positional page arguments, rejecting
// non-numeric bounds before any extraction work starts.
func parsePageRange(startArg, endArg string) (int, int, error) {
	start, err := strconv.Atoi(startArg)
	if err != nil {
		return 0, 0, fmt.Errorf("start page %q is not an integer", startArg)
	}
	end, err := strconv.Atoi(endArg)
	if err != nil {
		return 0, 0, fmt.Errorf("end page %q is not an integer", endArg)
	}
	return start, end, nil
}

func init() {
	profilesCmd.Flags().String("pattern", segment.DefaultHeaderPattern, "profile header regexp; the first capturing group is the player name")

	rootCmd.AddCommand(profilesCmd)
}
