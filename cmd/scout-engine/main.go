// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scout-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scout-engine/internal/annotate"
	"github.com/pdiddy/scout-engine/internal/secrets"
	"github.com/pdiddy/scout-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir is where API key files live, relative to the working directory.
const secretsDir = ".secrets/"

// rootCmd is the base command for the scout-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "scout-engine",
	Short: "Extract and analyze scouting reports from PDF documents",
	Long: `scout-engine turns PDF scouting guides into structured, AI-annotated JSON.

Each pipeline stage is a subcommand: chunk splits a document into
overlapping text windows, analyze annotates a chunks file, profiles
splits a page range into per-player profiles and annotates them,
tables reads skill-ranking pages with a multimodal model, and
consolidate merges analysis files into one name-keyed lookup.

Pipelines hand off through JSON files on disk; no state is shared
between runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scout-engine.yaml or ~/.config/scout-engine/config.yaml)")
	rootCmd.PersistentFlags().String("model", "", "Gemini model identifier (default: "+annotate.DefaultModel+")")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scout-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scout-engine"))
		}
	}

	viper.SetEnvPrefix("SCOUT_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("cooldown", annotate.DefaultCooldown)
	viper.SetDefault("pause_every", annotate.DefaultPauseEvery)
	viper.SetDefault("chunk_size", 2000)
	viper.SetDefault("overlap", 200)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// aiConfig resolves the annotation settings for a command: model from
// flag, config, or default; API key from the environment or .secrets/.
// A missing credential fails here, before any extraction work.
func aiConfig(cmd *cobra.Command) (types.AIConfig, error) {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	if model == "" {
		model = annotate.DefaultModel
	}

	key, err := secrets.APIKey(secretsDir)
	if err != nil {
		return types.AIConfig{}, err
	}

	return types.AIConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: "scout-engine/" + version,
		},
		Model:      model,
		APIKey:     key,
		Cooldown:   viper.GetDuration("cooldown"),
		PauseEvery: viper.GetInt("pause_every"),
	}, nil
}

// newRunner builds the batch annotator for a command, with progress
// going to stderr.
func newRunner(cfg types.AIConfig) (*annotate.Runner, error) {
	backend, err := annotate.NewGeminiBackend(cfg)
	if err != nil {
		return nil, err
	}
	return &annotate.Runner{
		Backend:    backend,
		Cooldown:   cfg.Cooldown,
		PauseEvery: cfg.PauseEvery,
		Log:        os.Stderr,
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
