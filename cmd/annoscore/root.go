package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/home"
	"github.com/annolab/annoscore/internal/output"
	"github.com/annolab/annoscore/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "annoscore",
	Short: "Aggregate annotator labels and score model predictions",
	Long: `Annoscore turns multi-annotator labels on short German-language texts
into consolidated gold labels and scores model predictions against them.

The workflow:
  - Aggregate per-annotator labels into five derived label columns
  - Prompt an LLM for the same labels and parse its completions
  - Score prediction sets with per-rule weighted F1
  - Compare models and render an HTML report`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./annoscore.yaml or ~/.annoscore/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "annoscore home directory (default: ~/.annoscore)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text, yaml or json",
	)
	rootCmd.PersistentFlags().BoolVar(
		&verbose, "verbose", false, "enable debug logging",
	)

	// Set output format and log level before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		output.SetFormat(outputFormat)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}

	rootCmd.AddCommand(versionCmd)
}

// getHome returns the home directory manager, creating the directory
// tree on first use.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	return h, nil
}

// configPath resolves the config file for this invocation. An explicit
// --config wins; otherwise a config inside a custom --home is used when
// present, and an empty result lets the manager search its default
// locations.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if homeDir != "" {
		if h, err := home.New(homeDir); err == nil && h.ConfigExists() {
			return h.ConfigPath()
		}
	}
	return ""
}
