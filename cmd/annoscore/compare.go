package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/dataset"
	"github.com/annolab/annoscore/internal/output"
	"github.com/annolab/annoscore/internal/scoring"
)

var compareAll bool

var compareCmd = &cobra.Command{
	Use:   "compare <gold.jsonl> <name=preds.jsonl> [name=preds.jsonl ...]",
	Short: "Compare prediction tables and pick the best model",
	Long: `Compare scores several prediction tables against one gold table and
announces the model with the highest summed F1 across the five rules.
Ties keep the candidate listed first.

Candidates are given as name=path pairs; a bare path uses its file name
(without extension) as the candidate name. Each candidate is filtered
for incomplete rows on its own, so models with different parse-failure
rows stay comparable.

Examples:
  annoscore compare gold.jsonl gpt-4o-mini=runs/a/predictions.jsonl gpt-4o=runs/b/predictions.jsonl
  annoscore compare gold.jsonl preds_a.jsonl preds_b.jsonl --all
  annoscore compare gold.jsonl a=a.jsonl b=b.jsonl -o yaml`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		truth, err := dataset.LoadTable(args[0])
		if err != nil {
			return fmt.Errorf("gold table: %w", err)
		}

		candidates, err := parseCandidates(args[1:])
		if err != nil {
			return err
		}

		comparison, err := scoring.FindBestModel(truth, candidates)
		if err != nil {
			return err
		}

		if output.IsStructured() {
			return output.Output(comparison)
		}
		if compareAll {
			for _, result := range comparison.Results {
				fmt.Printf("%s (total %v, %d rows dropped)\n", result.Name, result.Total, result.Removed)
				if err := result.Report.Render(os.Stdout); err != nil {
					return err
				}
				fmt.Println()
			}
		}
		return comparison.Render(os.Stdout)
	},
}

// parseCandidates turns name=path arguments into loaded candidates.
func parseCandidates(args []string) ([]scoring.Candidate, error) {
	candidates := make([]scoring.Candidate, 0, len(args))
	for _, arg := range args {
		name, path, found := strings.Cut(arg, "=")
		if !found {
			path = arg
			name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		}
		preds, err := dataset.LoadTable(path)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", name, err)
		}
		candidates = append(candidates, scoring.Candidate{Name: name, Predictions: preds})
	}
	return candidates, nil
}

func init() {
	compareCmd.Flags().BoolVar(&compareAll, "all", false, "print the breakdown of every candidate, not just the winner")

	rootCmd.AddCommand(compareCmd)
}
