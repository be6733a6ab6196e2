package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/dataset"
	"github.com/annolab/annoscore/internal/report"
	"github.com/annolab/annoscore/internal/scoring"
)

var (
	reportOut   string
	reportTitle string
)

var reportCmd = &cobra.Command{
	Use:   "report <gold.jsonl> <name=preds.jsonl> [name=preds.jsonl ...]",
	Short: "Render an HTML score report for several models",
	Long: `Report scores every candidate against the gold table and renders a
bar chart of the per-rule F1 scores, one series per model, into a
self-contained HTML file.

Candidates use the same name=path syntax as the compare command.

Examples:
  annoscore report gold.jsonl gpt-4o-mini=a/predictions.jsonl gpt-4o=b/predictions.jsonl
  annoscore report gold.jsonl a.jsonl b.jsonl --out scores.html --title "Dev set"`,
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

		if err := report.SaveHTML(reportOut, reportTitle, comparison.Results); err != nil {
			return err
		}
		fmt.Printf("Best model: %s\n", comparison.Best().Name)
		fmt.Printf("Report written to %s\n", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "report.html", "output HTML file")
	reportCmd.Flags().StringVar(&reportTitle, "title", "Model comparison", "report title")

	rootCmd.AddCommand(reportCmd)
}
