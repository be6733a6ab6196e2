package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/annolab/annoscore/internal/dataset"
	"github.com/annolab/annoscore/internal/output"
	"github.com/annolab/annoscore/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score <gold.jsonl> <predictions.jsonl>",
	Short: "Score a prediction table against gold labels",
	Long: `Score compares a prediction table against the gold label table and
reports the weighted F1 of every derived-label column.

Prediction rows with missing label values are dropped together with
their gold counterparts before scoring; the dropped count is logged.

Examples:
  annoscore score gold.jsonl preds.jsonl
  annoscore score gold.jsonl preds.jsonl -o json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scoreFiles(args[0], args[1], os.Stdout)
	},
}

// scoreResult is the structured-output shape of one scoring round.
type scoreResult struct {
	Removed int             `json:"removed_rows" yaml:"removed_rows"`
	Scores  []scoring.Score `json:"scores" yaml:"scores"`
	Total   float64         `json:"total" yaml:"total"`
}

// scoreFiles loads both tables, drops incomplete prediction rows and
// writes the per-rule report to w. Shared with the watch command.
func scoreFiles(goldPath, predsPath string, w io.Writer) error {
	truth, err := dataset.LoadTable(goldPath)
	if err != nil {
		return fmt.Errorf("gold table: %w", err)
	}
	preds, err := dataset.LoadTable(predsPath)
	if err != nil {
		return fmt.Errorf("prediction table: %w", err)
	}

	truth, preds, removed, err := scoring.FilterComplete(truth, preds)
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Warn("dropped rows with missing prediction values", "rows", removed)
	}

	report, err := scoring.ComputeF1(truth, preds)
	if err != nil {
		return err
	}

	if output.IsStructured() {
		return output.OutputTo(w, output.GetFormat(), scoreResult{
			Removed: removed,
			Scores:  report.Scores,
			Total:   report.Total(),
		})
	}
	return report.Render(w)
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
