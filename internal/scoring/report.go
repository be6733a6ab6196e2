package scoring

import (
	"fmt"
	"io"

	"github.com/annolab/annoscore/internal/dataset"
)

// ruleNames maps table columns to the display names used in reports.
var ruleNames = map[string]string{
	dataset.ColBinMaj:      "Bin Maj",
	dataset.ColBinOne:      "Bin One",
	dataset.ColBinAll:      "Bin All",
	dataset.ColMultiMaj:    "Multi Maj",
	dataset.ColDisagreeBin: "Disagree Bin",
}

// Score is the weighted F1 of one derived-label column.
type Score struct {
	Column string  `json:"column" yaml:"column"`
	Rule   string  `json:"rule" yaml:"rule"`
	F1     float64 `json:"f1" yaml:"f1"`
}

// Report holds the five per-rule scores of one prediction table, in
// canonical column order.
type Report struct {
	Scores []Score `json:"scores" yaml:"scores"`
}

// ComputeF1 scores a prediction table against the gold table, one
// score per derived-label column. Both tables must be complete and
// row-aligned; run FilterComplete first when predictions may carry
// missing values.
func ComputeF1(truth, preds dataset.Table) (Report, error) {
	report := Report{Scores: make([]Score, 0, len(dataset.LabelColumns))}
	for _, column := range dataset.LabelColumns {
		truthValues, err := truth.Column(column)
		if err != nil {
			return Report{}, fmt.Errorf("gold table: %w", err)
		}
		predValues, err := preds.Column(column)
		if err != nil {
			return Report{}, fmt.Errorf("prediction table: %w", err)
		}
		metrics, err := ComputeMetrics(truthValues, predValues)
		if err != nil {
			return Report{}, fmt.Errorf("score %s: %w", column, err)
		}
		report.Scores = append(report.Scores, Score{
			Column: column,
			Rule:   ruleNames[column],
			F1:     metrics.F1,
		})
	}
	return report, nil
}

// Total sums the five scores. Model comparison ranks by this sum.
func (r Report) Total() float64 {
	var total float64
	for _, s := range r.Scores {
		total += s.F1
	}
	return total
}

// Render writes the report in the line format downstream tooling
// scrapes, one line per rule.
func (r Report) Render(w io.Writer) error {
	for _, s := range r.Scores {
		if _, err := fmt.Fprintf(w, "Dev set F1 score %s: %v\n", s.Rule, s.F1); err != nil {
			return err
		}
	}
	return nil
}
