package scoring

import (
	"errors"
	"fmt"
	"io"

	"github.com/annolab/annoscore/internal/dataset"
)

// Candidate is one named prediction table entered into a comparison.
type Candidate struct {
	Name        string
	Predictions dataset.Table
}

// CandidateResult is the scored outcome of one candidate.
type CandidateResult struct {
	Name    string  `json:"name" yaml:"name"`
	Removed int     `json:"removed_rows" yaml:"removed_rows"`
	Report  Report  `json:"report" yaml:"report"`
	Total   float64 `json:"total" yaml:"total"`
}

// Comparison ranks several candidates against one gold table.
type Comparison struct {
	Results   []CandidateResult `json:"results" yaml:"results"`
	BestIndex int               `json:"best_index" yaml:"best_index"`
}

// Best returns the winning candidate's result.
func (c Comparison) Best() CandidateResult {
	return c.Results[c.BestIndex]
}

// Render announces the winner and prints its five-score breakdown.
func (c Comparison) Render(w io.Writer) error {
	best := c.Best()
	if _, err := fmt.Fprintf(w, "Best model: %s\n", best.Name); err != nil {
		return err
	}
	return best.Report.Render(w)
}

// FindBestModel scores every candidate against the gold table and
// selects the one with the highest summed F1 across the five rules.
// Each candidate is filtered for incomplete prediction rows on its
// own, so candidates with different parse-failure rows stay
// comparable. Ties keep the earliest candidate.
func FindBestModel(truth dataset.Table, candidates []Candidate) (Comparison, error) {
	if len(candidates) == 0 {
		return Comparison{}, errors.New("no candidates to compare")
	}

	comparison := Comparison{Results: make([]CandidateResult, 0, len(candidates))}
	bestTotal := 0.0
	for i, candidate := range candidates {
		keptTruth, keptPreds, removed, err := FilterComplete(truth, candidate.Predictions)
		if err != nil {
			return Comparison{}, fmt.Errorf("candidate %s: %w", candidate.Name, err)
		}
		report, err := ComputeF1(keptTruth, keptPreds)
		if err != nil {
			return Comparison{}, fmt.Errorf("candidate %s: %w", candidate.Name, err)
		}

		result := CandidateResult{
			Name:    candidate.Name,
			Removed: removed,
			Report:  report,
			Total:   report.Total(),
		}
		comparison.Results = append(comparison.Results, result)
		if i == 0 || result.Total > bestTotal {
			comparison.BestIndex = i
			bestTotal = result.Total
		}
	}
	return comparison, nil
}
