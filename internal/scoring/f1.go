// Package scoring evaluates prediction tables against consolidated
// gold tables with weighted F1 and picks the best of several
// candidate models.
package scoring

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Metrics wraps the scalar score of one truth/prediction pairing.
type Metrics struct {
	F1 float64 `json:"f1" yaml:"f1"`
}

// ComputeMetrics scores predictions against truth with weighted
// average F1: per-class F1 scores weighted by the class support in
// truth. Classes present only in the predictions enter with zero
// weight, so they drag the average down through false positives alone.
func ComputeMetrics(truth, preds []int) (Metrics, error) {
	if len(truth) != len(preds) {
		return Metrics{}, fmt.Errorf("length mismatch: %d truth values, %d predictions", len(truth), len(preds))
	}
	if len(truth) == 0 {
		return Metrics{}, errors.New("no values to score")
	}

	f1s, weights := classF1s(truth, preds)
	return Metrics{F1: stat.Mean(f1s, weights)}, nil
}

// classF1s computes the per-class F1 and truth-support weight for
// every class seen in either slice, in ascending class order.
func classF1s(truth, preds []int) (f1s, weights []float64) {
	classes := map[int]struct{}{}
	for _, v := range truth {
		classes[v] = struct{}{}
	}
	for _, v := range preds {
		classes[v] = struct{}{}
	}
	ordered := make([]int, 0, len(classes))
	for c := range classes {
		ordered = append(ordered, c)
	}
	slices.Sort(ordered)

	f1s = make([]float64, len(ordered))
	weights = make([]float64, len(ordered))
	for i, class := range ordered {
		var tp, fp, fn int
		for j := range truth {
			switch {
			case truth[j] == class && preds[j] == class:
				tp++
			case preds[j] == class:
				fp++
			case truth[j] == class:
				fn++
			}
		}
		if tp > 0 {
			f1s[i] = 2 * float64(tp) / float64(2*tp+fp+fn)
		}
		weights[i] = float64(tp + fn)
	}
	return f1s, weights
}
