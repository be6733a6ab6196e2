package scoring

import (
	"fmt"

	"github.com/annolab/annoscore/internal/dataset"
)

// FilterComplete restricts row-aligned gold and prediction tables to
// the positions where the prediction row has no missing value, keeping
// both tables aligned. Returns the filtered tables and the number of
// removed rows. Missing values are expected fallout from failed
// response parses, never an error here.
func FilterComplete(truth, preds dataset.Table) (dataset.Table, dataset.Table, int, error) {
	if len(truth) != len(preds) {
		return nil, nil, 0, fmt.Errorf("table length mismatch: %d gold rows, %d prediction rows", len(truth), len(preds))
	}

	keptTruth := make(dataset.Table, 0, len(truth))
	keptPreds := make(dataset.Table, 0, len(preds))
	for i := range preds {
		if !preds[i].Complete() {
			continue
		}
		keptTruth = append(keptTruth, truth[i])
		keptPreds = append(keptPreds, preds[i])
	}
	return keptTruth, keptPreds, len(truth) - len(keptTruth), nil
}
