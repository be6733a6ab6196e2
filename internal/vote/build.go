package vote

import (
	"fmt"
	"strings"

	"github.com/annolab/annoscore/internal/dataset"
)

// Labels bundles the five derived labels of one record.
type Labels struct {
	BinMaj      int `json:"bin_maj_label" yaml:"bin_maj_label"`
	BinOne      int `json:"bin_one_label" yaml:"bin_one_label"`
	BinAll      int `json:"bin_all_label" yaml:"bin_all_label"`
	MultiMaj    int `json:"multi_maj_label" yaml:"multi_maj_label"`
	DisagreeBin int `json:"disagree_bin_label" yaml:"disagree_bin_label"`
}

// Derive applies every rule to one record. ok is false for unlabeled
// records, mirroring the individual rules.
func Derive(r dataset.Record) (Labels, bool, error) {
	var labels Labels
	rules := []struct {
		fn  func(dataset.Record) (int, bool, error)
		dst *int
	}{
		{BinMaj, &labels.BinMaj},
		{BinOne, &labels.BinOne},
		{BinAll, &labels.BinAll},
		{MultiMaj, &labels.MultiMaj},
		{DisagreeBin, &labels.DisagreeBin},
	}
	for _, rule := range rules {
		value, ok, err := rule.fn(r)
		if err != nil {
			return Labels{}, true, err
		}
		if !ok {
			return Labels{}, false, nil
		}
		*rule.dst = value
	}
	return labels, true, nil
}

// Row lifts the derived labels into a dataset row.
func (l Labels) Row(id dataset.ID, text string) dataset.Row {
	return dataset.Row{
		ID:          id,
		Text:        text,
		BinMaj:      &l.BinMaj,
		BinOne:      &l.BinOne,
		BinAll:      &l.BinAll,
		MultiMaj:    &l.MultiMaj,
		DisagreeBin: &l.DisagreeBin,
	}
}

// BuildDataset derives the consolidated table for a whole record set.
// Unlabeled records stay in the table with null labels so downstream
// filtering can count them; a record with an empty annotations list
// aborts the build.
func BuildDataset(records []dataset.Record) (dataset.Table, error) {
	table := make(dataset.Table, 0, len(records))
	for _, r := range records {
		text := strings.ReplaceAll(r.Text, "\n", " ")
		labels, ok, err := Derive(r)
		if err != nil {
			return nil, fmt.Errorf("derive labels: %w", err)
		}
		if !ok {
			table = append(table, dataset.Row{ID: r.ID, Text: text})
			continue
		}
		table = append(table, labels.Row(r.ID, text))
	}
	return table, nil
}
