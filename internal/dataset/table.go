package dataset

import (
	"fmt"
	"slices"
)

// Label column names, in the order every serialized row carries them.
const (
	ColBinMaj      = "bin_maj_label"
	ColBinOne      = "bin_one_label"
	ColBinAll      = "bin_all_label"
	ColMultiMaj    = "multi_maj_label"
	ColDisagreeBin = "disagree_bin_label"
)

// LabelColumns lists the five derived label columns in canonical order.
var LabelColumns = []string{ColBinMaj, ColBinOne, ColBinAll, ColMultiMaj, ColDisagreeBin}

// Row is one flattened dataset entry: record identity plus the five
// derived labels. A nil label is a missing value, serialized as null.
type Row struct {
	ID          ID     `json:"id"`
	Text        string `json:"text"`
	BinMaj      *int   `json:"bin_maj_label"`
	BinOne      *int   `json:"bin_one_label"`
	BinAll      *int   `json:"bin_all_label"`
	MultiMaj    *int   `json:"multi_maj_label"`
	DisagreeBin *int   `json:"disagree_bin_label"`
}

// Label returns the value stored in one of the five label columns,
// or nil for an unknown column name.
func (r Row) Label(column string) *int {
	switch column {
	case ColBinMaj:
		return r.BinMaj
	case ColBinOne:
		return r.BinOne
	case ColBinAll:
		return r.BinAll
	case ColMultiMaj:
		return r.MultiMaj
	case ColDisagreeBin:
		return r.DisagreeBin
	}
	return nil
}

// Labels returns the five label values in canonical column order.
func (r Row) Labels() [5]*int {
	return [5]*int{r.BinMaj, r.BinOne, r.BinAll, r.MultiMaj, r.DisagreeBin}
}

// Complete reports whether every label column has a value.
func (r Row) Complete() bool {
	for _, v := range r.Labels() {
		if v == nil {
			return false
		}
	}
	return true
}

// Table is an ordered collection of label rows.
type Table []Row

// Column extracts one label column as plain ints. A missing value is
// an error; filter incomplete rows out first.
func (t Table) Column(column string) ([]int, error) {
	if !slices.Contains(LabelColumns, column) {
		return nil, fmt.Errorf("unknown label column: %s", column)
	}
	values := make([]int, len(t))
	for i, row := range t {
		v := row.Label(column)
		if v == nil {
			return nil, fmt.Errorf("row %d (id %s): missing value in column %s", i, row.ID, column)
		}
		values[i] = *v
	}
	return values, nil
}

// IDs returns every row's identifier in order.
func (t Table) IDs() []ID {
	ids := make([]ID, len(t))
	for i, row := range t {
		ids[i] = row.ID
	}
	return ids
}
