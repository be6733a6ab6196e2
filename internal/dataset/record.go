// Package dataset defines the corpus record and label table types and
// their JSONL serialization.
package dataset

import (
	"encoding/json"
	"fmt"
)

// ID is a record identifier. Corpus exports write ids as JSON strings;
// some prediction dumps write bare integers. Both forms unmarshal to
// the string representation, which is what the output files carry.
type ID string

// UnmarshalJSON accepts either a string or a number.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Annotation is a single annotator's judgement on a record. Labels are
// category codes of the form "<digit>-<Name>". Annotator ids share the
// string-or-number tolerance of record ids.
type Annotation struct {
	Annotator ID     `json:"annotator,omitempty"`
	Label     string `json:"label"`
}

// Record is one text item in an annotated corpus. Annotations is nil
// when the record was never annotated (test splits omit the key or
// write an explicit null); an
// empty non-nil slice means the record claims annotations but carries
// none, which the aggregation rules reject.
type Record struct {
	ID          ID           `json:"id"`
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Labeled reports whether the record carries annotator judgements.
func (r Record) Labeled() bool {
	return r.Annotations != nil
}

// Labels returns the raw label strings in annotation order.
func (r Record) Labels() []string {
	labels := make([]string, len(r.Annotations))
	for i, a := range r.Annotations {
		labels[i] = a.Label
	}
	return labels
}
