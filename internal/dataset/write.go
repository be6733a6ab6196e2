package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteJSONL writes rows as one JSON object per line, fields in
// canonical column order, missing labels as null.
func WriteJSONL(w io.Writer, t Table) error {
	enc := json.NewEncoder(w)
	for i := range t {
		if err := enc.Encode(t[i]); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// SaveJSONL writes the table to path, replacing any existing file.
func SaveJSONL(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteJSONL(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the table with a header row. Missing labels become
// empty cells.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{"id", "text"}, LabelColumns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range t {
		fields := make([]string, 0, len(header))
		fields = append(fields, string(row.ID), row.Text)
		for _, v := range row.Labels() {
			if v == nil {
				fields = append(fields, "")
			} else {
				fields = append(fields, strconv.Itoa(*v))
			}
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to path as CSV, replacing any existing file.
func SaveCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
