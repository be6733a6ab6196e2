package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// maxLineBytes bounds a single JSONL line. Tweets are short; anything
// past this is a corrupt file, not data.
const maxLineBytes = 1 << 20

// LoadRecords reads an annotated corpus from a JSONL file. One bad
// line fails the whole load: label math over a partially read corpus
// silently skews every downstream score.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadRecords decodes records from JSONL input, one record per
// non-empty line.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	err := eachLine(r, func(lineNum int, raw []byte) error {
		if err := validateLine(recordSchema, raw); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadTable reads a derived-label table from a JSONL file.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadTable decodes label rows from JSONL input. Label columns that
// are absent or null decode to nil, marking a missing value.
func ReadTable(r io.Reader) (Table, error) {
	var table Table
	err := eachLine(r, func(lineNum int, raw []byte) error {
		if err := validateLine(rowSchema, raw); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		var row Row
		if err := json.Unmarshal(raw, &row); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		table = append(table, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// eachLine scans JSONL input and calls fn for every non-empty line.
// The first error aborts the scan.
func eachLine(r io.Reader, fn func(lineNum int, raw []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := fn(lineNum, raw); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
