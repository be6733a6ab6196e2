package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Line shapes are checked against embedded JSON Schemas before decoding
// into structs, so a corpus with the right keys but wrong value types
// (a float label, an object where text belongs) fails loudly at load
// time instead of surfacing as a zero value later.

//go:embed record.schema.json
var recordSchemaJSON string

//go:embed row.schema.json
var rowSchemaJSON string

var (
	recordSchema = jsonschema.MustCompileString("record.schema.json", recordSchemaJSON)
	rowSchema    = jsonschema.MustCompileString("row.schema.json", rowSchemaJSON)
)

// validateLine checks one raw JSONL line against a schema.
func validateLine(schema *jsonschema.Schema, raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
