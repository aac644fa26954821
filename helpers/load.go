package helpers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spektr-org/lens/query"
	"github.com/spektr-org/lens/schema"
)

// ============================================================================
// LOAD HELPERS — Files → model values
// ============================================================================
// The consumer owns where queries and schemas live; these helpers turn the
// raw JSON bytes into model values for CLI-style callers.
// ============================================================================

// LoadQuery reads a structured query from a tagged-array JSON file.
func LoadQuery(path string) (*query.StructuredQuery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}
	var q query.StructuredQuery
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parse query file %s: %w", path, err)
	}
	return &q, nil
}

// LoadTable reads table metadata from a JSON file.
func LoadTable(path string) (*schema.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table file: %w", err)
	}
	var t schema.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse table file %s: %w", path, err)
	}
	return &t, nil
}
