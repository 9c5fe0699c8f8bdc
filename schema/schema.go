// Package schema holds the typed column layout of a table and decodes it
// from the JSON form carried in dataset configuration. The JSON shape is the
// struct-type document used by Spark-style engines:
//
//	{"type": "struct", "fields": [
//	    {"name": "id", "type": "long", "nullable": false, "metadata": {}},
//	    {"name": "name", "type": "string", "nullable": true, "metadata": {}}
//	]}
//
// A decoded Schema is the projection authority during save: dataframes are
// truncated to exactly its field names, in its field order.
package schema

import (
	"encoding/json"
	"fmt"
)

// Schema represents the column layout of a table.
type Schema struct {
	Fields []Field `json:"fields"`
}

// Field describes a single column.
type Field struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Nullable bool           `json:"nullable"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// FieldNames returns the column names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// document is the raw JSON shape before structural checks.
type document struct {
	Type   string  `json:"type"`
	Fields []Field `json:"fields"`
}

// Decode parses a struct-type JSON document into a Schema. It fails when the
// document is not valid JSON, is not a struct type, or has a field without a
// name or type. An empty field list is a valid (empty) struct.
func Decode(raw []byte) (*Schema, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema JSON: %w", err)
	}
	if doc.Type != "struct" {
		return nil, fmt.Errorf("schema type must be %q, got %q", "struct", doc.Type)
	}
	for i, f := range doc.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema field %d has no name", i)
		}
		if f.Type == "" {
			return nil, fmt.Errorf("schema field %q has no type", f.Name)
		}
	}
	return &Schema{Fields: doc.Fields}, nil
}
