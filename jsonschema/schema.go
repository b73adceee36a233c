// Package jsonschema renders loaded entities and enums as a minimal JSON
// Schema document. It is a generator-facing convenience: the schema covers
// structure only (types, required fields, references), not semantics.
package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	Ref         string `json:"$ref,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Enum
	Enum []string `json:"enum,omitempty"`

	// Root
	Defs map[string]*Schema `json:"$defs,omitempty"`
}
