package idlmodel

// Meta is the shared comment/config capability composed into entity-like
// nodes (enum items, enums, fields, entities). Config keys are opaque
// generator-specific flags.
type Meta struct {
	Comment string
	Config  map[string]string
}
