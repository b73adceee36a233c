package idlmodel

// Field is a typed, possibly-optional entity member. The same type serves two
// roles: a local field declared on an entity, or a generic-parameter bound in
// an entity's GenericMap; the mapping holding it determines the role.
type Field struct {
	Type FieldType
	// Optional marks the field as omittable by clients.
	Optional bool
	// PathParameter marks a request field whose value arrives via the URL
	// path rather than the body.
	PathParameter bool
	// Realname overrides the generation-facing identifier only; the lookup
	// key stays the document key.
	Realname string
	// FixedValue pins the field to a constant, kept in wire form.
	FixedValue any
	Meta
}

// Fields is an insertion-ordered field mapping. Declaration order is part of
// the model: Entity.GenericLocal reports parameters in the order their fields
// were declared.
type Fields struct {
	names  []string
	byName map[string]*Field
}

// NewFields returns an empty field mapping.
func NewFields() *Fields {
	return &Fields{byName: map[string]*Field{}}
}

// Len reports the number of fields.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Names returns the field names in declaration order. The slice is a copy.
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Get returns the field under name, or nil.
func (f *Fields) Get(name string) *Field {
	if f == nil {
		return nil
	}
	return f.byName[name]
}

// Set stores fd under name, keeping the original position when the name is
// already present.
func (f *Fields) Set(name string, fd *Field) {
	if _, ok := f.byName[name]; !ok {
		f.names = append(f.names, name)
	}
	f.byName[name] = fd
}
