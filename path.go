package idlmodel

// ElementPath is a (module, name) coordinate identifying an entity or enum
// within a project. It holds a lookup key, not a reference: resolution goes
// through the Project passed at call time, which keeps the graph acyclic and
// trivially serializable.
//
// An empty coordinate means "unset"; a path with either coordinate unset
// never resolves. Resolution misses are not errors; they are a valid
// unresolved-reference state callers must branch on.
type ElementPath struct {
	Module string
	Name   string
}

// IsSet reports whether both coordinates are present.
func (p ElementPath) IsSet() bool { return p.Module != "" && p.Name != "" }

// Equals reports structural equality of both coordinates. Two unset paths
// compare equal.
func (p ElementPath) Equals(other ElementPath) bool { return p == other }

// EntityOf resolves the path to an entity. It returns nil when the path is
// unset or when the project, module, or entity lookup misses.
func (p ElementPath) EntityOf(proj *Project) *Entity {
	if proj == nil || !p.IsSet() {
		return nil
	}
	m, ok := proj.Modules[p.Module]
	if !ok {
		return nil
	}
	return m.Entities[p.Name]
}

// EnumOf resolves the path to an enum, with the same miss semantics as
// EntityOf.
func (p ElementPath) EnumOf(proj *Project) *Enum {
	if proj == nil || !p.IsSet() {
		return nil
	}
	m, ok := proj.Modules[p.Module]
	if !ok {
		return nil
	}
	return m.Enums[p.Name]
}

// String renders the path as "module.name" for diagnostics.
func (p ElementPath) String() string {
	if !p.IsSet() {
		return "<unset>"
	}
	return p.Module + "." + p.Name
}
