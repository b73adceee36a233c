package idlmodel

import (
	"errors"
	"sort"
	"strings"
)

// Verify runs the read-only whole-graph checks a generator wants before
// emitting code: unresolvable parent/response/field references, parents that
// are not entities, cyclic inheritance chains, and non-abstract entities left
// with unsolved generic parameters. Resolution misses are a valid state for
// the model API; Verify is where they turn into reportable findings.
//
// Findings are ordered by entity path so output is stable.
func (p *Project) Verify() Issues {
	var iss Issues

	flat := p.FlatEntities()
	sort.Slice(flat, func(i, j int) bool {
		a, b := flat[i].Path, flat[j].Path
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		return a.Name < b.Name
	})

	for _, fe := range flat {
		e := fe.Entity
		base := []string{"modules", fe.Path.Module, "entities", fe.Path.Name}

		if e.Parent.IsSet() && e.Parent.EntityOf(p) == nil {
			iss = AppendIssues(iss, Issue{
				Path:    pointer(append(base, "parent")),
				Code:    CodeUnresolvedRef,
				Message: "parent does not resolve to an entity",
				Hint:    e.Parent.String(),
			})
		}
		if e.Response.IsSet() && e.Response.EntityOf(p) == nil {
			iss = AppendIssues(iss, Issue{
				Path:    pointer(append(base, "response")),
				Code:    CodeUnresolvedRef,
				Message: "response does not resolve to an entity",
				Hint:    e.Response.String(),
			})
		}

		for _, name := range e.FieldsLocal.Names() {
			fpath := append(base, "fieldsLocal", name)
			iss = verifyType(p, e.FieldsLocal.Get(name).Type, fpath, iss)
		}
		for _, name := range sortedKeys(e.GenericMap) {
			gpath := append(base, "genericMap", name)
			iss = verifyType(p, e.GenericMap[name].Type, gpath, iss)
		}

		unsolved, err := e.GenericUnsolved(p)
		switch {
		case errors.Is(err, ErrCyclicInheritance):
			iss = AppendIssues(iss, Issue{
				Path:    pointer(base),
				Code:    CodeCyclicInheritance,
				Message: "inheritance chain revisits an entity",
				Hint:    e.Parent.String(),
			})
		case err == nil && !e.Abstract && len(unsolved) > 0:
			iss = AppendIssues(iss, Issue{
				Path:    pointer(base),
				Code:    CodeUnsolvedGeneric,
				Message: "non-abstract entity has unsolved generics",
				Hint:    strings.Join(dedup(unsolved), ", "),
			})
		}
	}
	return iss
}

// verifyType checks the references reachable from a field type, descending
// through list members.
func verifyType(p *Project, t FieldType, path []string, iss Issues) Issues {
	switch ft := t.(type) {
	case ObjectRef:
		if ft.Entity.EntityOf(p) == nil {
			iss = AppendIssues(iss, Issue{
				Path:    pointer(path),
				Code:    CodeUnresolvedRef,
				Message: "object type does not resolve to an entity",
				Hint:    ft.Entity.String(),
			})
		}
	case EnumRef:
		if ft.Enum.EnumOf(p) == nil {
			iss = AppendIssues(iss, Issue{
				Path:    pointer(path),
				Code:    CodeUnresolvedRef,
				Message: "enum type does not resolve to an enum",
				Hint:    ft.Enum.String(),
			})
		}
	case List:
		if ft.Member != nil {
			iss = verifyType(p, ft.Member, path, iss)
		}
	}
	return iss
}

func sortedKeys(m map[string]*Field) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func dedup(names []string) []string {
	seen := map[string]bool{}
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
