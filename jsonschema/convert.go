package jsonschema

import (
	"fmt"
	"sort"

	idl "github.com/reoring/idlmodel"
)

// FromProject renders every concrete entity and every enum of the project
// into a root schema whose $defs are keyed "module.Name". Abstract entities
// are inheritance bases, not payloads, and are skipped; their generic
// parameters may legitimately stay unsolved until a descendant binds them.
// Unsolved parameters on a concrete entity and cyclic inheritance chains are
// conversion errors, not schemas.
func FromProject(p *idl.Project) (*Schema, error) {
	root := &Schema{Defs: map[string]*Schema{}}
	for _, fe := range p.FlatEntities() {
		if fe.Entity.Abstract {
			continue
		}
		s, err := FromEntity(p, fe.Entity)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", fe.Path, err)
		}
		root.Defs[fe.Path.String()] = s
	}
	for _, fe := range p.FlatEnums() {
		// $refs only ever target entities, so when an enum shares a name with
		// an entity in its module the entity keeps the plain key.
		key := fe.Path.String()
		if _, taken := root.Defs[key]; taken {
			key += "Enum"
		}
		root.Defs[key] = FromEnum(fe.Enum)
	}
	return root, nil
}

// FromEntity renders an entity as an object schema, folding in inherited
// fields via the root-first ancestor walk so descendants override same-named
// declarations. Generic parameters solved anywhere on the chain render as
// their bound type; a parameter left unsolved is a conversion error.
func FromEntity(p *idl.Project, e *idl.Entity) (*Schema, error) {
	// Bindings come from descendants, so collect every level's GenericMap
	// before rendering any field.
	bindings := map[string]idl.FieldType{}
	err := e.FromAncestorToMe(p, func(a *idl.Entity) {
		for name, f := range a.GenericMap {
			bindings[name] = f.Type
		}
	})
	if err != nil {
		return nil, err
	}

	s := &Schema{
		Type:        "object",
		Description: e.Comment,
		Properties:  map[string]*Schema{},
	}
	var (
		required []string
		reqSeen  = map[string]bool{}
		convErr  error
	)
	// chain already proved acyclic above
	_ = e.FromAncestorToMe(p, func(a *idl.Entity) {
		for _, name := range a.FieldsLocal.Names() {
			f := a.FieldsLocal.Get(name)
			fs, err := fromType(p, bindings, f.Type, map[string]bool{})
			if err != nil {
				if convErr == nil {
					convErr = fmt.Errorf("field %s: %w", name, err)
				}
				continue
			}
			fs.Description = f.Comment
			s.Properties[name] = fs
			if !f.Optional && !reqSeen[name] {
				reqSeen[name] = true
				required = append(required, name)
			}
		}
	})
	if convErr != nil {
		return nil, convErr
	}
	s.Required = required
	return s, nil
}

// FromEnum renders an enum as a string schema with its item names sorted.
// Realname overrides apply, matching what a generator would emit.
func FromEnum(e *idl.Enum) *Schema {
	s := &Schema{Type: "string", Description: e.Comment}
	for _, en := range e.Flat() {
		name := en.Name
		if en.Item.Realname != "" {
			name = en.Item.Realname
		}
		s.Enum = append(s.Enum, name)
	}
	sort.Strings(s.Enum)
	return s
}

func fromType(p *idl.Project, bindings map[string]idl.FieldType, t idl.FieldType, expanding map[string]bool) (*Schema, error) {
	switch ft := t.(type) {
	case idl.Scalar:
		switch ft.Kind() {
		case idl.KindInteger:
			return &Schema{Type: "integer"}, nil
		case idl.KindLong:
			return &Schema{Type: "integer", Format: "int64"}, nil
		case idl.KindDouble:
			return &Schema{Type: "number"}, nil
		case idl.KindID:
			return &Schema{Type: "string", Format: "id"}, nil
		case idl.KindURL:
			return &Schema{Type: "string", Format: "uri"}, nil
		case idl.KindDateTime:
			return &Schema{Type: "string", Format: "date-time"}, nil
		case idl.KindBoolean:
			return &Schema{Type: "boolean"}, nil
		case idl.KindString:
			return &Schema{Type: "string"}, nil
		case idl.KindSSMap:
			return &Schema{Type: "object", AdditionalProperties: &Schema{Type: "string"}}, nil
		}
	case idl.ObjectRef:
		return &Schema{Ref: "#/$defs/" + ft.Entity.String()}, nil
	case idl.EnumRef:
		if en := ft.Enum.EnumOf(p); en != nil {
			return FromEnum(en), nil
		}
		return &Schema{Ref: "#/$defs/" + ft.Enum.String()}, nil
	case idl.List:
		item, err := fromType(p, bindings, ft.Member, expanding)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: item}, nil
	case idl.TypeParam:
		bound, ok := bindings[ft.Name]
		if !ok {
			return nil, fmt.Errorf("unsolved generic parameter %q has no schema", ft.Name)
		}
		if expanding[ft.Name] {
			return nil, fmt.Errorf("generic parameter %q is bound to itself", ft.Name)
		}
		expanding[ft.Name] = true
		return fromType(p, bindings, bound, expanding)
	}
	return nil, fmt.Errorf("unsupported field type %v", t)
}
