package idlmodel

// Module groups entity and enum declarations under a module name. The two
// mappings are independent: an entity and an enum may share a name within one
// module, and names may repeat across modules.
type Module struct {
	Entities map[string]*Entity
	Enums    map[string]*Enum
}

// Project is the root of the schema graph. TargetPackage is an opaque hint for
// downstream generation. The graph is built once by loading a document and
// must not be mutated afterwards; every query is a read-only traversal.
type Project struct {
	Name          string
	Version       string
	TargetPackage string
	Modules       map[string]*Module
}

// FlatEntity pairs an entity with its constructed path.
type FlatEntity struct {
	Path   ElementPath
	Entity *Entity
}

// FlatEnum pairs an enum with its constructed path.
type FlatEnum struct {
	Path ElementPath
	Enum *Enum
}

// FlatEntities returns one (path, entity) pair per entity across every module,
// in no particular order. The result is recomputed on each call.
func (p *Project) FlatEntities() []FlatEntity {
	var out []FlatEntity
	for mname, m := range p.Modules {
		for ename, e := range m.Entities {
			out = append(out, FlatEntity{
				Path:   ElementPath{Module: mname, Name: ename},
				Entity: e,
			})
		}
	}
	return out
}

// FlatEnums returns one (path, enum) pair per enum across every module, in no
// particular order. The result is recomputed on each call.
func (p *Project) FlatEnums() []FlatEnum {
	var out []FlatEnum
	for mname, m := range p.Modules {
		for ename, en := range m.Enums {
			out = append(out, FlatEnum{
				Path: ElementPath{Module: mname, Name: ename},
				Enum: en,
			})
		}
	}
	return out
}
