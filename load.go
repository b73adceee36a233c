package idlmodel

import (
	json "github.com/goccy/go-json"
)

// Every node type loads from the untyped document form with the same
// contract: required fields are checked for presence before construction, and
// a malformed node yields nil rather than an error. Enclosing collections drop
// nil children and keep going: a broken field never takes down its entity,
// and a broken entity never takes down its module.
//
// The pure LoadX functions discard diagnostics; ParseProject and
// ParseProjectYAML report every dropped node as an Issue.

// LoadProject loads a whole project. The only required key is "modules";
// name, version, and targetPackage default to "".
func LoadProject(v any) *Project {
	return (&loader{}).project(v, nil)
}

// LoadModule loads one module's entity and enum mappings.
func LoadModule(v any) *Module {
	return (&loader{}).module(v, nil)
}

// LoadEntity loads an entity. Required keys: type, isAbstract, fieldsLocal,
// genericMap.
func LoadEntity(v any) *Entity {
	return (&loader{}).entity(v, nil)
}

// LoadField loads a field. Required keys: type, isOptional.
func LoadField(v any) *Field {
	return (&loader{}).field(v, nil)
}

// LoadFieldType loads a field type from its tagged wire form. An unrecognized
// tag yields nil; the "unknown" tag is not a fallback, it is the generic
// type-parameter variant.
func LoadFieldType(v any) FieldType {
	return (&loader{}).fieldType(v, nil)
}

// LoadEnum loads an enum. Required key: items.
func LoadEnum(v any) *Enum {
	return (&loader{}).enum(v, nil)
}

// LoadEnumItem loads an enum item. Required key: value.
func LoadEnumItem(v any) *EnumItem {
	return (&loader{}).enumItem(v, nil)
}

// LoadElementPath loads a path; absent coordinates stay unset.
func LoadElementPath(v any) *ElementPath {
	return (&loader{}).elementPath(v, nil)
}

// ParseProject decodes a JSON document and loads it, reporting duplicate keys
// and every dropped node as Issues. The error is non-nil only for input that
// does not decode at all; that failure is also reported as a parse_error
// Issue at the document root.
func ParseProject(data []byte) (*Project, Issues, error) {
	doc, iss, err := DecodeJSON(data)
	if err != nil {
		iss = AppendIssues(iss, Issue{Code: CodeParseError, Message: err.Error()})
		return nil, iss, err
	}
	return loadReporting(doc, iss)
}

// ParseProjectYAML is ParseProject for YAML input of the same shape.
func ParseProjectYAML(data []byte) (*Project, Issues, error) {
	doc, iss, err := DecodeYAML(data)
	if err != nil {
		iss = AppendIssues(iss, Issue{Code: CodeParseError, Message: err.Error()})
		return nil, iss, err
	}
	return loadReporting(doc, iss)
}

func loadReporting(doc any, iss Issues) (*Project, Issues, error) {
	l := &loader{issues: iss}
	p := l.project(doc, nil)
	return p, l.issues, nil
}

// loader carries diagnostics through a single load pass. path holds the
// JSON-Pointer segments of the node being loaded.
type loader struct {
	issues Issues
}

func (l *loader) report(path []string, code, msg, hint string) {
	l.issues = AppendIssues(l.issues, Issue{
		Path:    pointer(path),
		Code:    code,
		Message: msg,
		Hint:    hint,
	})
}

func (l *loader) project(v any, path []string) *Project {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "project is not an object", "")
		return nil
	}
	mods, ok := obj.Get("modules")
	if !ok {
		l.report(path, CodeRequired, "missing required key", "modules")
		return nil
	}
	modsObj, ok := asObject(mods)
	if !ok {
		l.report(append(path, "modules"), CodeInvalidType, "modules is not an object", "")
		return nil
	}

	p := &Project{
		Name:          stringAt(obj, "name"),
		Version:       stringAt(obj, "version"),
		TargetPackage: stringAt(obj, "targetPackage"),
		Modules:       map[string]*Module{},
	}
	for _, name := range modsObj.Keys() {
		mv, _ := modsObj.Get(name)
		mpath := append(path, "modules", name)
		if m := l.module(mv, mpath); m != nil {
			p.Modules[name] = m
		}
	}
	return p
}

func (l *loader) module(v any, path []string) *Module {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "module is not an object", "")
		return nil
	}
	m := &Module{
		Entities: map[string]*Entity{},
		Enums:    map[string]*Enum{},
	}
	if ev, ok := obj.Get("entities"); ok {
		if eobj, ok := asObject(ev); ok {
			for _, name := range eobj.Keys() {
				nv, _ := eobj.Get(name)
				epath := append(path, "entities", name)
				if e := l.entity(nv, epath); e != nil {
					m.Entities[name] = e
				}
			}
		} else {
			l.report(append(path, "entities"), CodeInvalidType, "entities is not an object", "")
		}
	}
	if ev, ok := obj.Get("enums"); ok {
		if eobj, ok := asObject(ev); ok {
			for _, name := range eobj.Keys() {
				nv, _ := eobj.Get(name)
				epath := append(path, "enums", name)
				if e := l.enum(nv, epath); e != nil {
					m.Enums[name] = e
				}
			}
		} else {
			l.report(append(path, "enums"), CodeInvalidType, "enums is not an object", "")
		}
	}
	return m
}

func (l *loader) entity(v any, path []string) *Entity {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "entity is not an object", "")
		return nil
	}
	for _, req := range [...]string{"type", "isAbstract", "fieldsLocal", "genericMap"} {
		if _, ok := obj.Get(req); !ok {
			l.report(path, CodeRequired, "missing required key", req)
			return nil
		}
	}
	tw, ok := intAt(obj, "type")
	if !ok {
		l.report(append(path, "type"), CodeInvalidType, "entity type is not an integer", "")
		return nil
	}
	et, ok := EntityTypeFromWire(tw)
	if !ok {
		l.report(append(path, "type"), CodeInvalidType, "unknown entity type", "")
		return nil
	}
	abstract, ok := boolAt(obj, "isAbstract")
	if !ok {
		l.report(append(path, "isAbstract"), CodeInvalidType, "isAbstract is not a boolean", "")
		return nil
	}

	e := &Entity{
		Type:        et,
		Abstract:    abstract,
		Path:        stringAt(obj, "path"),
		FieldsLocal: NewFields(),
		GenericMap:  map[string]*Field{},
		Meta:        l.meta(obj, path),
	}
	if pv, ok := obj.Get("parent"); ok {
		if ep := l.elementPath(pv, append(path, "parent")); ep != nil {
			e.Parent = *ep
		}
	}
	if rv, ok := obj.Get("response"); ok {
		if ep := l.elementPath(rv, append(path, "response")); ep != nil {
			e.Response = *ep
		}
	}
	if _, ok := obj.Get("method"); ok {
		if mw, ok := intAt(obj, "method"); ok {
			if m, ok := RequestMethodFromWire(mw); ok {
				e.Method = m
			} else {
				l.report(append(path, "method"), CodeInvalidType, "unknown request method", "")
			}
		} else {
			l.report(append(path, "method"), CodeInvalidType, "method is not an integer", "")
		}
	}

	fv, _ := obj.Get("fieldsLocal")
	if fobj, ok := asObject(fv); ok {
		for _, name := range fobj.Keys() {
			nv, _ := fobj.Get(name)
			fpath := append(path, "fieldsLocal", name)
			if f := l.field(nv, fpath); f != nil {
				e.FieldsLocal.Set(name, f)
			}
		}
	} else {
		l.report(append(path, "fieldsLocal"), CodeInvalidType, "fieldsLocal is not an object", "")
		return nil
	}

	gv, _ := obj.Get("genericMap")
	if gobj, ok := asObject(gv); ok {
		for _, name := range gobj.Keys() {
			nv, _ := gobj.Get(name)
			gpath := append(path, "genericMap", name)
			if f := l.field(nv, gpath); f != nil {
				e.GenericMap[name] = f
			}
		}
	} else {
		l.report(append(path, "genericMap"), CodeInvalidType, "genericMap is not an object", "")
		return nil
	}
	return e
}

func (l *loader) field(v any, path []string) *Field {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "field is not an object", "")
		return nil
	}
	tv, ok := obj.Get("type")
	if !ok {
		l.report(path, CodeRequired, "missing required key", "type")
		return nil
	}
	if _, ok := obj.Get("isOptional"); !ok {
		l.report(path, CodeRequired, "missing required key", "isOptional")
		return nil
	}
	optional, ok := boolAt(obj, "isOptional")
	if !ok {
		l.report(append(path, "isOptional"), CodeInvalidType, "isOptional is not a boolean", "")
		return nil
	}
	ft := l.fieldType(tv, append(path, "type"))
	if ft == nil {
		return nil
	}
	f := &Field{
		Type:     ft,
		Optional: optional,
		Realname: stringAt(obj, "realname"),
		Meta:     l.meta(obj, path),
	}
	if pp, ok := boolAt(obj, "isPathParameter"); ok {
		f.PathParameter = pp
	}
	if fv, ok := obj.Get("fixedValue"); ok {
		f.FixedValue = fv
	}
	return f
}

func (l *loader) fieldType(v any, path []string) FieldType {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "field type is not an object", "")
		return nil
	}
	tag, ok := obj.Get("type")
	if !ok {
		l.report(path, CodeRequired, "missing required key", "type")
		return nil
	}
	ts, ok := tag.(string)
	if !ok {
		l.report(append(path, "type"), CodeInvalidType, "type tag is not a string", "")
		return nil
	}
	switch ts {
	case "integer":
		return Integer
	case "long":
		return Long
	case "double":
		return Double
	case "id":
		return ID
	case "url":
		return URL
	case "datetime":
		return DateTime
	case "boolean":
		return Boolean
	case "string":
		return String
	case "ssmap":
		return SSMap
	case "object":
		ev, ok := obj.Get("entity")
		if !ok {
			l.report(path, CodeRequired, "missing required key", "entity")
			return nil
		}
		ep := l.elementPath(ev, append(path, "entity"))
		if ep == nil {
			return nil
		}
		return ObjectRef{Entity: *ep}
	case "enum":
		ev, ok := obj.Get("enu")
		if !ok {
			l.report(path, CodeRequired, "missing required key", "enu")
			return nil
		}
		ep := l.elementPath(ev, append(path, "enu"))
		if ep == nil {
			return nil
		}
		return EnumRef{Enum: *ep}
	case "list":
		mv, ok := obj.Get("member")
		if !ok {
			l.report(path, CodeRequired, "missing required key", "member")
			return nil
		}
		member := l.fieldType(mv, append(path, "member"))
		if member == nil {
			return nil
		}
		return List{Member: member}
	case "unknown":
		name, ok := stringKey(obj, "unknown")
		if !ok {
			l.report(path, CodeRequired, "missing required key", "unknown")
			return nil
		}
		return TypeParam{Name: name}
	}
	l.report(append(path, "type"), CodeUnknownTypeTag, "unrecognized type tag", ts)
	return nil
}

func (l *loader) enum(v any, path []string) *Enum {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "enum is not an object", "")
		return nil
	}
	iv, ok := obj.Get("items")
	if !ok {
		l.report(path, CodeRequired, "missing required key", "items")
		return nil
	}
	iobj, ok := asObject(iv)
	if !ok {
		l.report(append(path, "items"), CodeInvalidType, "items is not an object", "")
		return nil
	}
	e := &Enum{
		Items: map[string]*EnumItem{},
		Meta:  l.meta(obj, path),
	}
	for _, name := range iobj.Keys() {
		nv, _ := iobj.Get(name)
		ipath := append(path, "items", name)
		if it := l.enumItem(nv, ipath); it != nil {
			e.Items[name] = it
		}
	}
	return e
}

func (l *loader) enumItem(v any, path []string) *EnumItem {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "enum item is not an object", "")
		return nil
	}
	if _, ok := obj.Get("value"); !ok {
		l.report(path, CodeRequired, "missing required key", "value")
		return nil
	}
	value, ok := intAt(obj, "value")
	if !ok {
		l.report(append(path, "value"), CodeInvalidType, "value is not an integer", "")
		return nil
	}
	return &EnumItem{
		Value:    value,
		Realname: stringAt(obj, "realname"),
		Meta:     l.meta(obj, path),
	}
}

func (l *loader) elementPath(v any, path []string) *ElementPath {
	obj, ok := asObject(v)
	if !ok {
		l.report(path, CodeInvalidType, "path is not an object", "")
		return nil
	}
	return &ElementPath{
		Module: stringAt(obj, "module"),
		Name:   stringAt(obj, "name"),
	}
}

// meta collects the optional comment/config pair shared by entity-like nodes.
func (l *loader) meta(obj *Object, path []string) Meta {
	m := Meta{Comment: stringAt(obj, "comment")}
	cv, ok := obj.Get("config")
	if !ok {
		return m
	}
	cobj, ok := asObject(cv)
	if !ok {
		l.report(append(path, "config"), CodeInvalidType, "config is not an object", "")
		return m
	}
	m.Config = map[string]string{}
	for _, k := range cobj.Keys() {
		vv, _ := cobj.Get(k)
		if s, ok := vv.(string); ok {
			m.Config[k] = s
		} else {
			l.report(append(path, "config", k), CodeInvalidType, "config value is not a string", "")
		}
	}
	return m
}

// asObject normalizes document objects. Decoded documents carry *Object;
// hand-built ones may use map[string]any, which is accepted at the cost of
// key order.
func asObject(v any) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, t != nil
	case map[string]any:
		obj := NewObject()
		for k, val := range t {
			obj.Set(k, val)
		}
		return obj, true
	}
	return nil, false
}

func stringAt(obj *Object, key string) string {
	s, _ := stringKey(obj, key)
	return s
}

func stringKey(obj *Object, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func boolAt(obj *Object, key string) (bool, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// intAt reads an integer-valued key, accepting json.Number plus the Go
// integer kinds hand-built documents tend to contain.
func intAt(obj *Object, key string) (int64, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
