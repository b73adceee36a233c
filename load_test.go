package idlmodel_test

import (
	"testing"

	idl "github.com/reoring/idlmodel"
)

func TestParseProject_SyntacticFailureIsReported(t *testing.T) {
	p, iss, err := idl.ParseProject([]byte(`{"modules":`))
	if err == nil || p != nil {
		t.Fatalf("ParseProject = %v, %v; want nil project and an error", p, err)
	}
	if len(iss) != 1 || iss[0].Code != idl.CodeParseError {
		t.Fatalf("issues = %v, want one parse_error", iss)
	}

	p, iss, err = idl.ParseProjectYAML([]byte("modules: [unclosed"))
	if err == nil || p != nil {
		t.Fatalf("ParseProjectYAML = %v, %v; want nil project and an error", p, err)
	}
	if len(iss) != 1 || iss[0].Code != idl.CodeParseError {
		t.Fatalf("issues = %v, want one parse_error", iss)
	}
}

func TestParseProject_MinimalDocument(t *testing.T) {
	doc := `{"modules":{"m":{"entities":{"A":{"type":0,"isAbstract":false,"fieldsLocal":{},"genericMap":{}}}}}}`
	p, iss, err := idl.ParseProject([]byte(doc))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
	flat := p.FlatEntities()
	if len(flat) != 1 {
		t.Fatalf("FlatEntities() returned %d pairs, want 1", len(flat))
	}
	want := idl.ElementPath{Module: "m", Name: "A"}
	if !flat[0].Path.Equals(want) {
		t.Fatalf("path = %v, want %v", flat[0].Path, want)
	}
	if flat[0].Entity.Type != idl.EntityObject || flat[0].Entity.Abstract {
		t.Fatalf("entity loaded wrong: %+v", flat[0].Entity)
	}
}

func TestParseProject_DropsMalformedFieldKeepsSiblings(t *testing.T) {
	doc := `{"modules":{"m":{"entities":{"A":{
		"type":0,"isAbstract":false,"genericMap":{},
		"fieldsLocal":{
			"good":{"type":{"type":"string"},"isOptional":true},
			"broken":{"type":{"type":"string"}},
			"alsoGood":{"type":{"type":"integer"},"isOptional":false}
		}}}}}}`
	p, iss, err := idl.ParseProject([]byte(doc))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	e := p.Modules["m"].Entities["A"]
	if e == nil {
		t.Fatalf("entity A did not survive a malformed field")
	}
	if e.FieldsLocal.Len() != 2 || e.FieldsLocal.Get("broken") != nil {
		t.Fatalf("fields = %v, want broken dropped", e.FieldsLocal.Names())
	}
	if e.FieldsLocal.Get("good") == nil || e.FieldsLocal.Get("alsoGood") == nil {
		t.Fatalf("sibling fields were lost: %v", e.FieldsLocal.Names())
	}

	found := false
	for _, is := range iss {
		if is.Code == idl.CodeRequired && is.Hint == "isOptional" {
			found = true
		}
	}
	if !found {
		t.Fatalf("dropped field was not reported: %v", iss)
	}
}

func TestParseProject_DropsMalformedEntityKeepsModule(t *testing.T) {
	doc := `{"modules":{"m":{
		"entities":{
			"Broken":{"type":0,"isAbstract":false,"fieldsLocal":{}},
			"Fine":{"type":2,"isAbstract":true,"fieldsLocal":{},"genericMap":{}}
		},
		"enums":{"Color":{"items":{"red":{"value":1},"bad":{}}}}}}}`
	p, _, err := idl.ParseProject([]byte(doc))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	m := p.Modules["m"]
	if m == nil {
		t.Fatalf("module did not load")
	}
	if _, ok := m.Entities["Broken"]; ok {
		t.Fatalf("entity missing genericMap should have been dropped")
	}
	fine := m.Entities["Fine"]
	if fine == nil || fine.Type != idl.EntityResponse || !fine.Abstract {
		t.Fatalf("sibling entity lost or mangled: %+v", fine)
	}
	en := m.Enums["Color"]
	if en == nil || len(en.Items) != 1 || en.Items["red"].Value != 1 {
		t.Fatalf("enum should keep the well-formed item only: %+v", en)
	}
}

func TestLoadFieldType_Variants(t *testing.T) {
	if ft := idl.LoadFieldType(map[string]any{"type": "datetime"}); !idl.DateTime.Equals(ft) {
		t.Fatalf("datetime tag loaded as %v", ft)
	}
	ft := idl.LoadFieldType(map[string]any{
		"type":   "object",
		"entity": map[string]any{"module": "m", "name": "A"},
	})
	want := idl.ObjectRef{Entity: idl.ElementPath{Module: "m", Name: "A"}}
	if ft == nil || !ft.Equals(want) {
		t.Fatalf("object type loaded as %v, want %v", ft, want)
	}
	lt := idl.LoadFieldType(map[string]any{
		"type": "list",
		"member": map[string]any{
			"type": "enum",
			"enu":  map[string]any{"module": "m", "name": "Color"},
		},
	})
	wantList := idl.List{Member: idl.EnumRef{Enum: idl.ElementPath{Module: "m", Name: "Color"}}}
	if lt == nil || !lt.Equals(wantList) {
		t.Fatalf("list type loaded as %v, want %v", lt, wantList)
	}
	tp := idl.LoadFieldType(map[string]any{"type": "unknown", "unknown": "T"})
	if tp == nil || !tp.Equals(idl.TypeParam{Name: "T"}) {
		t.Fatalf("unknown tag loaded as %v, want type param T", tp)
	}
}

func TestLoadFieldType_MalformedIsNil(t *testing.T) {
	cases := []map[string]any{
		{"type": "tuple"},                     // unrecognized tag
		{"kind": "integer"},                   // missing discriminator
		{"type": "object"},                    // missing entity payload
		{"type": "enum"},                      // missing enu payload
		{"type": "list"},                      // missing member
		{"type": "list", "member": "integer"}, // member not an object
		{"type": "unknown"},                   // missing parameter name
	}
	for _, c := range cases {
		if ft := idl.LoadFieldType(c); ft != nil {
			t.Fatalf("LoadFieldType(%v) = %v, want nil", c, ft)
		}
	}
}

func TestLoadField_RealnameDoesNotChangeKey(t *testing.T) {
	doc := `{"modules":{"m":{"entities":{"A":{
		"type":0,"isAbstract":false,"genericMap":{},
		"fieldsLocal":{"type":{"type":{"type":"string"},"isOptional":false,"realname":"kind"}}}}}}}`
	p, _, err := idl.ParseProject([]byte(doc))
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	f := p.Modules["m"].Entities["A"].FieldsLocal.Get("type")
	if f == nil {
		t.Fatalf("field keyed by document key not found")
	}
	if f.Realname != "kind" {
		t.Fatalf("realname = %q, want kind", f.Realname)
	}
}

func TestLoadEntity_RequestSurface(t *testing.T) {
	e := idl.LoadEntity(map[string]any{
		"type":       1,
		"isAbstract": false,
		"path":       "/users/{id}",
		"method":     3,
		"response":   map[string]any{"module": "m", "name": "UserResp"},
		"fieldsLocal": map[string]any{
			"id": map[string]any{
				"type":            map[string]any{"type": "id"},
				"isOptional":      false,
				"isPathParameter": true,
			},
		},
		"genericMap": map[string]any{},
		"comment":    "fetch one user",
		"config":     map[string]any{"retries": "3"},
	})
	if e == nil {
		t.Fatalf("request entity did not load")
	}
	if e.Type != idl.EntityRequest || e.Method != idl.MethodDelete || e.Path != "/users/{id}" {
		t.Fatalf("request surface wrong: %+v", e)
	}
	if !e.Response.Equals(idl.ElementPath{Module: "m", Name: "UserResp"}) {
		t.Fatalf("response path = %v", e.Response)
	}
	f := e.FieldsLocal.Get("id")
	if f == nil || !f.PathParameter || f.Optional {
		t.Fatalf("path parameter field wrong: %+v", f)
	}
	if e.Comment != "fetch one user" || e.Config["retries"] != "3" {
		t.Fatalf("meta wrong: %+v", e.Meta)
	}
}

func TestEntityTypeWireMapping(t *testing.T) {
	for wire, want := range map[int64]idl.EntityType{
		0: idl.EntityObject, 1: idl.EntityRequest, 2: idl.EntityResponse,
	} {
		got, ok := idl.EntityTypeFromWire(wire)
		if !ok || got != want {
			t.Fatalf("EntityTypeFromWire(%d) = %v, %v", wire, got, ok)
		}
		if got.Wire() != wire {
			t.Fatalf("Wire() round trip failed for %v", got)
		}
	}
	if _, ok := idl.EntityTypeFromWire(7); ok {
		t.Fatalf("expected 7 to be an invalid entity type")
	}
}

func TestRequestMethodWireMapping(t *testing.T) {
	for wire, want := range map[int64]idl.RequestMethod{
		0: idl.MethodGet, 1: idl.MethodPost, 2: idl.MethodPut, 3: idl.MethodDelete,
		4: idl.MethodPatch, 5: idl.MethodSocket, 6: idl.MethodMQTT,
	} {
		got, ok := idl.RequestMethodFromWire(wire)
		if !ok || got != want {
			t.Fatalf("RequestMethodFromWire(%d) = %v, %v", wire, got, ok)
		}
		if got.Wire() != wire {
			t.Fatalf("Wire() round trip failed for %v", got)
		}
	}
	if _, ok := idl.RequestMethodFromWire(42); ok {
		t.Fatalf("expected 42 to be an invalid request method")
	}
}

func TestParseProjectYAML_SameGraphAsJSON(t *testing.T) {
	yml := `
name: sample
version: "1.0"
targetPackage: com.example.sample
modules:
  core:
    entities:
      User:
        type: 0
        isAbstract: false
        fieldsLocal:
          name:
            type: {type: string}
            isOptional: false
        genericMap: {}
    enums:
      Role:
        items:
          admin: {value: 1}
          guest: {value: 2}
`
	p, iss, err := idl.ParseProjectYAML([]byte(yml))
	if err != nil {
		t.Fatalf("ParseProjectYAML: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if p.Name != "sample" || p.TargetPackage != "com.example.sample" {
		t.Fatalf("project header wrong: %+v", p)
	}
	if len(p.FlatEntities()) != 1 || len(p.FlatEnums()) != 1 {
		t.Fatalf("flattening lost declarations")
	}
	u := p.Modules["core"].Entities["User"]
	if u == nil || !idl.String.Equals(u.FieldsLocal.Get("name").Type) {
		t.Fatalf("User.name did not load as string")
	}
}
