package idlmodel_test

import (
	"os"
	"testing"

	idl "github.com/reoring/idlmodel"
)

func TestProject_EndToEnd(t *testing.T) {
	data, err := os.ReadFile("testdata/project.json")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	p, iss, err := idl.ParseProject(data)
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("unexpected load issues: %v", iss)
	}
	if p.Name != "accounts" || p.Version != "2.3.0" || p.TargetPackage != "com.example.accounts" {
		t.Fatalf("project header wrong: %+v", p)
	}

	if got := len(p.FlatEntities()); got != 7 {
		t.Fatalf("FlatEntities() = %d entries, want 7", got)
	}
	if got := len(p.FlatEnums()); got != 1 {
		t.Fatalf("FlatEnums() = %d entries, want 1", got)
	}
	if findings := p.Verify(); len(findings) != 0 {
		t.Fatalf("Verify() = %v, want clean", findings)
	}

	// cross-module inheritance: api.ListUsersResp -> core.UserPage -> core.Page
	resp := p.Modules["api"].Entities["ListUsersResp"]
	var chain []idl.EntityType
	if err := resp.FromAncestorToMe(p, func(e *idl.Entity) { chain = append(chain, e.Type) }); err != nil {
		t.Fatalf("FromAncestorToMe: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}

	// the page generic is solved by core.UserPage
	unsolved, err := resp.GenericUnsolved(p)
	if err != nil {
		t.Fatalf("GenericUnsolved: %v", err)
	}
	if len(unsolved) != 0 {
		t.Fatalf("unsolved = %v, want none", unsolved)
	}

	// request surface round trip
	get := p.Modules["api"].Entities["GetUser"]
	if get.Method != idl.MethodGet || get.Path != "/users/{id}" {
		t.Fatalf("GetUser request surface wrong: %+v", get)
	}
	if !get.FieldsLocal.Get("id").PathParameter {
		t.Fatalf("GetUser.id should be a path parameter")
	}
	if get.Response.EntityOf(p) == nil {
		t.Fatalf("GetUser.response should resolve")
	}
}

func TestProject_FlatteningHasNoDuplicates(t *testing.T) {
	data, err := os.ReadFile("testdata/project.json")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	p, _, err := idl.ParseProject(data)
	if err != nil {
		t.Fatalf("ParseProject: %v", err)
	}
	seen := map[idl.ElementPath]bool{}
	for _, fe := range p.FlatEntities() {
		if seen[fe.Path] {
			t.Fatalf("duplicate path %v", fe.Path)
		}
		seen[fe.Path] = true
		if fe.Path.EntityOf(p) != fe.Entity {
			t.Fatalf("path %v does not resolve back to its entity", fe.Path)
		}
	}
	for _, fe := range p.FlatEnums() {
		if fe.Path.EnumOf(p) != fe.Enum {
			t.Fatalf("path %v does not resolve back to its enum", fe.Path)
		}
	}
}
