package idlmodel_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	idl "github.com/reoring/idlmodel"
)

func TestIssuesError_SummarizesFirstFew(t *testing.T) {
	iss := idl.Issues{
		{Path: "/modules/a", Code: idl.CodeRequired},
		{Path: "/modules/b", Code: idl.CodeInvalidType},
		{Path: "/modules/c", Code: idl.CodeUnknownTypeTag},
		{Path: "/modules/d", Code: idl.CodeDuplicateKey},
	}
	msg := iss.Error()
	if !strings.HasPrefix(msg, "required at /modules/a; ") {
		t.Fatalf("Error() = %q", msg)
	}
	if !strings.Contains(msg, "(total 4)") || strings.Contains(msg, "/modules/d") {
		t.Fatalf("Error() = %q, want 4th issue folded into the total", msg)
	}
	if idl.Issues(nil).Error() != "" {
		t.Fatalf("empty Issues should stringify to %q", "")
	}
}

func TestAsIssues(t *testing.T) {
	iss := idl.Issues{{Path: "/modules/a", Code: idl.CodeRequired}}

	got, ok := idl.AsIssues(iss)
	if !ok || len(got) != 1 || got[0].Code != idl.CodeRequired {
		t.Fatalf("AsIssues(iss) = %v, %v", got, ok)
	}

	wrapped := fmt.Errorf("loading project: %w", iss)
	if got, ok = idl.AsIssues(wrapped); !ok || len(got) != 1 {
		t.Fatalf("AsIssues(wrapped) = %v, %v", got, ok)
	}

	if _, ok = idl.AsIssues(errors.New("plain")); ok {
		t.Fatalf("AsIssues matched a plain error")
	}
	if _, ok = idl.AsIssues(nil); ok {
		t.Fatalf("AsIssues matched nil")
	}
}
