package idlmodel

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired          = "required"
	CodeInvalidType       = "invalid_type"
	CodeUnknownTypeTag    = "unknown_type_tag"
	CodeDuplicateKey      = "duplicate_key"
	CodeParseError        = "parse_error"
	CodeUnresolvedRef     = "unresolved_ref"
	CodeCyclicInheritance = "cyclic_inheritance"
	CodeUnsolvedGeneric   = "unsolved_generic"
)

// Issue represents a single diagnostic produced while loading or verifying a
// project document.
type Issue struct {
	Path    string // JSON Pointer (for example: /modules/auth/entities/Login).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: the offending key, tag, or reference.
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /modules/auth
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrCyclicInheritance reports a parent chain that revisits an entity.
// Ancestor walks return it wrapped with the entity where the cycle closed;
// match with errors.Is.
var ErrCyclicInheritance = errors.New("cyclic inheritance")
