package idlmodel

import "fmt"

// TypeKind identifies a FieldType variant.
type TypeKind uint8

const (
	KindInteger TypeKind = iota
	KindLong
	KindDouble
	KindID
	KindURL
	KindDateTime
	KindBoolean
	KindString
	KindSSMap
	KindObject
	KindEnum
	KindList
	KindTypeParam
)

var kindNames = [...]string{
	KindInteger:   "integer",
	KindLong:      "long",
	KindDouble:    "double",
	KindID:        "id",
	KindURL:       "url",
	KindDateTime:  "datetime",
	KindBoolean:   "boolean",
	KindString:    "string",
	KindSSMap:     "ssmap",
	KindObject:    "object",
	KindEnum:      "enum",
	KindList:      "list",
	KindTypeParam: "unknown",
}

// String returns the kind's wire tag.
func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// FieldType is the closed set of field type descriptors. The variants are
// Scalar, ObjectRef, EnumRef, List, and TypeParam; the tag returned by Kind
// fully determines the concrete type.
//
// Equality is structural: same tag, and for payload variants equal payloads.
// The payload is the referenced path for ObjectRef/EnumRef (the referenced
// declarations are NOT unrolled), recursive member equality for List, and the
// parameter name for TypeParam.
type FieldType interface {
	Kind() TypeKind
	Equals(other FieldType) bool
}

// Scalar is a payload-free primitive type. Use the package-level singletons;
// the zero value is Integer.
type Scalar struct {
	kind TypeKind
}

var (
	Integer  = Scalar{KindInteger}
	Long     = Scalar{KindLong}
	Double   = Scalar{KindDouble}
	ID       = Scalar{KindID}
	URL      = Scalar{KindURL}
	DateTime = Scalar{KindDateTime}
	Boolean  = Scalar{KindBoolean}
	String   = Scalar{KindString}
	SSMap    = Scalar{KindSSMap}
)

func (s Scalar) Kind() TypeKind { return s.kind }

func (s Scalar) String() string { return s.kind.String() }

func (s Scalar) Equals(other FieldType) bool {
	t, ok := other.(Scalar)
	return ok && t.kind == s.kind
}

// ObjectRef references an object entity by path.
type ObjectRef struct {
	Entity ElementPath
}

func (ObjectRef) Kind() TypeKind { return KindObject }

func (t ObjectRef) Equals(other FieldType) bool {
	u, ok := other.(ObjectRef)
	return ok && t.Entity.Equals(u.Entity)
}

func (t ObjectRef) String() string { return "object<" + t.Entity.String() + ">" }

// EnumRef references an enumeration by path.
type EnumRef struct {
	Enum ElementPath
}

func (EnumRef) Kind() TypeKind { return KindEnum }

func (t EnumRef) Equals(other FieldType) bool {
	u, ok := other.(EnumRef)
	return ok && t.Enum.Equals(u.Enum)
}

func (t EnumRef) String() string { return "enum<" + t.Enum.String() + ">" }

// List is a homogeneous list; Member may be any variant including a nested
// List.
type List struct {
	Member FieldType
}

func (List) Kind() TypeKind { return KindList }

func (t List) Equals(other FieldType) bool {
	u, ok := other.(List)
	if !ok {
		return false
	}
	if t.Member == nil || u.Member == nil {
		return t.Member == u.Member
	}
	return t.Member.Equals(u.Member)
}

func (t List) String() string {
	if t.Member == nil {
		return "list<>"
	}
	return fmt.Sprintf("list<%v>", t.Member)
}

// TypeParam is an unresolved generic type parameter, carrying its name. It is
// distinct from an unrecognized wire tag, which fails to load at all.
type TypeParam struct {
	Name string
}

func (TypeParam) Kind() TypeKind { return KindTypeParam }

func (t TypeParam) Equals(other FieldType) bool {
	u, ok := other.(TypeParam)
	return ok && t.Name == u.Name
}

func (t TypeParam) String() string { return t.Name }

// EqualsInList reports whether candidate, transparently unwrapped through any
// number of nested List layers, equals target. The unwrap direction is
// asymmetric: target is a non-list type, candidate may be list-wrapped.
// Passing a List target is a programming error and panics.
func EqualsInList(target, candidate FieldType) bool {
	if _, ok := target.(List); ok {
		panic("idlmodel: EqualsInList target must not be a list type")
	}
	for {
		l, ok := candidate.(List)
		if !ok {
			return target.Equals(candidate)
		}
		candidate = l.Member
	}
}
