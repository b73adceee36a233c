package idlmodel

import "fmt"

// EntityType discriminates the three entity declarations.
type EntityType uint8

const (
	EntityObject EntityType = iota
	EntityRequest
	EntityResponse
)

// entityTypeWire is the numeric wire encoding of EntityType.
var entityTypeWire = map[int64]EntityType{
	0: EntityObject,
	1: EntityRequest,
	2: EntityResponse,
}

// EntityTypeFromWire maps the document integer to an EntityType.
func EntityTypeFromWire(v int64) (EntityType, bool) {
	t, ok := entityTypeWire[v]
	return t, ok
}

// Wire returns the document integer for t.
func (t EntityType) Wire() int64 { return int64(t) }

func (t EntityType) String() string {
	switch t {
	case EntityObject:
		return "object"
	case EntityRequest:
		return "request"
	case EntityResponse:
		return "response"
	}
	return "invalid"
}

// RequestMethod is how a request entity travels: an HTTP verb, a socket send,
// or an MQTT publish.
type RequestMethod uint8

const (
	MethodGet RequestMethod = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodPatch
	MethodSocket
	MethodMQTT
)

var requestMethodWire = map[int64]RequestMethod{
	0: MethodGet,
	1: MethodPost,
	2: MethodPut,
	3: MethodDelete,
	4: MethodPatch,
	5: MethodSocket,
	6: MethodMQTT,
}

// RequestMethodFromWire maps the document integer to a RequestMethod.
func RequestMethodFromWire(v int64) (RequestMethod, bool) {
	m, ok := requestMethodWire[v]
	return m, ok
}

// Wire returns the document integer for m.
func (m RequestMethod) Wire() int64 { return int64(m) }

func (m RequestMethod) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	case MethodPatch:
		return "PATCH"
	case MethodSocket:
		return "SOCKET"
	case MethodMQTT:
		return "MQTT"
	}
	return "invalid"
}

// Entity is an object/request/response declaration: local fields, an optional
// single parent, and the generic parameters this entity introduces or solves.
// Parent is a named reference, never a pointer; it resolves only through the
// Project passed to each query.
type Entity struct {
	Type     EntityType
	Abstract bool
	Parent   ElementPath

	// Request-only surface.
	Response ElementPath
	Path     string // URL template
	Method   RequestMethod

	// FieldsLocal holds the fields declared directly on this entity,
	// excluding inherited ones, in declaration order.
	FieldsLocal *Fields
	// GenericMap maps a generic-parameter name to the concrete bound this
	// entity gives it.
	GenericMap map[string]*Field
	Meta
}

// GenericLocal returns the generic-parameter names this entity mentions
// locally: for every local field typed as a type parameter, the parameter's
// name, in field-declaration order.
func (e *Entity) GenericLocal() []string {
	var out []string
	for _, name := range e.FieldsLocal.Names() {
		if tp, ok := e.FieldsLocal.Get(name).Type.(TypeParam); ok {
			out = append(out, tp.Name)
		}
	}
	return out
}

// GenericUnsolved returns the generic-parameter names still unbound at this
// entity: the parent's unsolved set (ancestor-first), then the local ones,
// minus every name this entity's GenericMap solves. Duplicates are kept, so a
// name appears once per level that mentions it; deduplicate if you need a set.
// A nil project yields an empty result. A cyclic parent chain returns
// ErrCyclicInheritance.
func (e *Entity) GenericUnsolved(proj *Project) ([]string, error) {
	if proj == nil {
		return nil, nil
	}
	return e.genericUnsolved(proj, map[*Entity]bool{})
}

func (e *Entity) genericUnsolved(proj *Project, seen map[*Entity]bool) ([]string, error) {
	if seen[e] {
		return nil, fmt.Errorf("%w via parent %s", ErrCyclicInheritance, e.Parent)
	}
	seen[e] = true

	var names []string
	if par := e.Parent.EntityOf(proj); par != nil {
		up, err := par.genericUnsolved(proj, seen)
		if err != nil {
			return nil, err
		}
		names = append(names, up...)
	}
	names = append(names, e.GenericLocal()...)

	if len(e.GenericMap) == 0 {
		return names, nil
	}
	kept := names[:0]
	for _, n := range names {
		if _, solved := e.GenericMap[n]; !solved {
			kept = append(kept, n)
		}
	}
	return kept, nil
}

// FromAncestorToMe walks the inheritance chain root-first and calls visit on
// each entity, ending with e itself. An unresolvable parent path truncates the
// chain at the nearest resolvable entity. A cyclic parent chain returns
// ErrCyclicInheritance without invoking visit.
func (e *Entity) FromAncestorToMe(proj *Project, visit func(*Entity)) error {
	chain, err := e.ancestorChain(proj)
	if err != nil {
		return err
	}
	for _, a := range chain {
		visit(a)
	}
	return nil
}

// ancestorChain resolves the chain root-first, e last.
func (e *Entity) ancestorChain(proj *Project) ([]*Entity, error) {
	var chain []*Entity
	seen := map[*Entity]bool{}
	for cur := e; cur != nil; cur = cur.Parent.EntityOf(proj) {
		if seen[cur] {
			return nil, fmt.Errorf("%w via parent %s", ErrCyclicInheritance, cur.Parent)
		}
		seen[cur] = true
		chain = append(chain, cur)
	}
	// reverse into root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
