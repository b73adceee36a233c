package idlmodel

// Object is an insertion-ordered string-keyed container, the object form of a
// decoded schema document. Order matters: field-declaration order inside an
// entity is observable through Entity.GenericLocal, and plain Go maps would
// lose it at the decoding boundary.
//
// Values are *Object, []any, string, bool, json.Number, or nil.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{vals: map[string]any{}}
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value stored under key and whether the key is present.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Set stores v under key. A repeated key overwrites the value but keeps the
// key's original position (last value wins, first position wins).
func (o *Object) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}
