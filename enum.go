package idlmodel

// EnumItem is a named, numbered enumeration value. Realname, when set,
// overrides the generation-facing identifier for names that are not valid in
// the target language; it never affects the lookup key.
type EnumItem struct {
	Value    int64
	Realname string
	Meta
}

// Enum is a set of named, numbered values. Values need not be contiguous or
// unique.
type Enum struct {
	Items map[string]*EnumItem
	Meta
}

// EnumEntry pairs an item with its name for flattening queries.
type EnumEntry struct {
	Name string
	Item *EnumItem
}

// FirstName returns the name of the item with the minimum value, or "" when
// the enum has no items. Ties resolve to whichever item the scan visits last;
// the winner among equal values is not deterministic.
func (e *Enum) FirstName() string {
	var (
		name string
		min  int64
		seen bool
	)
	for n, it := range e.Items {
		if !seen || it.Value <= min {
			name, min, seen = n, it.Value, true
		}
	}
	return name
}

// First returns the item with the minimum value, or nil when the enum has no
// items. Tie handling matches FirstName.
func (e *Enum) First() *EnumItem {
	var best *EnumItem
	for _, it := range e.Items {
		if best == nil || it.Value <= best.Value {
			best = it
		}
	}
	return best
}

// Flat returns every (name, item) pair exactly once, in no particular order.
func (e *Enum) Flat() []EnumEntry {
	out := make([]EnumEntry, 0, len(e.Items))
	for n, it := range e.Items {
		out = append(out, EnumEntry{Name: n, Item: it})
	}
	return out
}
