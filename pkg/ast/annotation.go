package ast

// Annotations is an ordered mapping from textual keys to structured values
// (spec §3: "doc, visibility, purity, deprecation tags, etc."). Ordering is
// insertion order, which matters for deterministic re-export but not for
// hashing (annotation contribution to the hash is governed per-key by
// VolatileKeys, not by iteration order).
type Annotations struct {
	keys   []string
	values map[string]any
}

// VolatileKeys are annotation keys excluded from the content hash
// (spec §4.C): doc comments, authorship, and timestamps are metadata about
// a definition's history, not its meaning.
var VolatileKeys = map[string]bool{
	"doc":       true,
	"author":    true,
	"timestamp": true,
	// "surface_style" is the parser's preferred-syntax hint (spec §6,
	// "External Interfaces"): preserved across edits but never hashed.
	"surface_style": true,
}

// NewAnnotations returns an empty Annotations value.
func NewAnnotations() Annotations {
	return Annotations{}
}

// Set returns a copy of a with key bound to value. Annotations are
// immutable like every other part of a Node.
func (a Annotations) Set(key string, value any) Annotations {
	out := Annotations{
		keys:   make([]string, len(a.keys), len(a.keys)+1),
		values: make(map[string]any, len(a.values)+1),
	}
	copy(out.keys, a.keys)
	for k, v := range a.values {
		out.values[k] = v
	}
	if _, exists := out.values[key]; !exists {
		out.keys = append(out.keys, key)
	}
	out.values[key] = value
	return out
}

// Get returns the value bound to key, if any.
func (a Annotations) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns annotation keys in insertion order.
func (a Annotations) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// HashedKeys returns, in insertion order, the keys that are included in
// the content hash (i.e. not in VolatileKeys).
func (a Annotations) HashedKeys() []string {
	var out []string
	for _, k := range a.keys {
		if !VolatileKeys[k] {
			out = append(out, k)
		}
	}
	return out
}
