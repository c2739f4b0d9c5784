package xcresult

import (
	"encoding/json"
	"iter"
	"strings"
)

// A TypeName is the declared name of a type in an xcresult document,
// such as "ActionTestMetadata" or "Int".
type TypeName string

// A TypeDescriptor is the declared type of an object, as found in the
// object's "_type" field. Supertype, when present, describes the
// parent type, forming a chain that ends at a root type.
type TypeDescriptor struct {
	Name      TypeName        `json:"_name"`
	Supertype *TypeDescriptor `json:"_supertype,omitempty"`
}

// Chain returns an iterator over the names in the descriptor's
// supertype chain, starting with the descriptor's own name.
func (t *TypeDescriptor) Chain() iter.Seq[TypeName] {
	return func(yield func(TypeName) bool) {
		for d := t; d != nil; d = d.Supertype {
			if !yield(d.Name) {
				return
			}
		}
	}
}

// Depth returns the number of descriptors in the chain, including t
// itself. A nil descriptor has depth 0.
func (t *TypeDescriptor) Depth() int {
	n := 0
	for range t.Chain() {
		n++
	}
	return n
}

// String returns the chain as "Leaf < Parent < Root".
func (t *TypeDescriptor) String() string {
	if t == nil {
		return "<nil>"
	}
	var ret strings.Builder
	for name := range t.Chain() {
		if ret.Len() > 0 {
			ret.WriteString(" < ")
		}
		ret.WriteString(string(name))
	}
	return ret.String()
}

// ObjectEnvelope is the minimal parse of an object: just enough to
// decide which concrete shape to decode the rest of it into.
type ObjectEnvelope struct {
	Type *TypeDescriptor `json:"_type"`
}

// Object is the generic shape of objects whose type, and every
// supertype, is unknown to the [Family] doing the decoding. Only the
// declared type is retained.
type Object struct {
	Type TypeDescriptor
}

// Opaque is the shape of objects that a [Family] deliberately leaves
// undecoded. Raw holds the object's complete JSON encoding.
//
// The builtin SortedKeyValueArray and SortedKeyValueArrayPair types
// decode as Opaque.
type Opaque struct {
	Type TypeDescriptor
	Raw  json.RawMessage
}

// Array is the shape of the builtin "Array" type: a list of objects
// of any registered shape.
type Array struct {
	Values []any `xcresult:"_values"`
}
