// Package raw models untyped configuration values before they are checked
// against a metamodel. A value is one of: int, bool, string, or *Map.
// Mappings preserve document order so that diagnostics come out in the same
// order the user wrote the keys.
package raw

import (
	"fmt"
	"reflect"
	"strings"
)

// Map is a string-keyed mapping that remembers insertion order.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap creates an empty ordered mapping.
func NewMap() *Map {
	return &Map{vals: make(map[string]any)}
}

// Set stores a value under key, appending the key on first insertion.
// Re-setting an existing key keeps its original position.
func (m *Map) Set(key string, v any) *Map {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not modify it.
func (m *Map) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// String renders the mapping in insertion order, for diagnostics.
func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, m.vals[k])
	}
	sb.WriteString("}")
	return sb.String()
}

// Equal reports deep structural equality of two raw values. Mappings compare
// key sets and values (order is not significant for equality, only for
// iteration); everything else compares with reflect.DeepEqual, so adapters
// returning non-comparable values such as slices are safe.
func Equal(a, b any) bool {
	am, aok := a.(*Map)
	bm, bok := b.(*Map)
	if aok != bok {
		return false
	}
	if !aok {
		return reflect.DeepEqual(a, b)
	}
	if am.Len() != bm.Len() {
		return false
	}
	for _, k := range am.keys {
		bv, ok := bm.Get(k)
		if !ok || !Equal(am.vals[k], bv) {
			return false
		}
	}
	return true
}

// TypeName returns the metamodel-facing name of a raw value's type, used in
// type-mismatch diagnostics.
func TypeName(v any) string {
	switch v.(type) {
	case int:
		return "int"
	case bool:
		return "bool"
	case string:
		return "str"
	case *Map:
		return "dict"
	case []any:
		return "list"
	case nil:
		return "none"
	case float64:
		return "float"
	default:
		return "unknown"
	}
}
