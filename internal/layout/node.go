// Package layout provides a tolerant, read-only view over captured layout documents.
//
// Layout documents are exported by the in-app capture utility and have no schema
// guarantees: any field may be missing, null, or of an unexpected type. Node wraps a
// decoded JSON value and answers every lookup with a usable zero value instead of
// failing, so renderers can be written as total functions.
package layout

import (
	"strconv"
	"strings"
)

// number is satisfied by the decoder's literal-preserving number type.
type number interface {
	String() string
	Float64() (float64, error)
}

// Node is one value inside a layout document. The zero Node represents an absent value.
type Node struct {
	v any
}

// Wrap exposes an already decoded value (map[string]any, []any, string, number, bool) as a Node.
func Wrap(v any) Node {
	return Node{v: v}
}

// IsZero reports whether the value is absent or JSON null.
func (n Node) IsZero() bool {
	return n.v == nil
}

// Get returns the member key of an object, or an absent Node for anything else.
func (n Node) Get(key string) Node {
	m, ok := n.v.(map[string]any)
	if !ok {
		return Node{}
	}
	return Node{v: m[key]}
}

// Path walks nested objects.
func (n Node) Path(keys ...string) Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
	}
	return cur
}

// IsObject reports whether the value is a JSON object.
func (n Node) IsObject() bool {
	_, ok := n.v.(map[string]any)
	return ok
}

// Items returns the elements of an array; any other value yields nil.
func (n Node) Items() []Node {
	arr, ok := n.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, len(arr))
	for i, v := range arr {
		out[i] = Node{v: v}
	}
	return out
}

// Text returns a string value, or "" when the value is not a string.
func (n Node) Text() string {
	s, _ := n.v.(string)
	return s
}

// Scalar renders strings, numbers and booleans the way they appear in CSS declarations.
// Numbers keep their literal spelling from the source document.
func (n Node) Scalar() (string, bool) {
	switch v := n.v.(type) {
	case string:
		return v, true
	case number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Float interprets numbers and numeric strings.
func (n Node) Float() (float64, bool) {
	switch v := n.v.(type) {
	case number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Present reports whether a measurement is worth emitting: absent, null, empty,
// zero and false values are not.
func (n Node) Present() bool {
	switch v := n.v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	if f, ok := n.Float(); ok {
		return f != 0
	}
	return true
}

// Strings returns the string members of an array. A plain string is split on
// whitespace, matching how class attributes are written.
func (n Node) Strings() []string {
	switch v := n.v.(type) {
	case string:
		return strings.Fields(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Contains reports whether Strings includes want.
func (n Node) Contains(want string) bool {
	for _, s := range n.Strings() {
		if s == want {
			return true
		}
	}
	return false
}
