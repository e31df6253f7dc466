package event

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is one node of a parsed event body: a scalar, a list, or a map.
// Navigation methods return ok-bools so a missing key or index is a
// checkable miss, never a panic.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	obj  map[string]Value
}

// Null is the zero Value.
var Null = Value{}

// String builds a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number builds a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool builds a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List builds a list Value.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map builds a map Value from alternating key, value pairs.
func Map(pairs map[string]Value) Value { return Value{kind: KindMap, obj: pairs} }

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Field returns the value under key when v is a map holding it.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindMap {
		return Null, false
	}
	child, ok := v.obj[key]
	return child, ok
}

// Index returns the i-th item when v is a list and i is in range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Null, false
	}
	return v.list[i], true
}

// Items returns the list items, nil for non-lists.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Len returns the number of items or keys, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.obj)
	default:
		return 0
	}
}

// Text renders a scalar as a string: strings as-is, numbers and bools
// formatted. Lists, maps, and null report not-ok.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString:
		return v.str, v.str != ""
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// ParseValue decodes a JSON document into a Value tree.
func ParseValue(data []byte) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Null, fmt.Errorf("failed to parse event body: %w", err)
	}
	return fromInterface(raw), nil
}

func fromInterface(raw interface{}) Value {
	switch val := raw.(type) {
	case nil:
		return Null
	case string:
		return String(val)
	case float64:
		return Number(val)
	case bool:
		return Bool(val)
	case []interface{}:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = fromInterface(item)
		}
		return Value{kind: KindList, list: items}
	case map[string]interface{}:
		obj := make(map[string]Value, len(val))
		for key, item := range val {
			obj[key] = fromInterface(item)
		}
		return Value{kind: KindMap, obj: obj}
	default:
		return Null
	}
}
