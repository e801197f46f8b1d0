package templates

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Context is the nested key-value data a template is rendered against.
// Values are the usual YAML/JSON shapes: string, bool, number, []any,
// []string and map[string]any.
type Context map[string]any

// Value walks a dot-separated path through nested maps. It fails soft:
// the moment any intermediate segment is missing or nil it returns
// (nil, false) instead of erroring.
func (c Context) Value(path string) (any, bool) {
	var cur any = map[string]any(c)
	for _, seg := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[seg]
			if !ok || v == nil {
				return nil, false
			}
			cur = v
		case Context:
			v, ok := m[seg]
			if !ok || v == nil {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// Fork returns a copy of the context with extra keys layered on top.
// Loop bodies render against forks so that iteration-local keys never
// leak into the parent scope or sibling iterations.
func (c Context) Fork(extra map[string]any) Context {
	next := make(Context, len(c)+len(extra))
	for k, v := range c {
		next[k] = v
	}
	for k, v := range extra {
		next[k] = v
	}
	return next
}

// Truthy reports whether a resolved value counts as true in a condition:
// nil is false, booleans pass through, strings and collections are true
// when non-empty, numbers when non-zero.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case Context:
		return len(t) > 0
	default:
		return v != nil
	}
}

// Stringify renders a value the way it should appear when interpolated.
// Arrays join with commas, maps render as JSON, nil becomes empty.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any, []string:
		items, _ := stringSlice(v)
		return strings.Join(items, ",")
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

// toNumber casts a value the loose way conditions compare: numbers pass
// through, numeric strings parse, everything else is not a number.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// stringSlice flattens an array value to strings. The second return is
// false when the value is not an array at all.
func stringSlice(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, len(t))
		for i, item := range t {
			out[i] = Stringify(item)
		}
		return out, true
	default:
		return nil, false
	}
}

// IterItem is one entry produced for a loop body: the element, its
// position, and the map key when iterating an object.
type IterItem struct {
	Item   any
	Index  int
	Key    string
	HasKey bool
}

// Iterable resolves a path to the entries an each-block expands over.
// Arrays yield item/index pairs, maps yield item/index/key triples in
// sorted key order, and any other value yields nothing so the loop body
// simply never runs.
func Iterable(path string, ctx Context) []IterItem {
	v, ok := ctx.Value(path)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []any:
		out := make([]IterItem, len(t))
		for i, item := range t {
			out[i] = IterItem{Item: item, Index: i}
		}
		return out
	case []string:
		out := make([]IterItem, len(t))
		for i, item := range t {
			out[i] = IterItem{Item: item, Index: i}
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]IterItem, len(keys))
		for i, k := range keys {
			out[i] = IterItem{Item: t[k], Index: i, Key: k, HasKey: true}
		}
		return out
	default:
		return nil
	}
}
