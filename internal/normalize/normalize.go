// Package normalize reads values out of loosely shaped JSON without ever
// failing on missing or mistyped nodes.
package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/Jeffail/gabs/v2"
)

// Parse decodes a JSON document keeping numbers as json.Number so large ids survive.
func Parse(data []byte) (*gabs.Container, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return gabs.ParseJSONDecoder(dec)
}

// Value is the result of a path lookup: either present with a non-null raw
// value, or absent.
type Value struct {
	c  *gabs.Container
	ok bool
}

// Lookup walks path through nested objects. The result is absent when any
// intermediate node is missing, null, or not an object, or when the final
// value is null.
func Lookup(c *gabs.Container, path ...string) Value {
	if c == nil {
		return Value{}
	}
	node := c.Data()
	for _, key := range path {
		m, ok := node.(map[string]interface{})
		if !ok {
			return Value{}
		}
		if node, ok = m[key]; !ok {
			return Value{}
		}
	}
	if node == nil {
		return Value{}
	}
	return Value{c: gabs.Wrap(node), ok: true}
}

// Get returns the plain value at path, or def.
func Get(c *gabs.Container, def any, path ...string) any {
	v := Lookup(c, path...)
	if !v.ok {
		return def
	}
	return v.Raw()
}

func (v Value) Present() bool {
	return v.ok
}

// Lookup continues a lookup from v.
func (v Value) Lookup(path ...string) Value {
	if !v.ok {
		return Value{}
	}
	return Lookup(v.c, path...)
}

// Raw returns the value with json.Number converted to int64 or float64.
func (v Value) Raw() any {
	if !v.ok {
		return nil
	}
	return plain(v.c.Data())
}

func (v Value) String(def string) string {
	if s := v.StringPtr(); s != nil {
		return *s
	}
	return def
}

// StringPtr returns the value as text, or nil when absent or not scalar.
// Numbers are rendered in their decimal form.
func (v Value) StringPtr() *string {
	if !v.ok {
		return nil
	}
	switch t := v.c.Data().(type) {
	case string:
		return &t
	case json.Number:
		s := t.String()
		return &s
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(t)
		return &s
	case int64:
		s := strconv.FormatInt(t, 10)
		return &s
	}
	return nil
}

func (v Value) Int(def int64) int64 {
	if n := v.IntPtr(); n != nil {
		return *n
	}
	return def
}

// IntPtr returns the value as an integer, or nil when absent or not numeric.
func (v Value) IntPtr() *int64 {
	if !v.ok {
		return nil
	}
	var n int64
	switch t := v.c.Data().(type) {
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return nil
			}
			i = int64(f)
		}
		n = i
	case float64:
		n = int64(t)
	case int:
		n = int64(t)
	case int64:
		n = t
	case string:
		i, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil
		}
		n = i
	default:
		return nil
	}
	return &n
}

func (v Value) Bool(def bool) bool {
	if b := v.BoolPtr(); b != nil {
		return *b
	}
	return def
}

func (v Value) BoolPtr() *bool {
	if !v.ok {
		return nil
	}
	b, ok := v.c.Data().(bool)
	if !ok {
		return nil
	}
	return &b
}

// Time reads either unix seconds or an RFC 3339 string.
func (v Value) Time() *time.Time {
	if !v.ok {
		return nil
	}
	if s, ok := v.c.Data().(string); ok {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil
		}
		t = t.UTC()
		return &t
	}
	n := v.IntPtr()
	if n == nil {
		return nil
	}
	t := time.Unix(*n, 0).UTC()
	return &t
}

// Items returns the elements of an array, skipping nulls. Anything else yields nil.
func (v Value) Items() []Value {
	if !v.ok {
		return nil
	}
	if _, isArray := v.c.Data().([]interface{}); !isArray {
		return nil
	}
	children := v.c.Children()
	out := make([]Value, 0, len(children))
	for _, child := range children {
		if child == nil || child.Data() == nil {
			continue
		}
		out = append(out, Value{c: child, ok: true})
	}
	return out
}

// Map returns an object as plain Go values, or nil.
func (v Value) Map() map[string]any {
	if !v.ok {
		return nil
	}
	m, ok := plain(v.c.Data()).(map[string]any)
	if !ok {
		return nil
	}
	return m
}

func plain(node any) any {
	switch t := node.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return t.String()
	case map[string]interface{}:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = plain(child)
		}
		return out
	case []interface{}:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = plain(child)
		}
		return out
	}
	return node
}
