package utility

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Parameters is an immutable set of named consideration tunables. Values are
// numbers, bools or strings. The zero value is an empty set.
type Parameters struct {
	m map[string]any
}

// NewParameters copies m.
func NewParameters(m map[string]any) Parameters {
	if len(m) == 0 {
		return Parameters{}
	}
	return Parameters{m: maps.Clone(m)}
}

// ParameterError is the panic value for a missing or mistyped parameter.
type ParameterError struct {
	Key  string
	Want string
	Got  any
}

func (e *ParameterError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("parameter %q: missing, want %s", e.Key, e.Want)
	}
	return fmt.Sprintf("parameter %q: got %T, want %s", e.Key, e.Got, e.Want)
}

func (p Parameters) lookup(key, want string) any {
	v, ok := p.m[key]
	if !ok || v == nil {
		panic(&ParameterError{Key: key, Want: want})
	}
	return v
}

// Float returns a numeric parameter. Integers widen.
func (p Parameters) Float(key string) float64 {
	switch v := p.lookup(key, "number").(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		panic(&ParameterError{Key: key, Want: "number", Got: v})
	}
}

// Int returns an integral parameter. Floats with no fractional part are
// accepted since JSON decodes every number as float64.
func (p Parameters) Int(key string) int {
	switch v := p.lookup(key, "integer").(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v)
		}
		panic(&ParameterError{Key: key, Want: "integer", Got: v})
	default:
		panic(&ParameterError{Key: key, Want: "integer", Got: v})
	}
}

// Bool returns a boolean parameter.
func (p Parameters) Bool(key string) bool {
	v, ok := p.lookup(key, "bool").(bool)
	if !ok {
		panic(&ParameterError{Key: key, Want: "bool", Got: p.m[key]})
	}
	return v
}

// String returns a string parameter.
func (p Parameters) String(key string) string {
	v, ok := p.lookup(key, "string").(string)
	if !ok {
		panic(&ParameterError{Key: key, Want: "string", Got: p.m[key]})
	}
	return v
}

// FloatOr returns the parameter or def when it is absent.
func (p Parameters) FloatOr(key string, def float64) float64 {
	if !p.Has(key) {
		return def
	}
	return p.Float(key)
}

// IntOr returns the parameter or def when it is absent.
func (p Parameters) IntOr(key string, def int) int {
	if !p.Has(key) {
		return def
	}
	return p.Int(key)
}

// Has reports whether key is set.
func (p Parameters) Has(key string) bool {
	_, ok := p.m[key]
	return ok
}

// Len is the number of parameters.
func (p Parameters) Len() int { return len(p.m) }

// Keys returns the parameter names in sorted order.
func (p Parameters) Keys() []string { return slices.Sorted(maps.Keys(p.m)) }

// With returns a copy with key set to v.
func (p Parameters) With(key string, v any) Parameters {
	m := make(map[string]any, len(p.m)+1)
	maps.Copy(m, p.m)
	m[key] = v
	return Parameters{m: m}
}

// Map returns a copy of the underlying values.
func (p Parameters) Map() map[string]any { return maps.Clone(p.m) }
