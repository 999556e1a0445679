package recschema

import (
	"encoding/json"
	"time"
)

// Values is the ordered evaluation context handed to default expressions and
// assertions. During default resolution the view is limited to the fields
// already bound (a default only ever sees earlier, already-coerced values);
// assertions receive an unrestricted view over the fully assembled set. The
// limit is what keeps that asymmetry explicit instead of relying on closure
// scoping.
type Values struct {
	index map[string]int
	vals  []any
	limit int
}

// Has reports whether the named field is visible in this view.
func (v Values) Has(name string) bool {
	i, ok := v.index[name]
	return ok && i < v.limit
}

// Get returns the named field's value when visible.
func (v Values) Get(name string) (any, bool) {
	i, ok := v.index[name]
	if !ok || i >= v.limit {
		return nil, false
	}
	return v.vals[i], true
}

// Typed accessors return the zero value when the field is not visible or
// holds a different type. They keep default/assertion closures terse.

func (v Values) String(name string) string {
	val, _ := v.Get(name)
	s, _ := val.(string)
	return s
}

func (v Values) Bool(name string) bool {
	val, _ := v.Get(name)
	b, _ := val.(bool)
	return b
}

func (v Values) Int(name string) int {
	val, _ := v.Get(name)
	i, _ := val.(int)
	return i
}

func (v Values) Int64(name string) int64 {
	val, _ := v.Get(name)
	i, _ := val.(int64)
	return i
}

func (v Values) Float64(name string) float64 {
	val, _ := v.Get(name)
	f, _ := val.(float64)
	return f
}

func (v Values) Number(name string) json.Number {
	val, _ := v.Get(name)
	n, _ := val.(json.Number)
	return n
}

func (v Values) Time(name string) time.Time {
	val, _ := v.Get(name)
	t, _ := val.(time.Time)
	return t
}
