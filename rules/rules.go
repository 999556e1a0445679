// Package rules provides ready-made assertion predicates for schema fields.
// They compose into a single recschema.AssertFunc, so a field can carry one
// combined check instead of hand-written closures for common comparisons.
package rules

import (
	"context"
	"encoding/json"
	"reflect"

	recschema "github.com/reoring/recschema"
)

// Op defines simple comparison operators for Field(...).
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Field builds a predicate comparing the named field against a literal.
// Numeric operands compare by value across int, uint, float, and json.Number
// representations; strings compare lexically. Eq and Ne fall back to deep
// equality for everything else. An ordering operator on non-comparable
// operands evaluates to false.
func Field(name string, op Op, want any) recschema.AssertFunc {
	return func(ctx context.Context, v recschema.Values) bool {
		got, ok := v.Get(name)
		if !ok {
			return false
		}
		return compare(got, want, op)
	}
}

// All requires every predicate to hold. All() with no arguments holds.
func All(preds ...recschema.AssertFunc) recschema.AssertFunc {
	return func(ctx context.Context, v recschema.Values) bool {
		for _, p := range preds {
			if p == nil {
				continue
			}
			if !p(ctx, v) {
				return false
			}
		}
		return true
	}
}

// Any requires at least one predicate to hold.
func Any(preds ...recschema.AssertFunc) recschema.AssertFunc {
	return func(ctx context.Context, v recschema.Values) bool {
		for _, p := range preds {
			if p != nil && p(ctx, v) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p recschema.AssertFunc) recschema.AssertFunc {
	return func(ctx context.Context, v recschema.Values) bool {
		return !p(ctx, v)
	}
}

// When gates a predicate on a condition. If cond does not hold the rule is
// vacuously satisfied; otherwise then decides.
func When(cond, then recschema.AssertFunc) recschema.AssertFunc {
	return func(ctx context.Context, v recschema.Values) bool {
		if !cond(ctx, v) {
			return true
		}
		return then(ctx, v)
	}
}

// NonZero holds when the named field is not its type's zero value.
func NonZero(name string) recschema.AssertFunc {
	return func(ctx context.Context, v recschema.Values) bool {
		got, ok := v.Get(name)
		if !ok || got == nil {
			return false
		}
		return !reflect.ValueOf(got).IsZero()
	}
}

func compare(got, want any, op Op) bool {
	if gf, ok := asFloat(got); ok {
		if wf, ok := asFloat(want); ok {
			return orderResult(op, gf == wf, gf < wf)
		}
	}
	if gs, ok := got.(string); ok {
		if ws, ok := want.(string); ok {
			return orderResult(op, gs == ws, gs < ws)
		}
	}
	switch op {
	case Eq:
		return reflect.DeepEqual(got, want)
	case Ne:
		return !reflect.DeepEqual(got, want)
	}
	return false
}

func orderResult(op Op, eq, lt bool) bool {
	switch op {
	case Eq:
		return eq
	case Ne:
		return !eq
	case Lt:
		return lt
	case Le:
		return lt || eq
	case Gt:
		return !lt && !eq
	case Ge:
		return !lt
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}
