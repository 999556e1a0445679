package recschema

import "context"

// DefaultFunc produces a field's value when the caller omits it. It is
// re-evaluated on every constructor call; prior exposes the already-bound,
// already-coerced values of earlier-declared fields only.
type DefaultFunc func(ctx context.Context, prior Values) (any, error)

// AssertFunc is a boolean predicate over the fully assembled, coerced value
// set. It may reference any field, not just earlier ones.
type AssertFunc func(ctx context.Context, v Values) bool

// RawField is one entry of the raw schema input consumed by Compile. Name,
// Type, and Default are mandatory; there is no required-field notation in the
// grammar (the documented workaround is a default that deliberately fails its
// own assertion). Predicate carries the human-readable assertion text used in
// ValidationError messages.
type RawField struct {
	Name      string
	Type      Type
	Default   DefaultFunc
	Assert    AssertFunc
	Predicate string
}

// FieldSpec is the structured form of one declared field. Specs are totally
// ordered within a Schema; that order drives record layout, default
// resolution, and assertion evaluation.
type FieldSpec struct {
	Name      string
	Type      Type
	Default   DefaultFunc
	Assert    AssertFunc // nil means always valid
	Predicate string
}

// Lit wraps a literal into a DefaultFunc. The literal is still coerced to the
// field's declared type on every call, so Lit("10") on an int field fails at
// construction time, not at schema definition time.
func Lit(v any) DefaultFunc {
	return func(ctx context.Context, prior Values) (any, error) { return v, nil }
}
