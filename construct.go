package recschema

import "context"

// Fields is the named-argument form accepted by Construct: any subset of the
// schema's fields, in any order. There is no positional form.
type Fields map[string]any

// Record is an immutable aggregate of one coerced value per FieldSpec, held
// in declaration order. The engine keeps no reference to instances after
// construction; ownership passes to the caller.
type Record struct {
	schema *Schema
	vals   []any
}

// Schema returns the schema this record was constructed from.
func (r Record) Schema() *Schema { return r.schema }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.vals) }

// Get returns the named field's coerced value.
func (r Record) Get(name string) (any, bool) {
	i, ok := r.schema.Lookup(name)
	if !ok {
		return nil, false
	}
	return r.vals[i], true
}

// At returns the i-th field's value in declaration order.
func (r Record) At(i int) any { return r.vals[i] }

// Values exposes the record through the Values view with full visibility.
func (r Record) Values() Values {
	return Values{index: r.schema.index, vals: r.vals, limit: len(r.vals)}
}

// Fields copies the record back into named-argument form, suitable for
// feeding into another Construct call.
func (r Record) Fields() Fields {
	out := make(Fields, len(r.vals))
	for i, f := range r.schema.fields {
		out[f.Name] = r.vals[i]
	}
	return out
}

// Construct builds a validated record instance. Any field may be omitted, in
// which case its default expression is evaluated; supplying an unknown field
// name fails with *UnknownFieldError.
//
// Fields are walked in declaration order: each is bound (caller value or
// default) and immediately coerced to its declared type, so a later default
// observes earlier coerced values and a coercion failure stops the walk
// before any later default runs. Assertions run strictly afterwards, in
// declaration order over the full coerced set, short-circuiting on the first
// predicate that evaluates false. A failed call discards all work; no
// half-built record is observable.
func (s *Schema) Construct(ctx context.Context, args Fields) (Record, error) {
	for name := range args {
		if _, ok := s.index[name]; !ok {
			return Record{}, &UnknownFieldError{Field: name}
		}
	}

	vals := make([]any, len(s.fields))
	for i, f := range s.fields {
		prior := Values{index: s.index, vals: vals, limit: i}
		v, supplied := args[f.Name]
		if !supplied {
			dv, err := f.Default(ctx, prior)
			if err != nil {
				return Record{}, &DefaultError{Field: f.Name, Cause: err}
			}
			v = dv
		}
		cv, err := f.Type.Convert(v)
		if err != nil {
			return Record{}, &ConversionError{Field: f.Name, Value: v, Target: f.Type.Name(), Cause: err}
		}
		vals[i] = cv
	}

	all := Values{index: s.index, vals: vals, limit: len(vals)}
	for _, f := range s.fields {
		if f.Assert == nil {
			continue
		}
		if !f.Assert(ctx, all) {
			return Record{}, &ValidationError{Field: f.Name, Predicate: f.Predicate}
		}
	}

	return Record{schema: s, vals: vals}, nil
}

// MustConstruct is like Construct but panics on error.
func (s *Schema) MustConstruct(ctx context.Context, args Fields) Record {
	r, err := s.Construct(ctx, args)
	if err != nil {
		panic(err)
	}
	return r
}
