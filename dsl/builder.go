package dsl

import (
	recschema "github.com/reoring/recschema"
)

type recordBuilder struct {
	base string
	raw  []recschema.RawField
}

type fieldStep struct {
	b   *recordBuilder
	idx int
}

// Record creates a new record schema builder.
func Record() *recordBuilder {
	return &recordBuilder{}
}

// Base names the base type the generated record nominally extends.
func (b *recordBuilder) Base(name string) *recordBuilder {
	b.base = name
	return b
}

// Field appends a field with its declared type and returns a step for
// attaching the default and an optional assertion. Declaration order is
// append order and is preserved through Build.
func (b *recordBuilder) Field(name string, t recschema.Type) *fieldStep {
	b.raw = append(b.raw, recschema.RawField{Name: name, Type: t})
	return &fieldStep{b: b, idx: len(b.raw) - 1}
}

// Build compiles the accumulated fields into a Schema.
func (b *recordBuilder) Build() (*recschema.Schema, error) {
	return recschema.Compile(b.base, b.raw)
}

// MustBuild is like Build but panics on error.
func (b *recordBuilder) MustBuild() *recschema.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Default sets a literal default for the current field. The literal is
// coerced on every constructor call, never pre-computed.
func (f *fieldStep) Default(v any) *fieldStep {
	f.b.raw[f.idx].Default = recschema.Lit(v)
	return f
}

// DefaultFn sets a default expression for the current field. The closure is
// re-evaluated per call and sees earlier fields' already-coerced values
// through prior.
func (f *fieldStep) DefaultFn(fn recschema.DefaultFunc) *fieldStep {
	f.b.raw[f.idx].Default = fn
	return f
}

// Assert attaches a boolean predicate over the fully assembled value set to
// the current field, together with its human-readable text for error
// reporting. A literal default that fails its own assertion is legal here;
// it is the idiom for forcing callers to supply the field explicitly.
func (f *fieldStep) Assert(predicate string, fn recschema.AssertFunc) *fieldStep {
	f.b.raw[f.idx].Assert = fn
	f.b.raw[f.idx].Predicate = predicate
	return f
}

func (f *fieldStep) Field(name string, t recschema.Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) Base(name string) *recordBuilder                { return f.b.Base(name) }
func (f *fieldStep) Build() (*recschema.Schema, error)              { return f.b.Build() }
func (f *fieldStep) MustBuild() *recschema.Schema                   { return f.b.MustBuild() }

// builder is satisfied by both *recordBuilder and *fieldStep so the fluent
// chain can be passed to Bind at any point.
type builder interface {
	Build() (*recschema.Schema, error)
}

// Bind builds the schema and couples it to struct type T (free function for
// Go version compatibility).
func Bind[T any](b builder) (recschema.Typed[T], error) {
	s, err := b.Build()
	if err != nil {
		var zero recschema.Typed[T]
		return zero, err
	}
	return recschema.BindSchema[T](s), nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](b builder) recschema.Typed[T] {
	t, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return t
}
