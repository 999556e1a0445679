package recschema

import (
	"context"
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external key used by Into and typed constructors.
// Priority: recschema:"name=..." > json tag name > field name; "-" disables
// the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("recschema"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// Into projects a constructed Record into struct type T by key resolution.
// Declared schema names are matched against resolved struct keys; schema
// fields without a struct counterpart are skipped, which lets a struct expose
// a subset of the record.
func Into[T any](r Record) (T, error) {
	var zero T
	rt := reflect.TypeOf(zero)
	if rt == nil {
		return zero, Issues{{Code: CodeConversion, Message: "Into[T] requires struct T"}}
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return zero, Issues{{Code: CodeConversion, Message: "Into[T] requires struct T"}}
	}
	idxByName := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	rv := reflect.New(rt).Elem()
	for i, f := range r.schema.fields {
		si, ok := idxByName[f.Name]
		if !ok {
			continue
		}
		fv := rv.Field(si)
		val := r.vals[i]
		if val == nil {
			switch fv.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
				fv.Set(reflect.Zero(fv.Type()))
			}
			continue
		}
		vv := reflect.ValueOf(val)
		if vv.Type().AssignableTo(fv.Type()) {
			fv.Set(vv)
		} else if vv.Type().ConvertibleTo(fv.Type()) {
			fv.Set(vv.Convert(fv.Type()))
		} else {
			return zero, &ConversionError{Field: f.Name, Value: val, Target: fv.Type().String()}
		}
	}
	out, ok := rv.Interface().(T)
	if !ok {
		// T was a pointer type; re-wrap.
		p := rv.Addr().Interface()
		out, _ = p.(T)
	}
	return out, nil
}

// Typed couples a Schema with a struct type so constructor calls yield T
// directly.
type Typed[T any] struct {
	schema *Schema
}

// BindSchema wires an already-compiled Schema to struct type T.
func BindSchema[T any](s *Schema) Typed[T] { return Typed[T]{schema: s} }

// Schema returns the underlying compiled schema.
func (t Typed[T]) Schema() *Schema { return t.schema }

// Construct builds a record and projects it into T.
func (t Typed[T]) Construct(ctx context.Context, args Fields) (T, error) {
	rec, err := t.schema.Construct(ctx, args)
	if err != nil {
		var zero T
		return zero, err
	}
	return Into[T](rec)
}
