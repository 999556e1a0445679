// Package recschema compiles ordered field specifications into validated
// record constructors:
//
// - A Schema is an immutable ordered list of FieldSpecs (name, declared type,
//   default expression, optional assertion) compiled once via Compile
// - Construct accepts any subset of fields by name, resolves defaults in
//   declaration order (later defaults observe earlier, already-coerced
//   values), coerces every value to its declared type, and evaluates
//   assertions over the fully assembled value set before returning a Record
// - A stable error model distinguishes SchemaError (bad schema input),
//   ConversionError (value cannot be coerced), and ValidationError (assertion
//   evaluated false), each naming the offending field
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the builder DSL under dsl/, description-file loading under schemafile/,
//   and the CLI under cmd/recschema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()
//	rec, err := s.Construct(ctx, recschema.Fields{"width": 5})
//	p, err := recschema.Into[Point](rec)
package recschema
