// Package dsl provides the fluent builder for record schemas.
//
//	s := dsl.Record().
//		Field("width", recschema.Int()).Default(10).
//		Field("height", recschema.Int()).DefaultFn(func(ctx context.Context, prior recschema.Values) (any, error) {
//			return prior.Int("width") * 2, nil
//		}).
//		MustBuild()
package dsl
