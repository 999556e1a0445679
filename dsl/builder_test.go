package dsl_test

import (
	"context"
	"errors"
	"testing"

	recschema "github.com/reoring/recschema"
	"github.com/reoring/recschema/dsl"
)

func TestBuilder_DefaultsAndAssertions(t *testing.T) {
	ctx := context.Background()
	s := dsl.Record().
		Field("width", recschema.Int()).Default(10).
		Field("height", recschema.Int()).DefaultFn(func(ctx context.Context, prior recschema.Values) (any, error) {
		return prior.Int("width") * 2, nil
	}).
		Field("label", recschema.String()).Default("").Assert(`label != ""`, func(ctx context.Context, v recschema.Values) bool {
		return v.String("label") != ""
	}).
		MustBuild()

	rec, err := s.Construct(ctx, recschema.Fields{"width": 5, "label": "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if h, _ := rec.Get("height"); h != 10 {
		t.Fatalf("expected derived height=10, got %v", h)
	}

	_, err = s.Construct(ctx, recschema.Fields{"width": 5})
	var ve *recschema.ValidationError
	if !errors.As(err, &ve) || ve.Field != "label" || ve.Predicate != `label != ""` {
		t.Fatalf("expected label assertion failure, got %v", err)
	}
}

func TestBuilder_OrderIsAppendOrder(t *testing.T) {
	s := dsl.Record().
		Field("z", recschema.Int()).Default(0).
		Field("a", recschema.Int()).Default(0).
		MustBuild()
	names := s.FieldNames()
	if names[0] != "z" || names[1] != "a" {
		t.Fatalf("builder reordered fields: %v", names)
	}
}

func TestBuilder_MissingDefaultIsMalformed(t *testing.T) {
	_, err := dsl.Record().
		Field("a", recschema.Int()). // no default attached
		Build()
	var se *recschema.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError for missing default, got %v", err)
	}
}

func TestBuilder_Base(t *testing.T) {
	s := dsl.Record().Base("shape").
		Field("a", recschema.Int()).Default(1).
		MustBuild()
	if s.Base() != "shape" {
		t.Fatalf("base lost: %q", s.Base())
	}
}

func TestBind_TypedConstruction(t *testing.T) {
	type box struct {
		W int `recschema:"name=w"`
		H int `recschema:"name=h"`
	}
	typed := dsl.MustBind[box](dsl.Record().
		Field("w", recschema.Int()).Default(1).
		Field("h", recschema.Int()).DefaultFn(func(ctx context.Context, prior recschema.Values) (any, error) {
		return prior.Int("w") + 1, nil
	}))
	out, err := typed.Construct(context.Background(), recschema.Fields{"w": 4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.W != 4 || out.H != 5 {
		t.Fatalf("unexpected typed value: %+v", out)
	}
}
