package recschema_test

import (
	"context"
	"errors"
	"testing"

	recschema "github.com/reoring/recschema"
)

func sizeSchema(t *testing.T) *recschema.Schema {
	t.Helper()
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "width", Type: recschema.Int(), Default: recschema.Lit(10)},
		{Name: "height", Type: recschema.Int(), Default: func(ctx context.Context, prior recschema.Values) (any, error) {
			return prior.Int("width") * 2, nil
		}},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return s
}

func TestConstruct_CrossFieldDefault(t *testing.T) {
	ctx := context.Background()
	s := sizeSchema(t)

	// width supplied, height derived from the coerced width
	rec, err := s.Construct(ctx, recschema.Fields{"width": 5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got, _ := rec.Get("height"); got != 10 {
		t.Fatalf("expected height=10, got %v", got)
	}

	// nothing supplied
	rec, err = s.Construct(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if w, _ := rec.Get("width"); w != 10 {
		t.Fatalf("expected width=10, got %v", w)
	}
	if h, _ := rec.Get("height"); h != 20 {
		t.Fatalf("expected height=20, got %v", h)
	}
}

func TestConstruct_OrderPreservation(t *testing.T) {
	ctx := context.Background()
	s := sizeSchema(t)
	want := []string{"width", "height"}
	names := s.FieldNames()
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("field order changed: %v", names)
		}
	}
	// order holds regardless of which fields the caller supplies
	for _, args := range []recschema.Fields{nil, {"width": 1}, {"height": 2}, {"width": 1, "height": 2}} {
		rec, err := s.Construct(ctx, args)
		if err != nil {
			t.Fatalf("unexpected err for %v: %v", args, err)
		}
		if rec.Len() != 2 {
			t.Fatalf("expected 2 fields, got %d", rec.Len())
		}
		if _, ok := rec.Get("width"); !ok {
			t.Fatalf("width missing from record")
		}
	}
}

func TestConstruct_DefaultThenCoerceIdempotence(t *testing.T) {
	ctx := context.Background()
	s := sizeSchema(t)
	first, err := s.Construct(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := s.Construct(ctx, first.Fields())
	if err != nil {
		t.Fatalf("round-trip construct failed: %v", err)
	}
	for i := 0; i < first.Len(); i++ {
		if first.At(i) != second.At(i) {
			t.Fatalf("round-trip changed field %d: %v vs %v", i, first.At(i), second.At(i))
		}
	}
}

func TestConstruct_CoercionFailureStopsLaterDefaults(t *testing.T) {
	ctx := context.Background()
	laterRan := false
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "a", Type: recschema.Int(), Default: recschema.Lit(1)},
		{Name: "b", Type: recschema.Int(), Default: func(ctx context.Context, prior recschema.Values) (any, error) {
			laterRan = true
			return 0, nil
		}},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	_, err = s.Construct(ctx, recschema.Fields{"a": "abc"})
	var ce *recschema.ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if ce.Field != "a" || ce.Target != "int" || ce.Value != "abc" {
		t.Fatalf("error does not identify the failure: %+v", ce)
	}
	if laterRan {
		t.Fatalf("later default was evaluated after a coercion failure")
	}
}

func TestConstruct_LaterDefaultSeesCoercedValue(t *testing.T) {
	ctx := context.Background()
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "a", Type: recschema.Int(), Default: recschema.Lit(1)},
		{Name: "b", Type: recschema.Int(), Default: func(ctx context.Context, prior recschema.Values) (any, error) {
			// prior must hold int, not the raw float64 the caller supplied
			return prior.Int("a") + 1, nil
		}},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	rec, err := s.Construct(ctx, recschema.Fields{"a": float64(7)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b, _ := rec.Get("b"); b != 8 {
		t.Fatalf("expected b=8 derived from coerced a, got %v", b)
	}
}

func TestConstruct_DefaultsSeeOnlyEarlierFields(t *testing.T) {
	ctx := context.Background()
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "b", Type: recschema.Int(), Default: func(ctx context.Context, prior recschema.Values) (any, error) {
			if prior.Has("c") {
				return 100, nil
			}
			return 7, nil
		}},
		{Name: "c", Type: recschema.Int(), Default: recschema.Lit(5)},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	rec, err := s.Construct(ctx, recschema.Fields{"c": 9})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b, _ := rec.Get("b"); b != 7 {
		t.Fatalf("default for b observed a later field: b=%v", b)
	}
}

func TestConstruct_ValidationShortCircuit(t *testing.T) {
	ctx := context.Background()
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "a", Type: recschema.Int(), Default: recschema.Lit(1),
			Assert:    func(ctx context.Context, v recschema.Values) bool { return false },
			Predicate: "a > 100"},
		{Name: "b", Type: recschema.Int(), Default: recschema.Lit(2),
			Assert:    func(ctx context.Context, v recschema.Values) bool { return false },
			Predicate: "b > 100"},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, err = s.Construct(ctx, nil)
	var ve *recschema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "a" || ve.Predicate != "a > 100" {
		t.Fatalf("expected first failing assertion to win, got %+v", ve)
	}
}

func TestConstruct_AssertionSeesAllFields(t *testing.T) {
	ctx := context.Background()
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "lo", Type: recschema.Int(), Default: recschema.Lit(1),
			Assert: func(ctx context.Context, v recschema.Values) bool {
				// references a later-declared field
				return v.Int("lo") < v.Int("hi")
			},
			Predicate: "lo < hi"},
		{Name: "hi", Type: recschema.Int(), Default: recschema.Lit(10)},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if _, err := s.Construct(ctx, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = s.Construct(ctx, recschema.Fields{"hi": 0})
	var ve *recschema.ValidationError
	if !errors.As(err, &ve) || ve.Field != "lo" {
		t.Fatalf("expected ValidationError on lo, got %v", err)
	}
}

func TestConstruct_DeliberateInvalidDefault(t *testing.T) {
	ctx := context.Background()
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "label", Type: recschema.String(), Default: recschema.Lit(""),
			Assert:    func(ctx context.Context, v recschema.Values) bool { return v.String("label") != "" },
			Predicate: `label != ""`},
	})
	if err != nil {
		t.Fatalf("schema with self-failing default must compile: %v", err)
	}

	_, err = s.Construct(ctx, nil)
	var ve *recschema.ValidationError
	if !errors.As(err, &ve) || ve.Field != "label" {
		t.Fatalf("expected ValidationError on label, got %v", err)
	}

	rec, err := s.Construct(ctx, recschema.Fields{"label": "x"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got, _ := rec.Get("label"); got != "x" {
		t.Fatalf("expected label=x, got %v", got)
	}
}

func TestConstruct_UnknownField(t *testing.T) {
	ctx := context.Background()
	s := sizeSchema(t)
	_, err := s.Construct(ctx, recschema.Fields{"depth": 1})
	var ue *recschema.UnknownFieldError
	if !errors.As(err, &ue) || ue.Field != "depth" {
		t.Fatalf("expected UnknownFieldError for depth, got %v", err)
	}
}

func TestConstruct_DefaultErrorPropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s, err := recschema.Compile("", []recschema.RawField{
		{Name: "a", Type: recschema.Int(), Default: func(ctx context.Context, prior recschema.Values) (any, error) {
			return nil, boom
		}},
	})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, err = s.Construct(ctx, nil)
	var de *recschema.DefaultError
	if !errors.As(err, &de) || de.Field != "a" || !errors.Is(err, boom) {
		t.Fatalf("expected DefaultError wrapping cause, got %v", err)
	}
	// supplying the field skips its default entirely
	if _, err := s.Construct(ctx, recschema.Fields{"a": 3}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestConstruct_SharedSchemaConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	s := sizeSchema(t)
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func(w int) {
			rec, err := s.Construct(ctx, recschema.Fields{"width": w})
			if err == nil {
				if h, _ := rec.Get("height"); h != w*2 {
					err = errors.New("wrong derived height")
				}
			}
			done <- err
		}(i + 1)
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent construct failed: %v", err)
		}
	}
}
