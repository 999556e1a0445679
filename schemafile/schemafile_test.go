package schemafile_test

import (
	"context"
	"errors"
	"testing"

	recschema "github.com/reoring/recschema"
	"github.com/reoring/recschema/schemafile"
)

const sizeYAML = `
record: Size
base: shape
fields:
  - name: width
    type: int
    default: 10
  - name: height
    type: int
    default_expr: width * 2
  - name: label
    type: string
    default: ""
    assert: label != ""
`

func TestLoad_YAML(t *testing.T) {
	rec, err := schemafile.Load([]byte(sizeYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec.Name != "Size" || rec.Base != "shape" {
		t.Fatalf("header lost: %+v", rec)
	}
	if len(rec.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(rec.Fields))
	}
	if rec.Fields[0].Name != "width" || !rec.Fields[0].HasDefault {
		t.Fatalf("width not loaded: %+v", rec.Fields[0])
	}
	if rec.Fields[1].DefaultExpr != "width * 2" {
		t.Fatalf("default_expr lost: %+v", rec.Fields[1])
	}
	if rec.Fields[2].Assert != `label != ""` {
		t.Fatalf("assert lost: %+v", rec.Fields[2])
	}
}

func TestLoad_JSON(t *testing.T) {
	data := []byte(`{
		"record": "Price",
		"fields": [
			{"name": "amount", "type": "number", "default": 0},
			{"name": "currency", "type": "string", "default": "EUR"}
		]
	}`)
	rec, err := schemafile.Load(data)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if rec.Name != "Price" || len(rec.Fields) != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]string{
		"no fields":     "record: X\n",
		"unknown type":  "record: X\nfields:\n  - name: a\n    type: decimal\n    default: 1\n",
		"no default":    "record: X\nfields:\n  - name: a\n    type: int\n",
		"both defaults": "record: X\nfields:\n  - name: a\n    type: int\n    default: 1\n    default_expr: b + 1\n",
		"no name":       "record: X\nfields:\n  - type: int\n    default: 1\n",
	}
	for name, doc := range cases {
		if _, err := schemafile.Load([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else {
			var se *recschema.SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("%s: expected SchemaError, got %v", name, err)
			}
		}
	}
}

func TestRuntime_LiteralDefaults(t *testing.T) {
	rec, err := schemafile.Load([]byte("record: Conn\nfields:\n  - name: host\n    type: string\n    default: localhost\n  - name: port\n    type: int\n    default: 5432\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	s, err := schemafile.Runtime(rec)
	if err != nil {
		t.Fatalf("runtime compile failed: %v", err)
	}
	out, err := s.Construct(context.Background(), recschema.Fields{"port": 6543})
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if h, _ := out.Get("host"); h != "localhost" {
		t.Fatalf("expected default host, got %v", h)
	}
	if p, _ := out.Get("port"); p != 6543 {
		t.Fatalf("expected supplied port, got %v", p)
	}
}

func TestRuntime_RejectsExpressionText(t *testing.T) {
	rec, err := schemafile.Load([]byte(sizeYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	_, err = schemafile.Runtime(rec)
	var se *recschema.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError for expression text, got %v", err)
	}
}
