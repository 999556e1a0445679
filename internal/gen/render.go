// Package gen renders Go source for record schema descriptions: one exported
// struct, one package-level compiled schema, and one constructor per record.
// Expression text from the description (default_expr/assert) is emitted
// verbatim inside closures with the visible fields bound as typed locals, so
// the Go compiler is the expression checker.
package gen

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	ir "github.com/reoring/recschema/internal/ir"
)

type typeInfo struct {
	goType   string // struct field type
	ctor     string // recschema type constructor
	accessor string // Values accessor method
}

var types = map[string]typeInfo{
	"string":  {goType: "string", ctor: "recschema.String()", accessor: "String"},
	"bool":    {goType: "bool", ctor: "recschema.Bool()", accessor: "Bool"},
	"int":     {goType: "int", ctor: "recschema.Int()", accessor: "Int"},
	"int64":   {goType: "int64", ctor: "recschema.Int64()", accessor: "Int64"},
	"float64": {goType: "float64", ctor: "recschema.Float64()", accessor: "Float64"},
	"number":  {goType: "json.Number", ctor: "recschema.Number()", accessor: "Number"},
	"time":    {goType: "time.Time", ctor: "recschema.Time()", accessor: "Time"},
}

// RenderFile emits one gofmt'ed Go source file containing every record in
// recs, for package pkg.
func RenderFile(pkg string, recs []*ir.Record) ([]byte, error) {
	if pkg == "" {
		return nil, fmt.Errorf("gen: empty package name")
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "// Code generated by recschema gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(b, "package %s\n\n", pkg)
	writeImports(b, recs)
	for _, rec := range recs {
		if err := writeRecord(b, rec); err != nil {
			return nil, err
		}
	}
	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("gen: rendered source does not parse: %w", err)
	}
	return src, nil
}

func writeImports(b *strings.Builder, recs []*ir.Record) {
	needJSON, needTime := false, false
	for _, rec := range recs {
		for _, f := range rec.Fields {
			switch f.Type {
			case "number":
				needJSON = true
			case "time":
				needTime = true
			}
		}
	}
	b.WriteString("import (\n")
	b.WriteString("\t\"context\"\n")
	if needJSON {
		b.WriteString("\t\"encoding/json\"\n")
	}
	if needTime {
		b.WriteString("\t\"time\"\n")
	}
	b.WriteString("\n")
	b.WriteString("\trecschema \"github.com/reoring/recschema\"\n")
	b.WriteString("\t\"github.com/reoring/recschema/dsl\"\n")
	b.WriteString(")\n\n")
}

func writeRecord(b *strings.Builder, rec *ir.Record) error {
	name := exportName(rec.Name)
	if name == "" {
		return fmt.Errorf("gen: record has no name")
	}

	// struct type, fields in declaration order
	if rec.Base != "" {
		fmt.Fprintf(b, "// %s is generated from the %q record schema (extends %s).\n", name, rec.Name, rec.Base)
	} else {
		fmt.Fprintf(b, "// %s is generated from the %q record schema.\n", name, rec.Name)
	}
	fmt.Fprintf(b, "type %s struct {\n", name)
	for _, f := range rec.Fields {
		ti, ok := types[f.Type]
		if !ok {
			return fmt.Errorf("gen: field %q: unknown type %q", f.Name, f.Type)
		}
		fmt.Fprintf(b, "\t%s %s `recschema:\"name=%s\"`\n", exportName(f.Name), ti.goType, f.Name)
	}
	b.WriteString("}\n\n")

	// compiled schema
	fmt.Fprintf(b, "// %sSchema backs New%s; it is immutable and safe for concurrent use.\n", name, name)
	fmt.Fprintf(b, "var %sSchema = dsl.Record().\n", name)
	if rec.Base != "" {
		fmt.Fprintf(b, "\tBase(%q).\n", rec.Base)
	}
	for i, f := range rec.Fields {
		ti := types[f.Type]
		fmt.Fprintf(b, "\tField(%q, %s)", f.Name, ti.ctor)
		if f.DefaultExpr != "" {
			b.WriteString(".DefaultFn(func(ctx context.Context, prior recschema.Values) (any, error) {\n")
			writeLocals(b, rec.Fields[:i], "prior")
			fmt.Fprintf(b, "\t\treturn %s, nil\n\t})", f.DefaultExpr)
		} else {
			lit, err := renderLiteral(f.Default)
			if err != nil {
				return fmt.Errorf("gen: field %q: %w", f.Name, err)
			}
			fmt.Fprintf(b, ".Default(%s)", lit)
		}
		if f.Assert != "" {
			fmt.Fprintf(b, ".Assert(%q, func(ctx context.Context, v recschema.Values) bool {\n", f.Assert)
			writeLocals(b, rec.Fields, "v")
			fmt.Fprintf(b, "\t\treturn %s\n\t})", f.Assert)
		}
		b.WriteString(".\n")
	}
	b.WriteString("\tMustBuild()\n\n")

	// constructor
	fmt.Fprintf(b, "// New%s constructs a validated %s; omitted fields take their defaults.\n", name, name)
	fmt.Fprintf(b, "func New%s(ctx context.Context, args recschema.Fields) (%s, error) {\n", name, name)
	fmt.Fprintf(b, "\trec, err := %sSchema.Construct(ctx, args)\n", name)
	b.WriteString("\tif err != nil {\n")
	fmt.Fprintf(b, "\t\treturn %s{}, err\n", name)
	b.WriteString("\t}\n")
	fmt.Fprintf(b, "\treturn recschema.Into[%s](rec)\n", name)
	b.WriteString("}\n\n")
	return nil
}

// writeLocals binds the visible fields as typed locals so expression text can
// reference them by their declared names. The blank assignments keep the
// emitted code valid when an expression uses only some of them.
func writeLocals(b *strings.Builder, visible []ir.Field, recv string) {
	for _, f := range visible {
		ti := types[f.Type]
		fmt.Fprintf(b, "\t\t%s := %s.%s(%q)\n", f.Name, recv, ti.accessor, f.Name)
	}
	for _, f := range visible {
		fmt.Fprintf(b, "\t\t_ = %s\n", f.Name)
	}
}

func renderLiteral(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", fmt.Errorf("missing default literal")
	case string:
		return strconv.Quote(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("unsupported default literal %v (%T)", v, v)
	}
}

// exportName turns a schema identifier into an exported Go identifier:
// "max_len" -> "MaxLen", "width" -> "Width".
func exportName(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	b := &strings.Builder{}
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
