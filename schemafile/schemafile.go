// Package schemafile loads record schema descriptions from JSON or YAML
// documents. A description names the record, an optional base type, and the
// ordered field list; each field carries a type name and either a literal
// default or Go expression text (default_expr/assert) destined for code
// generation.
package schemafile

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	recschema "github.com/reoring/recschema"
	ir "github.com/reoring/recschema/internal/ir"
)

var typeNames = map[string]recschema.Type{
	"string":  recschema.String(),
	"bool":    recschema.Bool(),
	"int":     recschema.Int(),
	"int64":   recschema.Int64(),
	"float64": recschema.Float64(),
	"number":  recschema.Number(),
	"time":    recschema.Time(),
}

// Load parses a single schema description. JSON input is detected by its
// first non-space byte; everything else is decoded as YAML. Field order in
// the document is preserved exactly.
func Load(data []byte) (*ir.Record, error) {
	doc, err := decodeAny(data)
	if err != nil {
		return nil, &recschema.SchemaError{Issues: recschema.Issues{{
			Code:    recschema.CodeMalformedField,
			Message: err.Error(),
			Cause:   err,
		}}}
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, &recschema.SchemaError{Issues: recschema.Issues{{
			Code:    recschema.CodeMalformedField,
			Message: "schema description must be a mapping",
		}}}
	}

	rec := &ir.Record{}
	rec.Name, _ = root["record"].(string)
	rec.Base, _ = root["base"].(string)

	var iss recschema.Issues
	if rec.Name == "" {
		iss = recschema.AppendIssues(iss, recschema.Issue{
			Code:    recschema.CodeMalformedField,
			Message: "missing record name",
			Hint:    `top-level "record" is mandatory`,
		})
	}
	rawFields, _ := root["fields"].([]any)
	if len(rawFields) == 0 {
		iss = recschema.AppendIssues(iss, recschema.Issue{
			Code:    recschema.CodeEmptySchema,
			Message: "schema declares no fields",
		})
		return nil, &recschema.SchemaError{Issues: iss}
	}
	for i, rf := range rawFields {
		fm, ok := rf.(map[string]any)
		if !ok {
			iss = recschema.AppendIssues(iss, recschema.Issue{
				Code:    recschema.CodeMalformedField,
				Message: fmt.Sprintf("field #%d is not a mapping", i),
			})
			continue
		}
		f := ir.Field{}
		f.Name, _ = fm["name"].(string)
		f.Type, _ = fm["type"].(string)
		f.DefaultExpr, _ = fm["default_expr"].(string)
		f.Assert, _ = fm["assert"].(string)
		if dv, present := fm["default"]; present {
			f.Default = dv
			f.HasDefault = true
		}
		switch {
		case f.Name == "":
			iss = recschema.AppendIssues(iss, recschema.Issue{
				Code:    recschema.CodeMalformedField,
				Message: fmt.Sprintf("field #%d has no name", i),
			})
			continue
		case f.Type == "":
			iss = recschema.AppendIssues(iss, recschema.Issue{
				Field:   f.Name,
				Code:    recschema.CodeMalformedField,
				Message: "missing type",
			})
			continue
		}
		if _, known := typeNames[f.Type]; !known {
			iss = recschema.AppendIssues(iss, recschema.Issue{
				Field:   f.Name,
				Code:    recschema.CodeMalformedField,
				Message: fmt.Sprintf("unknown type %q", f.Type),
				Hint:    "one of string, bool, int, int64, float64, number, time",
			})
			continue
		}
		if f.HasDefault == (f.DefaultExpr != "") {
			iss = recschema.AppendIssues(iss, recschema.Issue{
				Field:   f.Name,
				Code:    recschema.CodeMalformedField,
				Message: "exactly one of default/default_expr is required",
			})
			continue
		}
		rec.Fields = append(rec.Fields, f)
	}
	if len(iss) > 0 {
		return nil, &recschema.SchemaError{Issues: iss}
	}
	return rec, nil
}

// Runtime compiles a loaded description into a runtime Schema. Only literal
// defaults are supported on this path; default_expr and assert carry Go
// expression text, which exists solely for the generator.
func Runtime(rec *ir.Record) (*recschema.Schema, error) {
	raw := make([]recschema.RawField, 0, len(rec.Fields))
	var iss recschema.Issues
	for _, f := range rec.Fields {
		if f.DefaultExpr != "" || f.Assert != "" {
			iss = recschema.AppendIssues(iss, recschema.Issue{
				Field:   f.Name,
				Code:    recschema.CodeMalformedField,
				Message: "expression text requires code generation",
				Hint:    "run `recschema gen` or declare the field with a literal default",
			})
			continue
		}
		raw = append(raw, recschema.RawField{
			Name:    f.Name,
			Type:    typeNames[f.Type],
			Default: recschema.Lit(f.Default),
		})
	}
	if len(iss) > 0 {
		return nil, &recschema.SchemaError{Issues: iss}
	}
	return recschema.Compile(rec.Base, raw)
}

func decodeAny(data []byte) (any, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
