package recschema

import (
	"github.com/reoring/recschema/i18n"
)

// Schema is the compiled, immutable form of an ordered field specification.
// It is created once at definition time and may be shared across arbitrarily
// many concurrent Construct calls without synchronization.
type Schema struct {
	base   string
	fields []FieldSpec
	index  map[string]int
}

// Compile turns the raw, ordered schema input into a Schema. It is the
// field-specification parser: a pure transformation that validates the input
// shape and preserves declaration order exactly. base optionally names the
// base type the record nominally extends; it is carried through to typed
// projection and code generation but imposes nothing at runtime.
//
// Compile fails with *SchemaError on an empty input, on entries missing a
// name, type, or default, and on duplicate names. Issues accumulate so one
// pass reports every offending entry.
func Compile(base string, raw []RawField) (*Schema, error) {
	if len(raw) == 0 {
		return nil, &SchemaError{Issues: Issues{{
			Code:    CodeEmptySchema,
			Message: i18n.T(CodeEmptySchema, nil),
		}}}
	}
	var iss Issues
	fields := make([]FieldSpec, 0, len(raw))
	index := make(map[string]int, len(raw))
	for _, rf := range raw {
		if rf.Name == "" || rf.Type == nil || rf.Default == nil {
			iss = AppendIssues(iss, Issue{
				Field:   rf.Name,
				Code:    CodeMalformedField,
				Message: i18n.T(CodeMalformedField, nil),
				Hint:    "name, type, and default are all mandatory per field",
			})
			continue
		}
		if _, dup := index[rf.Name]; dup {
			iss = AppendIssues(iss, Issue{
				Field:   rf.Name,
				Code:    CodeDuplicateField,
				Message: i18n.T(CodeDuplicateField, nil),
			})
			continue
		}
		pred := rf.Predicate
		if rf.Assert != nil && pred == "" {
			pred = "assert(" + rf.Name + ")"
		}
		index[rf.Name] = len(fields)
		fields = append(fields, FieldSpec{
			Name:      rf.Name,
			Type:      rf.Type,
			Default:   rf.Default,
			Assert:    rf.Assert,
			Predicate: pred,
		})
	}
	if len(iss) > 0 {
		return nil, &SchemaError{Issues: iss}
	}
	return &Schema{base: base, fields: fields, index: index}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(base string, raw []RawField) *Schema {
	s, err := Compile(base, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Base returns the optional base-type identifier, or "".
func (s *Schema) Base() string { return s.base }

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns the i-th FieldSpec in declaration order.
func (s *Schema) Field(i int) FieldSpec { return s.fields[i] }

// FieldNames returns the declared names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the declaration index of the named field.
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}
