// Package ir defines the minimal intermediate representation shared by the
// schema description loader and the code generator. This package is internal
// and not part of the public API.
package ir

// Record describes one record schema as declared in a description file.
type Record struct {
	Name   string
	Base   string
	Fields []Field
}

// Field is one declared field. Exactly one of Default/DefaultExpr is set:
// Default carries a literal (wire shape), DefaultExpr carries Go expression
// text over earlier field names. Assert optionally carries Go boolean
// expression text over all field names; expression text is only ever emitted
// into generated code, never interpreted.
type Field struct {
	Name        string
	Type        string // "string"|"bool"|"int"|"int64"|"float64"|"number"|"time"
	Default     any
	HasDefault  bool
	DefaultExpr string
	Assert      string
}
