package recschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeEmptySchema     = "empty_schema"
	CodeMalformedField  = "malformed_field"
	CodeDuplicateField  = "duplicate_field"
	CodeUnknownField    = "unknown_field"
	CodeConversion      = "conversion"
	CodeAssertionFailed = "assertion_failed"
	CodeDefaultError    = "default_error"
)

// Issue represents a single schema or construction diagnostic.
type Issue struct {
	Field   string // Field name the issue refers to ("" for the schema as a whole).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"value": "x", "target": "int"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		f := it.Field
		if f == "" {
			f = "schema"
		}
		// e.g. malformed_field at height
		fmt.Fprintf(b, "%s at %s", it.Code, f)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SchemaError reports malformed or empty schema input, detected at
// compilation time before any constructor exists. It accumulates one Issue
// per offending entry.
type SchemaError struct {
	Issues Issues
}

func (e *SchemaError) Error() string { return "recschema: invalid schema: " + e.Issues.Error() }

// Unwrap exposes the underlying Issues so AsIssues works on wrapped errors.
func (e *SchemaError) Unwrap() error { return e.Issues }

// ConversionError reports a supplied or defaulted value that cannot be
// coerced to its field's declared type. It names the field, the offending
// value, and the target type.
type ConversionError struct {
	Field  string
	Value  any
	Target string
	Cause  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("recschema: field %q: cannot convert %v (%T) to %s", e.Field, e.Value, e.Value, e.Target)
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// ValidationError reports a field assertion that evaluated false against the
// fully coerced value set. Predicate is the human-readable predicate text.
type ValidationError struct {
	Field     string
	Predicate string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("recschema: field %q: assertion failed: %s", e.Field, e.Predicate)
}

// UnknownFieldError reports a caller-supplied field name the schema does not
// declare.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("recschema: unknown field %q", e.Field)
}

// DefaultError reports a default expression that returned an error while
// being evaluated for a constructor call.
type DefaultError struct {
	Field string
	Cause error
}

func (e *DefaultError) Error() string {
	return fmt.Sprintf("recschema: field %q: default expression failed: %v", e.Field, e.Cause)
}

func (e *DefaultError) Unwrap() error { return e.Cause }
