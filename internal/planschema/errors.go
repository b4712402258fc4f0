package planschema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoObject means the text holds no '{' ... '}' span to decode.
var ErrNoObject = errors.New("no JSON object found")

// ParseError reports generation output that could not be turned into a JSON
// object. Stage is "extract" or "decode".
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a structurally invalid plan. Day and Index locate the
// offending entry when the problem is inside a day; Index is -1 otherwise.
type SchemaError struct {
	Day     string
	Index   int
	Field   string
	Missing []string
	Message string
}

func (e *SchemaError) Error() string {
	loc := e.location()
	msg := e.Message
	if msg == "" && len(e.Missing) > 0 {
		msg = "missing " + strings.Join(e.Missing, ", ")
	}
	if loc == "" {
		return "schema: " + msg
	}
	return fmt.Sprintf("schema: %s: %s", loc, msg)
}

func (e *SchemaError) location() string {
	var b strings.Builder
	if e.Day != "" {
		b.WriteString(e.Day)
		if e.Index >= 0 {
			fmt.Fprintf(&b, "[%d]", e.Index)
		}
	}
	if e.Field != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(e.Field)
	}
	return b.String()
}

func topLevelError(field, format string, args ...any) *SchemaError {
	return &SchemaError{Index: -1, Field: field, Message: fmt.Sprintf(format, args...)}
}

func dayError(day, field, format string, args ...any) *SchemaError {
	return &SchemaError{Day: day, Index: -1, Field: field, Message: fmt.Sprintf(format, args...)}
}

func entryError(day string, index int, field, format string, args ...any) *SchemaError {
	return &SchemaError{Day: day, Index: index, Field: field, Message: fmt.Sprintf(format, args...)}
}
