package compiler

import (
	"fmt"
	"strconv"

	"github.com/roach88/templet/internal/ir"
	"github.com/roach88/templet/internal/scan"
)

// intBits maps signed integer kinds to their bit sizes for literal
// range checking. rune is int32.
var intBits = map[string]int{
	"int": 64, "int8": 8, "int16": 16, "int32": 32, "int64": 64, "rune": 32,
}

// uintBits maps unsigned integer kinds to their bit sizes. byte is
// uint8.
var uintBits = map[string]int{
	"uint": 64, "uint8": 8, "uint16": 16, "uint32": 32, "uint64": 64,
	"uintptr": 64, "byte": 8,
}

// checkDefault validates a default tag literal against its field type.
// Every field must either carry a parsable literal default or fall
// back to the type's zero value; anything else is a generation-time
// diagnostic, never a deferred runtime failure.
func checkDefault(d *scan.Decl, f scan.Field) *Diagnostic {
	fail := func(code, msg string) *Diagnostic {
		return &Diagnostic{
			Code:    code,
			Field:   d.TypeName + "." + f.Name,
			Message: msg,
			File:    d.File,
			Line:    f.Line,
		}
	}

	if !ir.DefaultableKinds[f.Type] {
		return fail(ErrDefaultUnsupported,
			fmt.Sprintf("type %s cannot carry a default tag; only basic kinds have literal defaults", f.Type))
	}

	switch f.Type {
	case "string":
		return nil // any tag value becomes a quoted literal
	case "bool":
		if _, err := strconv.ParseBool(f.Default); err != nil {
			return fail(ErrDefaultUnparsable, fmt.Sprintf("%q is not a bool literal", f.Default))
		}
	case "float32", "float64":
		bits := 64
		if f.Type == "float32" {
			bits = 32
		}
		if _, err := strconv.ParseFloat(f.Default, bits); err != nil {
			return fail(ErrDefaultUnparsable, fmt.Sprintf("%q is not a %s literal", f.Default, f.Type))
		}
	default:
		if bits, ok := intBits[f.Type]; ok {
			if _, err := strconv.ParseInt(f.Default, 0, bits); err != nil {
				return fail(ErrDefaultUnparsable, fmt.Sprintf("%q is not a %s literal", f.Default, f.Type))
			}
			return nil
		}
		if bits, ok := uintBits[f.Type]; ok {
			if _, err := strconv.ParseUint(f.Default, 0, bits); err != nil {
				return fail(ErrDefaultUnparsable, fmt.Sprintf("%q is not a %s literal", f.Default, f.Type))
			}
			return nil
		}
		// DefaultableKinds and the bit tables must stay in sync.
		return fail(ErrDefaultUnsupported, fmt.Sprintf("no literal renderer for type %s", f.Type))
	}
	return nil
}

// RenderDefault renders a validated default tag as a Go expression.
// checkDefault must have accepted the field first.
func RenderDefault(f ir.FieldSpec) string {
	if f.Type == "string" {
		return strconv.Quote(f.Default)
	}
	return f.Default
}
