package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/templet/internal/ir"
	"github.com/roach88/templet/internal/scan"
)

func fieldDecl(typ, def string) (*scan.Decl, scan.Field) {
	d := &scan.Decl{
		PackageName: "demo",
		File:        "models.go",
		TypeName:    "Model",
	}
	return d, scan.Field{Name: "F", Type: typ, Default: def, Tagged: true, Line: 7}
}

func TestCheckDefaultAcceptsValidLiterals(t *testing.T) {
	cases := map[string]string{
		"string":  "anything at all",
		"bool":    "true",
		"int":     "-42",
		"int8":    "127",
		"uint16":  "65535",
		"int32":   "0x1F",
		"uint":    "012",
		"float64": "2.5",
		"float32": "0.125",
		"rune":    "65",
		"byte":    "255",
	}
	for typ, def := range cases {
		d, f := fieldDecl(typ, def)
		assert.Nil(t, checkDefault(d, f), "%s default %q", typ, def)
	}
}

func TestCheckDefaultRejectsUnparsableLiterals(t *testing.T) {
	cases := map[string]string{
		"bool":    "yes please",
		"int":     "4.5",
		"int8":    "128",
		"uint":    "-1",
		"byte":    "256",
		"float64": "fast",
	}
	for typ, def := range cases {
		d, f := fieldDecl(typ, def)
		diag := checkDefault(d, f)
		require.NotNil(t, diag, "%s default %q", typ, def)
		assert.Equal(t, ErrDefaultUnparsable, diag.Code)
		assert.Equal(t, "Model.F", diag.Field)
		assert.Equal(t, 7, diag.Line)
	}
}

func TestCheckDefaultRejectsNonDefaultableTypes(t *testing.T) {
	for _, typ := range []string{"[]string", "map[string]int", "*widget.Box", "time.Duration", "func()"} {
		d, f := fieldDecl(typ, "x")
		diag := checkDefault(d, f)
		require.NotNil(t, diag, typ)
		assert.Equal(t, ErrDefaultUnsupported, diag.Code, typ)
	}
}

func TestRenderDefault(t *testing.T) {
	assert.Equal(t, `"label"`, RenderDefault(ir.FieldSpec{Type: "string", Default: "label"}))
	assert.Equal(t, `"say \"hi\""`, RenderDefault(ir.FieldSpec{Type: "string", Default: `say "hi"`}))
	assert.Equal(t, "42", RenderDefault(ir.FieldSpec{Type: "int", Default: "42"}))
	assert.Equal(t, "true", RenderDefault(ir.FieldSpec{Type: "bool", Default: "true"}))
	assert.Equal(t, "2.5", RenderDefault(ir.FieldSpec{Type: "float64", Default: "2.5"}))
}
