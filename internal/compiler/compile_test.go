package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/templet/internal/scan"
)

func labelDecl() *scan.Decl {
	return &scan.Decl{
		PackageName: "demo",
		File:        "models.go",
		Line:        10,
		TypeName:    "LabelTemplate",
		Args:        map[string]string{"output": "*widget.Label"},
		Embeds:      []string{"templet.Hooks[*widget.Label]"},
		Fields: []scan.Field{
			{Name: "Text", Type: "string", Default: "label", Tagged: true, Line: 12},
			{Name: "Size", Type: "int", Default: "12", Tagged: true, Line: 13},
		},
		Imports: map[string]string{
			"widget":  "example.com/toolkit/widget",
			"templet": "github.com/roach88/templet",
		},
	}
}

func emptyPkg() *scan.Package {
	return &scan.Package{
		Name:    "demo",
		Methods: map[string]map[string]bool{},
		Funcs:   map[string]bool{},
	}
}

func TestCompileDeclBasic(t *testing.T) {
	spec, diags := CompileDecl(labelDecl(), emptyPkg())
	require.Empty(t, diags)
	require.NotNil(t, spec)

	assert.Equal(t, "demo", spec.Package)
	assert.Equal(t, "LabelTemplate", spec.Name)
	assert.Equal(t, "*widget.Label", spec.Output)
	assert.Equal(t, "example.com/toolkit/widget", spec.OutputImport)
	assert.True(t, spec.Hooks)
	require.Len(t, spec.Fields, 2)
	assert.Equal(t, "Text", spec.Fields[0].Name)
	assert.Equal(t, "label", spec.Fields[0].Default)
}

func TestCompileDeclMissingOutput(t *testing.T) {
	d := labelDecl()
	d.Args = map[string]string{}

	spec, diags := CompileDecl(d, emptyPkg())
	assert.Nil(t, spec)
	require.Len(t, diags, 1)
	assert.Equal(t, ErrOutputMissing, diags[0].Code)
	assert.Equal(t, "LabelTemplate", diags[0].Field)
	assert.Contains(t, diags[0].Error(), "models.go:10")
}

func TestCompileDeclInvalidOutputExpression(t *testing.T) {
	d := labelDecl()
	d.Args["output"] = "*widget..Label"

	spec, diags := CompileDecl(d, emptyPkg())
	assert.Nil(t, spec)
	require.Len(t, diags, 1)
	assert.Equal(t, ErrOutputInvalid, diags[0].Code)
}

func TestCompileDeclUnknownArgument(t *testing.T) {
	d := labelDecl()
	d.Args["mode"] = "eager"

	_, diags := CompileDecl(d, emptyPkg())
	require.Len(t, diags, 1)
	assert.Equal(t, ErrUnknownArgument, diags[0].Code)
}

func TestCompileDeclUnimportedOutputPackage(t *testing.T) {
	d := labelDecl()
	delete(d.Imports, "widget")

	_, diags := CompileDecl(d, emptyPkg())
	require.Len(t, diags, 1)
	assert.Equal(t, ErrOutputUnimported, diags[0].Code)
	assert.Contains(t, diags[0].Message, `"widget"`)
}

func TestCompileDeclHooksOutputMismatch(t *testing.T) {
	d := labelDecl()
	d.Embeds = []string{"templet.Hooks[*widget.Box]"}

	spec, diags := CompileDecl(d, emptyPkg())
	require.NotNil(t, spec)
	assert.True(t, spec.Hooks)
	require.Len(t, diags, 1)
	assert.Equal(t, ErrHooksMismatch, diags[0].Code)
}

func TestCompileDeclNoFields(t *testing.T) {
	d := labelDecl()
	d.Fields = nil

	_, diags := CompileDecl(d, emptyPkg())
	require.Len(t, diags, 1)
	assert.Equal(t, ErrNoFields, diags[0].Code)
}

func TestCompileDeclManualConflicts(t *testing.T) {
	pkg := emptyPkg()
	pkg.Methods["LabelTemplate"] = map[string]bool{"Create": true}
	pkg.Funcs["BuildLabelTemplate"] = true
	pkg.Funcs["DefaultLabelTemplate"] = true

	_, diags := CompileDecl(labelDecl(), pkg)
	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	assert.ElementsMatch(t, []string{ErrManualCreate, ErrManualBuild, ErrManualDefault}, codes)
}

func TestCompileCollectsAcrossDecls(t *testing.T) {
	good := labelDecl()
	bad := labelDecl()
	bad.TypeName = "BoxTemplate"
	bad.Args = map[string]string{}

	pkg := emptyPkg()
	pkg.Decls = []scan.Decl{*good, *bad}

	specs, diags := Compile(pkg)
	require.Len(t, specs, 1)
	assert.Equal(t, "LabelTemplate", specs[0].Name)
	require.Len(t, diags, 1)
	assert.Equal(t, ErrOutputMissing, diags[0].Code)
}

func TestTypeSelector(t *testing.T) {
	assert.Equal(t, "widget", typeSelector("*widget.Box"))
	assert.Equal(t, "widget", typeSelector("[]widget.Box"))
	assert.Equal(t, "widget", typeSelector("widget.Box"))
	assert.Equal(t, "", typeSelector("Box"))
	assert.Equal(t, "", typeSelector("int"))
	assert.Equal(t, "", typeSelector("map[string]widget.Box"))
}
