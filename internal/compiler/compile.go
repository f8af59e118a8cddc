// Package compiler turns scanned template model declarations into the
// canonical IR and validates declaration shape.
//
// All validation is generation-time: a declaration that compiles
// cleanly here produces a construction protocol with no runtime error
// path of its own. Semantic validation of field combinations belongs
// to the model's Define implementation.
package compiler

import (
	"fmt"
	"go/parser"
	"strings"

	"github.com/roach88/templet/internal/ir"
	"github.com/roach88/templet/internal/scan"
)

// hooksPrefixes identify an embedded deferred-hook carrier. The
// unqualified form appears when the runtime package is dot-imported
// or vendored under a local alias named templet.
var hooksPrefixes = []string{"templet.Hooks[", "Hooks["}

// Compile compiles every declaration in a scanned package, collecting
// all diagnostics rather than stopping at the first.
func Compile(pkg *scan.Package) ([]ir.TemplateSpec, []Diagnostic) {
	var specs []ir.TemplateSpec
	var diags []Diagnostic

	for i := range pkg.Decls {
		spec, ds := CompileDecl(&pkg.Decls[i], pkg)
		diags = append(diags, ds...)
		if spec != nil && len(ds) == 0 {
			specs = append(specs, *spec)
		}
	}
	return specs, diags
}

// CompileDecl compiles a single declaration. A nil spec is returned
// only when the declaration is too malformed to represent; otherwise
// the spec is returned alongside any diagnostics so callers can still
// inspect it.
func CompileDecl(d *scan.Decl, pkg *scan.Package) (*ir.TemplateSpec, []Diagnostic) {
	var diags []Diagnostic

	output := d.Args["output"]
	if output == "" {
		diags = append(diags, Diagnostic{
			Code:    ErrOutputMissing,
			Field:   d.TypeName,
			Message: "templet directive requires output=<type>",
			File:    d.File,
			Line:    d.Line,
		})
		return nil, diags
	}
	for key := range d.Args {
		if key != "output" {
			diags = append(diags, Diagnostic{
				Code:    ErrUnknownArgument,
				Field:   d.TypeName,
				Message: fmt.Sprintf("unknown directive argument %q", key),
				File:    d.File,
				Line:    d.Line,
			})
		}
	}
	if _, err := parser.ParseExpr(output); err != nil {
		diags = append(diags, Diagnostic{
			Code:    ErrOutputInvalid,
			Field:   d.TypeName,
			Message: fmt.Sprintf("output %q is not a valid type expression", output),
			File:    d.File,
			Line:    d.Line,
		})
		return nil, diags
	}
	outputImport := ""
	if sel := typeSelector(output); sel != "" {
		path, ok := d.Imports[sel]
		if !ok {
			diags = append(diags, Diagnostic{
				Code:    ErrOutputUnimported,
				Field:   d.TypeName,
				Message: fmt.Sprintf("output %q references package %q, which the declaring file does not import", output, sel),
				File:    d.File,
				Line:    d.Line,
			})
		}
		outputImport = path
	}

	spec := &ir.TemplateSpec{
		Package:      d.PackageName,
		Name:         d.TypeName,
		Output:       output,
		OutputImport: outputImport,
		File:         d.File,
		Line:         d.Line,
	}

	for _, embed := range d.Embeds {
		for _, prefix := range hooksPrefixes {
			if !strings.HasPrefix(embed, prefix) {
				continue
			}
			spec.Hooks = true
			arg := strings.TrimSuffix(strings.TrimPrefix(embed, prefix), "]")
			if arg != output {
				diags = append(diags, Diagnostic{
					Code:    ErrHooksMismatch,
					Field:   d.TypeName,
					Message: fmt.Sprintf("embedded Hooks[%s] does not match output %s", arg, output),
					File:    d.File,
					Line:    d.Line,
				})
			}
		}
	}

	for _, f := range d.Fields {
		fs := ir.FieldSpec{Name: f.Name, Type: f.Type, Default: f.Default, Tagged: f.Tagged}
		if f.Tagged {
			if diag := checkDefault(d, f); diag != nil {
				diags = append(diags, *diag)
			}
		}
		spec.Fields = append(spec.Fields, fs)
	}
	if len(spec.Fields) == 0 {
		diags = append(diags, Diagnostic{
			Code:    ErrNoFields,
			Field:   d.TypeName,
			Message: "template model declares no fields",
			File:    d.File,
			Line:    d.Line,
		})
	}

	diags = append(diags, checkConflicts(d, pkg)...)
	return spec, diags
}

// checkConflicts rejects declarations whose generated surface would
// collide with hand-written code. A manual implementation and the
// synthesized one are mutually exclusive per model; conflicts must
// fail generation rather than silently shadow either side.
func checkConflicts(d *scan.Decl, pkg *scan.Package) []Diagnostic {
	var diags []Diagnostic
	methods := pkg.Methods[d.TypeName]

	if methods["Create"] {
		diags = append(diags, Diagnostic{
			Code:    ErrManualCreate,
			Field:   d.TypeName,
			Message: "model already declares a Create method; remove it or drop the templet directive",
			File:    d.File,
			Line:    d.Line,
		})
	}
	if buildName := "Build" + d.TypeName; pkg.Funcs[buildName] || methods["Build"] {
		diags = append(diags, Diagnostic{
			Code:    ErrManualBuild,
			Field:   d.TypeName,
			Message: fmt.Sprintf("package already declares %s; remove it or drop the templet directive", buildName),
			File:    d.File,
			Line:    d.Line,
		})
	}
	if defaultName := "Default" + d.TypeName; pkg.Funcs[defaultName] {
		diags = append(diags, Diagnostic{
			Code:    ErrManualDefault,
			Field:   d.TypeName,
			Message: fmt.Sprintf("package already declares %s; remove it or drop the templet directive", defaultName),
			File:    d.File,
			Line:    d.Line,
		})
	}
	return diags
}

// typeSelector returns the package qualifier of a type expression,
// e.g. "widget" for "*widget.Box" or "[]widget.Box", or "" for
// unqualified types.
func typeSelector(expr string) string {
	s := strings.TrimLeft(expr, "*[]")
	i := strings.IndexByte(s, '.')
	if i <= 0 {
		return ""
	}
	sel := s[:i]
	for _, r := range sel {
		if !isIdentRune(r) {
			return ""
		}
	}
	return sel
}

func isIdentRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
