// Package emit renders compiled template specs as Go source.
//
// One file is emitted per package, containing the default-state
// constructor and the construction protocol for every model in
// declaration order. Output is deterministic: identical specs always
// produce byte-identical source, so generated files can be diffed and
// golden-tested.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/roach88/templet/internal/compiler"
	"github.com/roach88/templet/internal/ir"
)

// RuntimeImport is the import path of the templet runtime package the
// generated code links against.
const RuntimeImport = "github.com/roach88/templet"

// GeneratedFileName is the emitted file's base name within each
// scanned package.
const GeneratedFileName = "templet_gen.go"

type importSpec struct {
	Alias string
	Path  string
}

type modelData struct {
	Name     string
	Output   string
	Hooks    bool
	Defaults []fieldDefault
}

type fieldDefault struct {
	Name string
	Expr string
}

type fileData struct {
	Package string
	Imports []importSpec
	Models  []modelData
}

// File renders the generated source for a package's template specs.
// Specs must all belong to the same package; they are rendered in the
// order given (declaration order).
func File(pkgName string, specs []ir.TemplateSpec) ([]byte, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no specs to emit for package %s", pkgName)
	}

	data := fileData{Package: pkgName}
	imports := map[string]string{} // path -> alias ("" when none needed)

	for _, spec := range specs {
		if spec.Package != pkgName {
			return nil, fmt.Errorf("spec %s belongs to package %s, not %s", spec.Name, spec.Package, pkgName)
		}
		md := modelData{Name: spec.Name, Output: spec.Output, Hooks: spec.Hooks}
		for _, f := range spec.Fields {
			if !f.Tagged {
				continue
			}
			md.Defaults = append(md.Defaults, fieldDefault{
				Name: f.Name,
				Expr: compiler.RenderDefault(f),
			})
		}
		data.Models = append(data.Models, md)

		if spec.OutputImport != "" {
			alias := ""
			if sel := outputSelector(spec.Output); sel != "" && sel != path.Base(spec.OutputImport) {
				alias = sel
			}
			imports[spec.OutputImport] = alias
		}
	}
	imports[RuntimeImport] = ""

	paths := make([]string, 0, len(imports))
	for p := range imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		data.Imports = append(data.Imports, importSpec{Alias: imports[p], Path: p})
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", pkgName, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		// Formatting only fails on an emitter bug; surface the raw
		// source to make that debuggable.
		return nil, fmt.Errorf("format generated source for %s: %w\n%s", pkgName, err, buf.String())
	}
	return src, nil
}

func outputSelector(expr string) string {
	s := strings.TrimLeft(expr, "*[]")
	if i := strings.IndexByte(s, '.'); i > 0 {
		return s[:i]
	}
	return ""
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by templet; DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Models}}
// Default{{.Name}} returns the default state of {{.Name}}: fields with
// a default tag take their declared literal, all other fields the
// type's zero value.
func Default{{.Name}}() {{.Name}} {
	return {{.Name}}{
{{- range .Defaults}}
		{{.Name}}: {{.Expr}},
{{- end}}
	}
}

// Create is the terminal form of {{.Name}}'s construction protocol: it
// runs Define{{if .Hooks}}, fires deferred hooks,{{end}} and returns the output. The model
// is consumed by value; treat each value as single-use.
func (m {{.Name}}) Create() {{.Output}} {
	return templet.Create[{{.Output}}](m)
}

// Build{{.Name}} is the continuation form of {{.Name}}'s construction
// protocol: fn receives the defined output{{if .Hooks}} after hooks fire{{end}} and its
// return value becomes the result of the whole call.
func Build{{.Name}}[A any](m {{.Name}}, fn func({{.Output}}) A) A {
	return templet.Build[{{.Output}}, A](m, fn)
}
{{end}}`))
