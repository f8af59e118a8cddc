// Package scan locates template model declarations in Go source.
//
// A declaration is any struct type whose doc comment carries a
// templet directive:
//
//	//templet:template output=*widget.Box
//	type BoxTemplate struct { ... }
//
// The scanner is purely syntactic (go/parser, no type checking): it
// records the declaration shape, the declaring file's imports, and
// every method and function name in the package so the compiler can
// detect conflicts with hand-written code.
package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
)

// DirectivePrefix marks a struct declaration for generation.
const DirectivePrefix = "//templet:template"

// Decl is a raw, uncompiled template model declaration.
type Decl struct {
	PackageName string
	File        string
	Line        int
	TypeName    string
	Args        map[string]string // directive arguments, e.g. "output"
	Fields      []Field
	Embeds      []string          // embedded type expressions, as written
	Imports     map[string]string // local name -> import path, declaring file only
}

// Field is one named struct field of a declaration.
type Field struct {
	Name    string
	Type    string // type expression as written
	Default string // value of the default tag
	Tagged  bool   // default tag present
	Line    int
}

// Package is the scan result for one directory.
type Package struct {
	Name      string
	Dir       string
	FileCount int
	Decls     []Decl
	// Methods maps type name -> method names declared in the package.
	Methods map[string]map[string]bool
	// Funcs holds package-level function names.
	Funcs map[string]bool
}

// Error is a scan-time failure with source position when available.
type Error struct {
	Code    string
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: [%s] %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Scan error codes (E0xx).
const (
	ErrCodeNotFound  = "E001" // directory not found or not a directory
	ErrCodeParse     = "E002" // Go source failed to parse
	ErrCodeNoGoFiles = "E003" // no Go files in directory
	ErrCodeDirective = "E004" // malformed directive
)

// Dir scans a single directory for template model declarations.
// Generated files (a "Code generated" header per the Go convention)
// and _test.go files are skipped so re-runs never scan their own
// output.
func Dir(dir string) (*Package, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeNotFound, Message: err.Error()}
	}
	if !info.IsDir() {
		return nil, &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: err.Error()}
	}
	if len(pkgs) == 0 {
		return nil, &Error{Code: ErrCodeNoGoFiles, Message: fmt.Sprintf("no Go files in %s", dir)}
	}

	// Multiple packages per directory only happens with build-tag
	// tricks; pick the non-main, non-test package deterministically.
	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		names = append(names, name)
	}
	sort.Strings(names)
	pkg := pkgs[names[0]]

	result := &Package{
		Name:    pkg.Name,
		Dir:     dir,
		Methods: make(map[string]map[string]bool),
		Funcs:   make(map[string]bool),
	}

	// Deterministic file order.
	fileNames := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	for _, name := range fileNames {
		file := pkg.Files[name]
		if isGenerated(file) {
			continue
		}
		result.FileCount++
		if err := scanFile(fset, name, file, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func scanFile(fset *token.FileSet, path string, file *ast.File, result *Package) error {
	imports := fileImports(file)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv != nil && len(d.Recv.List) == 1 {
				recv := receiverName(d.Recv.List[0].Type)
				if recv != "" {
					if result.Methods[recv] == nil {
						result.Methods[recv] = make(map[string]bool)
					}
					result.Methods[recv][d.Name.Name] = true
				}
				continue
			}
			result.Funcs[d.Name.Name] = true

		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil {
					doc = d.Doc
				}
				args, found, err := parseDirective(fset, doc)
				if err != nil {
					return err
				}
				if !found {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return &Error{
						Code:    ErrCodeDirective,
						Message: fmt.Sprintf("%s: templet directive on non-struct type", ts.Name.Name),
						Pos:     fset.Position(ts.Pos()),
					}
				}
				md, err := buildDecl(fset, path, file.Name.Name, ts.Name.Name, st, args, imports)
				if err != nil {
					return err
				}
				result.Decls = append(result.Decls, *md)
			}
		}
	}
	return nil
}

func buildDecl(fset *token.FileSet, path, pkgName, typeName string, st *ast.StructType, args map[string]string, imports map[string]string) (*Decl, error) {
	d := &Decl{
		PackageName: pkgName,
		File:        filepath.Base(path),
		Line:        fset.Position(st.Pos()).Line,
		TypeName:    typeName,
		Args:        args,
		Imports:     imports,
	}
	for _, f := range st.Fields.List {
		typeExpr := types.ExprString(f.Type)
		if len(f.Names) == 0 {
			d.Embeds = append(d.Embeds, typeExpr)
			continue
		}
		def, tagged := fieldDefault(f.Tag)
		for _, name := range f.Names {
			d.Fields = append(d.Fields, Field{
				Name:    name.Name,
				Type:    typeExpr,
				Default: def,
				Tagged:  tagged,
				Line:    fset.Position(name.Pos()).Line,
			})
		}
	}
	return d, nil
}

// parseDirective extracts key=value arguments from a templet directive
// in a doc comment. Returns found=false when no directive is present.
func parseDirective(fset *token.FileSet, doc *ast.CommentGroup) (map[string]string, bool, error) {
	if doc == nil {
		return nil, false, nil
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, DirectivePrefix) {
			continue
		}
		rest := strings.TrimPrefix(c.Text, DirectivePrefix)
		if rest != "" && !strings.HasPrefix(rest, " ") {
			// Something like //templet:templates - not ours.
			continue
		}
		args := make(map[string]string)
		for _, tok := range strings.Fields(rest) {
			key, value, ok := strings.Cut(tok, "=")
			if !ok || key == "" || value == "" {
				return nil, false, &Error{
					Code:    ErrCodeDirective,
					Message: fmt.Sprintf("malformed directive argument %q (want key=value)", tok),
					Pos:     fset.Position(c.Pos()),
				}
			}
			args[key] = value
		}
		return args, true, nil
	}
	return nil, false, nil
}

func fieldDefault(tag *ast.BasicLit) (string, bool) {
	if tag == nil {
		return "", false
	}
	raw := strings.Trim(tag.Value, "`")
	return reflect.StructTag(raw).Lookup("default")
}

func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		name := ""
		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			// Last path element is the conventional package name.
			name = path
			if i := strings.LastIndex(path, "/"); i >= 0 {
				name = path[i+1:]
			}
		}
		imports[name] = path
	}
	return imports
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	}
	return ""
}

// isGenerated reports whether the file carries the standard
// "Code generated ... DO NOT EDIT." header.
func isGenerated(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() > file.Package {
			break
		}
		for _, c := range cg.List {
			if strings.HasPrefix(c.Text, "// Code generated") && strings.HasSuffix(c.Text, "DO NOT EDIT.") {
				return true
			}
		}
	}
	return false
}
