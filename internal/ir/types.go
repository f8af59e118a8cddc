package ir

import "fmt"

// TemplateSpec represents a compiled template model declaration.
type TemplateSpec struct {
	Package string      `json:"package"` // declaring package name
	Name    string      `json:"name"`    // model type name
	Output  string      `json:"output"`  // Go type expression of the output
	// OutputImport is the import path of the output type's package,
	// resolved from the declaring file. Empty for unqualified outputs.
	OutputImport string      `json:"output_import,omitempty"`
	Fields       []FieldSpec `json:"fields"`
	Hooks        bool        `json:"hooks"` // model embeds templet.Hooks[Output]
	File    string      `json:"file,omitempty"`
	Line    int         `json:"line,omitempty"`
}

// FieldSpec represents one named parameter of a template model.
type FieldSpec struct {
	Name    string `json:"name"`
	Type    string `json:"type"`              // Go type expression as written
	Default string `json:"default,omitempty"` // literal from the default tag
	Tagged  bool   `json:"tagged,omitempty"`  // true when a default tag is present
}

// DefaultableKinds lists the field type names whose default tags the
// generator knows how to render as Go literals. Fields of any other
// type take the zero value and must not carry a default tag.
var DefaultableKinds = map[string]bool{
	"string":  true,
	"bool":    true,
	"int":     true,
	"int8":    true,
	"int16":   true,
	"int32":   true,
	"int64":   true,
	"uint":    true,
	"uint8":   true,
	"uint16":  true,
	"uint32":  true,
	"uint64":  true,
	"uintptr": true,
	"float32": true,
	"float64": true,
	"rune":    true,
	"byte":    true,
}

// Pos returns a "file:line" prefix for diagnostics, or "" when the
// spec carries no position.
func (s *TemplateSpec) Pos() string {
	if s.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Field returns the named field spec, or nil.
func (s *TemplateSpec) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
