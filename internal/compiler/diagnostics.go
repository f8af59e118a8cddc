package compiler

import "fmt"

// Diagnostic codes.
//
// Declaration-shape errors (E101-E109)
const (
	ErrOutputMissing    = "E101" // directive lacks an output argument
	ErrOutputInvalid    = "E102" // output is not a valid Go type expression
	ErrUnknownArgument  = "E103" // unrecognized directive argument
	ErrNoFields         = "E104" // model declares no fields
	ErrHooksMismatch    = "E105" // embedded Hooks output differs from directive output
	ErrOutputUnimported = "E106" // output references a package the file does not import
)

// Default-derivation errors (E201-E209)
const (
	ErrDefaultUnsupported = "E201" // default tag on a type without literal defaults
	ErrDefaultUnparsable  = "E202" // default literal does not parse for the field type
)

// Conflict errors (E301-E309)
const (
	ErrManualCreate  = "E301" // model already declares Create
	ErrManualBuild   = "E302" // package already declares the Build function
	ErrManualDefault = "E303" // package already declares the Default constructor
)

// Diagnostic is a build-time error in a template model declaration.
// Declaration-shape problems are always surfaced this way, at
// generation time; no failure of the generated protocol exists at
// runtime.
type Diagnostic struct {
	Code    string `json:"code"`
	Field   string `json:"field"` // model name, optionally "Model.Field"
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d: [%s] %s: %s", d.File, d.Line, d.Code, d.Field, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.Field, d.Message)
}
