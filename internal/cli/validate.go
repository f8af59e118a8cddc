package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/templet/internal/compiler"
	"github.com/roach88/templet/internal/scan"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool                  `json:"valid"`
	Templates int                   `json:"templates"`
	Errors    []compiler.Diagnostic `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <dir>...",
		Short: "Validate template declarations without generating code",
		Long: `Validate scans the given directories and checks every template
model's declaration shape: directive arguments, default tag literals,
and conflicts with hand-written builder code. No files are written.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Errors are reported through the formatter
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, dirs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result := ValidationResult{Valid: true}
	for _, dir := range dirs {
		pkg, err := scan.Dir(dir)
		if err != nil {
			var scanErr *scan.Error
			if errors.As(err, &scanErr) {
				formatter.Error(scanErr.Code, scanErr.Message, nil)
			} else {
				formatter.Error(scan.ErrCodeParse, err.Error(), nil)
			}
			return WrapExitError(ExitCommandError, "scan failed", err)
		}
		formatter.VerboseLog("Scanned %d file(s) in %s: %d template(s)", pkg.FileCount, dir, len(pkg.Decls))

		_, diags := compiler.Compile(pkg)
		result.Templates += len(pkg.Decls)
		result.Errors = append(result.Errors, diags...)
	}

	if len(result.Errors) > 0 {
		result.Valid = false
		if formatter.Format == "json" {
			formatter.Success(result)
		} else {
			for _, d := range result.Errors {
				fmt.Fprintln(formatter.Writer, d.Error())
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d diagnostic(s)", len(result.Errors)))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Valid: %d template(s)\n", result.Templates)
	return nil
}
