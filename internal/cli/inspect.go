package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/templet/internal/compiler"
	"github.com/roach88/templet/internal/ir"
	"github.com/roach88/templet/internal/scan"
)

// InspectedTemplate pairs a compiled spec with its identity hash.
type InspectedTemplate struct {
	ir.TemplateSpec
	SpecHash string `json:"spec_hash"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <dir>",
		Short: "Show the compiled IR and spec hashes for a directory",
		Long: `Inspect compiles the directory's template declarations and prints
each model's IR together with its content-addressed spec hash. Useful
for debugging directives and for pinning hashes in review.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

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

	specs, diags := compiler.Compile(pkg)
	if len(diags) > 0 {
		return outputDiagnostics(formatter, diags)
	}

	inspected := make([]InspectedTemplate, 0, len(specs))
	for i := range specs {
		hash, err := ir.SpecHash(&specs[i])
		if err != nil {
			return WrapExitError(ExitCommandError, "spec hash failed", err)
		}
		inspected = append(inspected, InspectedTemplate{TemplateSpec: specs[i], SpecHash: hash})
	}

	if formatter.Format == "json" {
		return formatter.Success(inspected)
	}
	for _, t := range inspected {
		fmt.Fprintf(formatter.Writer, "%s -> %s (%s)\n", t.Name, t.Output, t.SpecHash[:12])
		for _, f := range t.Fields {
			if f.Tagged {
				fmt.Fprintf(formatter.Writer, "  %s %s = %s\n", f.Name, f.Type, f.Default)
			} else {
				fmt.Fprintf(formatter.Writer, "  %s %s\n", f.Name, f.Type)
			}
		}
		if t.Hooks {
			fmt.Fprintln(formatter.Writer, "  (hooks)")
		}
	}
	return nil
}
