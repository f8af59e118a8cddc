package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/templet/internal/compiler"
	"github.com/roach88/templet/internal/emit"
	"github.com/roach88/templet/internal/ir"
	"github.com/roach88/templet/internal/manifest"
	"github.com/roach88/templet/internal/scan"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	DryRun   bool
	Manifest string // manifest output path, overrides config
}

// GenerateResult summarizes one generation run for CLI output.
type GenerateResult struct {
	Packages  []GeneratedPackage    `json:"packages"`
	Manifest  string                `json:"manifest,omitempty"`
	Templates int                   `json:"templates"`
	Errors    []compiler.Diagnostic `json:"errors,omitempty"`
}

// GeneratedPackage records one emitted file.
type GeneratedPackage struct {
	Dir       string   `json:"dir"`
	Package   string   `json:"package"`
	File      string   `json:"file"`
	Templates []string `json:"templates"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <dir>...",
		Short: "Generate builder protocols for template models",
		Long: `Generate scans the given directories for structs marked with a
//templet:template directive, validates their shape, and emits one
generated file per package containing each model's default-state
constructor and build/create construction protocol.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Errors are reported through the formatter
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print generated code instead of writing files")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "write a generation manifest to this path")

	return cmd
}

func runGenerate(opts *GenerateOptions, dirs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result := GenerateResult{}
	man := manifest.New()
	manifestPath := opts.Manifest

	for _, dir := range dirs {
		cfg, err := LoadConfig(dir)
		if err != nil {
			formatter.Error(scan.ErrCodeNotFound, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		if manifestPath == "" && cfg.Manifest != "" {
			manifestPath = filepath.Join(dir, cfg.Manifest)
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
		formatter.VerboseLog("Scanned %d file(s) in %s: %d template(s)", pkg.FileCount, dir, len(pkg.Decls))
		if len(pkg.Decls) == 0 {
			continue
		}

		specs, diags := compiler.Compile(pkg)
		if len(diags) > 0 {
			result.Errors = append(result.Errors, diags...)
			continue
		}

		src, err := emit.File(pkg.Name, specs)
		if err != nil {
			formatter.Error("E500", err.Error(), nil)
			return WrapExitError(ExitCommandError, "emit failed", err)
		}

		outName := emit.GeneratedFileName
		if cfg.OutputFile != "" {
			outName = cfg.OutputFile
		}
		outPath := filepath.Join(dir, outName)
		if opts.DryRun {
			fmt.Fprintf(formatter.GetErrWriter(), "--- %s (dry run)\n%s", outPath, src)
		} else {
			if err := os.WriteFile(outPath, src, 0o644); err != nil {
				formatter.Error("E501", err.Error(), nil)
				return WrapExitError(ExitCommandError, "write failed", err)
			}
		}

		rec := manifest.PackageRecord{Dir: dir, Package: pkg.Name, File: outPath}
		gp := GeneratedPackage{Dir: dir, Package: pkg.Name, File: outPath}
		for i := range specs {
			hash, err := ir.SpecHash(&specs[i])
			if err != nil {
				return WrapExitError(ExitCommandError, "spec hash failed", err)
			}
			rec.Templates = append(rec.Templates, manifest.TemplateRecord{
				Name:     specs[i].Name,
				Output:   specs[i].Output,
				SpecHash: hash,
			})
			gp.Templates = append(gp.Templates, specs[i].Name)
		}
		man.Packages = append(man.Packages, rec)
		result.Packages = append(result.Packages, gp)
		result.Templates += len(specs)
	}

	if len(result.Errors) > 0 {
		return outputDiagnostics(formatter, result.Errors)
	}

	if manifestPath != "" && !opts.DryRun && len(man.Packages) > 0 {
		if err := man.Write(manifestPath); err != nil {
			return WrapExitError(ExitCommandError, "manifest write failed", err)
		}
		result.Manifest = manifestPath
		formatter.VerboseLog("Wrote manifest %s (run %s)", manifestPath, man.RunID)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	for _, p := range result.Packages {
		fmt.Fprintf(formatter.Writer, "%s: %d template(s) -> %s\n", p.Package, len(p.Templates), p.File)
	}
	fmt.Fprintf(formatter.Writer, "Generated %d template(s)\n", result.Templates)
	return nil
}

// outputDiagnostics reports compile diagnostics and returns the
// failure exit code.
func outputDiagnostics(f *OutputFormatter, diags []compiler.Diagnostic) error {
	if f.Format == "json" {
		f.Error("E100", fmt.Sprintf("%d diagnostic(s)", len(diags)), diags)
	} else {
		for _, d := range diags {
			fmt.Fprintln(f.Writer, d.Error())
		}
		fmt.Fprintf(f.Writer, "%d diagnostic(s)\n", len(diags))
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d diagnostic(s)", len(diags)))
}
