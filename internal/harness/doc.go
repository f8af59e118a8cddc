// Package harness provides conformance testing for the templet
// generator.
//
// The harness materializes scenario source files into a temporary
// package, runs the scan/compile/emit pipeline over them, and checks
// either the reported diagnostics or the emitted Go source against a
// golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	sources:
//	  models.go: |
//	    package demo
//	    ...
//	expect:
//	  diagnostics:
//	    - code: E201
//	      field: BoxTemplate.Padding
//	golden: scenario_name
//
// A scenario must declare either expected diagnostics or a golden
// name, never both: a declaration either compiles or it does not.
//
// # Deterministic Testing
//
// Emission is deterministic over the compiled IR, so golden files are
// stable across runs and platforms. Golden files live in
// testdata/golden/{name}.golden and are regenerated with:
//
//	go test ./internal/harness -update
package harness
