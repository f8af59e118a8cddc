package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/templet/internal/compiler"
	"github.com/roach88/templet/internal/emit"
	"github.com/roach88/templet/internal/scan"
)

// Run materializes the scenario, executes the scan/compile/emit
// pipeline, and asserts the outcome: expected diagnostics when the
// scenario declares them, otherwise a golden-file match on the
// emitted source.
func Run(t *testing.T, s *Scenario) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, s.materialize(dir))

	pkg, err := scan.Dir(dir)
	require.NoError(t, err, "scenario %s: scan must succeed", s.Name)
	require.NotEmpty(t, pkg.Decls, "scenario %s: no template declarations found", s.Name)

	specs, diags := compiler.Compile(pkg)

	if len(s.Expect.Diagnostics) > 0 {
		assertDiagnostics(t, s, diags)
		return
	}

	require.Empty(t, diags, "scenario %s: unexpected diagnostics", s.Name)
	src, err := emit.File(pkg.Name, specs)
	require.NoError(t, err, "scenario %s: emit must succeed", s.Name)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, s.Golden, src)
}

// assertDiagnostics checks that every expected diagnostic was
// reported and no unexpected ones appeared.
func assertDiagnostics(t *testing.T, s *Scenario, diags []compiler.Diagnostic) {
	t.Helper()

	assert.Len(t, diags, len(s.Expect.Diagnostics), "scenario %s: diagnostic count", s.Name)
	for _, want := range s.Expect.Diagnostics {
		found := false
		for _, got := range diags {
			if got.Code == want.Code && got.Field == want.Field {
				found = true
				break
			}
		}
		assert.True(t, found, "scenario %s: missing diagnostic [%s] %s (got %v)", s.Name, want.Code, want.Field, diags)
	}
}
