package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxSpec() *TemplateSpec {
	return &TemplateSpec{
		Package:      "boxkit",
		Name:         "BoxTemplate",
		Output:       "*widget.Box",
		OutputImport: "example.com/widget",
		Fields: []FieldSpec{
			{Name: "Padding", Type: "int", Default: "4", Tagged: true},
			{Name: "Spacing", Type: "int", Default: "4", Tagged: true},
		},
		Hooks: true,
		File:  "models.go",
		Line:  12,
	}
}

func TestSpecHashStable(t *testing.T) {
	first, err := SpecHash(boxSpec())
	require.NoError(t, err)
	assert.Len(t, first, 64) // hex sha256

	again, err := SpecHash(boxSpec())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestSpecHashIgnoresPosition(t *testing.T) {
	base, err := SpecHash(boxSpec())
	require.NoError(t, err)

	moved := boxSpec()
	moved.File = "other.go"
	moved.Line = 99
	got, err := SpecHash(moved)
	require.NoError(t, err)
	assert.Equal(t, base, got, "moving a declaration must not change its identity")
}

func TestSpecHashSensitiveToShape(t *testing.T) {
	base, err := SpecHash(boxSpec())
	require.NoError(t, err)

	for name, mutate := range map[string]func(*TemplateSpec){
		"field default": func(s *TemplateSpec) { s.Fields[0].Default = "6" },
		"field order":   func(s *TemplateSpec) { s.Fields[0], s.Fields[1] = s.Fields[1], s.Fields[0] },
		"output":        func(s *TemplateSpec) { s.Output = "*widget.Grid" },
		"hooks":         func(s *TemplateSpec) { s.Hooks = false },
		"import":        func(s *TemplateSpec) { s.OutputImport = "example.com/other" },
	} {
		mutated := boxSpec()
		mutate(mutated)
		got, err := SpecHash(mutated)
		require.NoError(t, err, name)
		assert.NotEqual(t, base, got, "mutation %q must change the hash", name)
	}
}

func TestSpecHashDistinguishesTaggedEmptyDefault(t *testing.T) {
	tagged := boxSpec()
	tagged.Fields[0].Default = ""
	tagged.Fields[0].Tagged = true

	untagged := boxSpec()
	untagged.Fields[0].Default = ""
	untagged.Fields[0].Tagged = false

	a, err := SpecHash(tagged)
	require.NoError(t, err)
	b, err := SpecHash(untagged)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFieldLookup(t *testing.T) {
	spec := boxSpec()
	require.NotNil(t, spec.Field("Padding"))
	assert.Equal(t, "int", spec.Field("Padding").Type)
	assert.Nil(t, spec.Field("Missing"))
	assert.Equal(t, "models.go:12", spec.Pos())
}
