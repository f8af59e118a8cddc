package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"b": 2,
		"a": 1,
		"c": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(data))
}

func TestMarshalCanonicalNestedDeterminism(t *testing.T) {
	obj := map[string]any{
		"fields": []any{
			map[string]any{"name": "Padding", "type": "int"},
			map[string]any{"name": "Spacing", "type": "int"},
		},
		"name": "BoxTemplate",
	}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(obj)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical("*widget.Box[<T>] & co")
	require.NoError(t, err)
	assert.Equal(t, `"*widget.Box[<T>] & co"`, string(data))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// e + combining acute normalizes to the precomposed form.
	decomposed := "é"
	precomposed := "é"

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(3.14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")

	_, err = MarshalCanonical(map[string]any{"x": 1.0})
	require.Error(t, err)
}

func TestMarshalCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null is forbidden")
}

func TestMarshalCanonicalBoolsAndInts(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"hooks": true,
		"line":  int64(42),
		"n":     7,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"hooks":true,"line":42,"n":7}`, string(data))
}
