package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical(t *testing.T) {
	tests := []struct {
		name     string
		sym      Symbol
		expected string
	}{
		{"number", NewNumber(-12), "-12"},
		{"string", NewString("a<b>&c"), `"a<b>&c"`},
		{"constant", NewConstant("red"), `{"args":[],"name":"red"}`},
		{"function", NewFunction("f", NewNumber(1), NewString("x")), `{"args":[1,"x"],"name":"f"}`},
		{"tuple", NewTuple(NewNumber(1)), `{"args":[1],"name":""}`},
		{"infimum", Infimum{}, `{"special":"inf"}`},
		{"supremum", Supremum{}, `{"special":"sup"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.sym)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestMarshalCanonicalNFC(t *testing.T) {
	// "e" + combining acute accent normalizes to a single code point
	decomposed := NewString("e\u0301")
	composed := NewString("\u00e9")

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(composed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalNil(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(NewFunction("f", nil))
	assert.Error(t, err)
}
