package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDir(t *testing.T) {
	r, err := LoadDir("testdata/schemas")
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	line, ok := r.Lookup("Line")
	require.True(t, ok)
	assert.Equal(t, "line", line.Name())

	colour, ok := r.Lookup("Colour")
	require.True(t, ok)
	def, ok := colour.Field("shade").Default()
	require.True(t, ok)
	assert.Equal(t, "plain", def)
}

func TestLoadDirCycle(t *testing.T) {
	_, err := LoadDir("testdata/broken")
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, ErrReferenceCycle, verrs[0].Code)
	assert.True(t, verrs[0].Pos.IsValid())
	assert.Contains(t, verrs[0].Error(), "cycle.cue")
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir("testdata/nope")
	assert.Error(t, err)
}

func TestLoadDirNoCUEFiles(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CUE files")
}
