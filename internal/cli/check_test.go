package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck_ValidText(t *testing.T) {
	out, _, err := execute(t, "check", "testdata/schemas")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ 2 predicate(s) valid")
	assert.Contains(t, out, "  point: point/2 (x integer, y integer) indexed: x\n")
	assert.Contains(t, out, "  colour: colour/2 (name constant, shade string)\n")
}

func TestCheck_ValidJSON(t *testing.T) {
	out, _, err := execute(t, "check", "testdata/schemas", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	require.Len(t, resp.Data.Predicates, 2)

	point := resp.Data.Predicates[0]
	assert.Equal(t, "point", point.Label)
	assert.Equal(t, 2, point.Arity)
	assert.Equal(t, []string{"x integer", "y integer"}, point.Fields)
	assert.Equal(t, []string{"x"}, point.Indexed)
}

func TestCheck_InvalidDeclarations(t *testing.T) {
	out, _, err := execute(t, "check", "testdata/broken")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ Check failed")
	assert.Contains(t, out, "E104")
	assert.Contains(t, out, "E105")
	assert.Contains(t, out, "bad.cue")
}

func TestCheck_InvalidDeclarationsJSON(t *testing.T) {
	out, _, err := execute(t, "check", "testdata/broken", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E104", resp.Error.Code)
}

func TestCheck_MissingDirectory(t *testing.T) {
	out, _, err := execute(t, "check", "testdata/nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestCheck_NoCUEFiles(t *testing.T) {
	out, _, err := execute(t, "check", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E003]")
}

func TestCheck_RequiresDirectory(t *testing.T) {
	_, _, err := execute(t, "check")
	require.Error(t, err)
}
