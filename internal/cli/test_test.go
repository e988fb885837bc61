package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyFixture copies the points scenario and its schemas into a temp dir
// and returns the scenarios directory.
func copyFixture(t *testing.T, withGolden bool) string {
	t.Helper()
	root := t.TempDir()

	copyFile := func(src, dst string) {
		data, err := os.ReadFile(src)
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
		require.NoError(t, os.WriteFile(dst, data, 0o644))
	}

	copyFile("testdata/schemas/shapes.cue", filepath.Join(root, "schemas", "shapes.cue"))
	copyFile("testdata/scenarios/points.yaml", filepath.Join(root, "scenarios", "points.yaml"))
	if withGolden {
		copyFile("testdata/scenarios/golden/points.golden", filepath.Join(root, "scenarios", "golden", "points.golden"))
	}
	return filepath.Join(root, "scenarios")
}

func TestTest_Passes(t *testing.T) {
	out, _, err := execute(t, "test", "testdata/scenarios")
	require.NoError(t, err)
	assert.Equal(t, "✓ points\n\n1 passed, 0 failed, 1 total\n", out)
}

func TestTest_JSON(t *testing.T) {
	out, _, err := execute(t, "test", "testdata/scenarios", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "points", resp.Data.Scenarios[0].Name)
	assert.True(t, resp.Data.Scenarios[0].Pass)
}

func TestTest_GoldenMismatch(t *testing.T) {
	dir := copyFixture(t, false)
	golden := filepath.Join(dir, "golden", "points.golden")
	require.NoError(t, os.MkdirAll(filepath.Dir(golden), 0o755))
	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ points")
	assert.Contains(t, out, "results do not match golden file")
	assert.Contains(t, out, "0 passed, 1 failed, 1 total")
}

func TestTest_Update(t *testing.T) {
	dir := copyFixture(t, false)

	_, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "golden", "points.golden"))
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/scenarios/golden/points.golden")
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)
}

func TestTest_WithoutGolden(t *testing.T) {
	dir := copyFixture(t, false)

	out, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
	assert.NoFileExists(t, filepath.Join(dir, "golden", "points.golden"))
}

func TestTest_FailingExpectation(t *testing.T) {
	dir := copyFixture(t, false)
	broken := `name: wrong
description: wrong expectation
schemas: ../schemas
facts: "point(1,1)."
queries:
  - name: all
    select: point
    expect: ["point(2,2)"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(broken), 0o644))

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ points")
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTest_Filter(t *testing.T) {
	out, _, err := execute(t, "test", "testdata/scenarios", "--filter", "poi*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ points")

	out, _, err = execute(t, "test", "testdata/scenarios", "--filter", "colour*")
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTest_MissingDirectory(t *testing.T) {
	out, _, err := execute(t, "test", "testdata/nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "golden", "points.golden"), goldenFilePath(filepath.Join("a", "points.yaml")))
}
