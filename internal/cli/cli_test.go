package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherYAML = `states: [Rainy, Sunny]
observations: [Walk, Shop, Clean]
initial: [0.6, 0.4]
transition: [[0.7, 0.3], [0.4, 0.6]]
emission: [[0.1, 0.4, 0.5], [0.6, 0.3, 0.1]]
`

func writeModel(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "weather.yaml")
	require.NoError(t, os.WriteFile(path, []byte(weatherYAML), 0644))
	return path
}

// run executes the CLI with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New("test")
	var stdout, stderr bytes.Buffer
	c.stdin = strings.NewReader(stdin)
	c.stdout = &stdout
	c.stderr = &stderr
	c.rootCmd.SetOut(&stdout)
	c.rootCmd.SetErr(&stderr)
	c.rootCmd.SetArgs(append(args, "--silent"))
	err := c.Run()
	return stdout.String(), err
}

func TestForwardCommand(t *testing.T) {
	model := writeModel(t, t.TempDir())

	for _, scale := range []string{"log", "linear"} {
		out, err := run(t, "", "forward", "Walk", "Shop", "Clean", "--model", model, "--scale", scale)
		require.NoError(t, err)

		var res struct {
			Probability float64 `json:"probability"`
			Scale       string  `json:"scale"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.InDelta(t, 0.033612, res.Probability, 1e-9)
		assert.Equal(t, scale, res.Scale)
	}
}

func TestViterbiCommandFromStdin(t *testing.T) {
	model := writeModel(t, t.TempDir())

	out, err := run(t, "Walk Shop\nClean\n", "viterbi", "--model", model)
	require.NoError(t, err)

	var res struct {
		Path        []string `json:"path"`
		Probability float64  `json:"probability"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"Sunny", "Rainy", "Rainy"}, res.Path)
	assert.InDelta(t, 0.01344, res.Probability, 1e-9)
}

func TestPosteriorCommand(t *testing.T) {
	model := writeModel(t, t.TempDir())

	out, err := run(t, "", "posterior", "Walk", "Shop", "Clean", "--model", model)
	require.NoError(t, err)

	var res struct {
		States    []string             `json:"states"`
		Marginals []map[string]float64 `json:"marginals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"Sunny", "Rainy", "Rainy"}, res.States)
	assert.Len(t, res.Marginals, 3)
}

func TestInferErrors(t *testing.T) {
	model := writeModel(t, t.TempDir())

	_, err := run(t, "", "forward", "Walk", "Juggle", "--model", model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Juggle"`)

	_, err = run(t, "", "forward", "Walk", "--model", model, "--scale", "decibel")
	require.Error(t, err)

	_, err = run(t, "  \n", "viterbi", "--model", model)
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)

	out, err := run(t, "", "validate", model)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (2 states, 3 symbols)")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"states":["A","B"],"observations":["x"],"initial":[1],"transition":[[1,0],[0,1]],"emission":[[1],[1]]}`), 0644))
	_, err = run(t, "", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial")
}

func TestEvaluateCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.yaml"), []byte(weatherYAML), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sequences"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sequences", "days.txt"),
		[]byte("Walk/Sunny Shop/Rainy Clean/Rainy\n"), 0644))

	out, err := run(t, "", "evaluate", "--data-folder", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Sequences: 1 scored, 0 skipped, 0 impossible")
	assert.Contains(t, out, "State accuracy: 100.0% (3/3 states)")
}
