package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenarioArgs = []string{
	"--ph", "7", "--hardness", "90", "--solids", "400", "--chloramines", "2",
	"--sulfate", "300", "--conductivity", "200", "--organic-carbon", "2",
	"--trihalomethanes", "0.09", "--turbidity", "2",
}

// execute runs the root command against a fresh database and returns stdout.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--db", dbPath))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		for _, c := range []*cobra.Command{rootCmd, predictCmd, rangesCmd, historyCmd} {
			resetFlags(c.Flags())
			resetFlags(c.PersistentFlags())
		}
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores defaults, since cobra keeps flag state between runs.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestPredictCommand_Text(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	args := append([]string{"predict", "--classifier", "fixed"}, scenarioArgs...)

	out, err := execute(t, db, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "This water sample is likely not potable with a confidence level of 50.00%.")
	assert.Contains(t, out, "All parameters are within WHO-recommended ranges for potable water.")

	hist, err := execute(t, db, "history")
	require.NoError(t, err)
	assert.Contains(t, hist, "not potable")
}

func TestPredictCommand_JSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	args := append([]string{"predict", "--classifier", "fixed", "--json"}, scenarioArgs...)
	args = append(args, "--ph", "9")

	out, err := execute(t, db, args...)
	require.NoError(t, err)

	var got predictionJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "not potable", got.Label)
	assert.Equal(t, "50.00", got.ConfidenceText)
	assert.Equal(t, []string{"ph"}, got.OutOfRange)
}

func TestPredictCommand_MissingParameter(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := execute(t, db, "predict", "--classifier", "fixed", "--ph", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing features")
}

func TestPredictCommand_RejectsInvalidInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	args := append([]string{"predict", "--classifier", "fixed"}, scenarioArgs...)
	args = append(args, "--ph", "15")

	_, err := execute(t, db, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pH Level")
}

func TestPredictCommand_MissingModel(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	args := append([]string{"predict", "--model", filepath.Join(t.TempDir(), "none.json")}, scenarioArgs...)

	_, err := execute(t, db, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load model")
}

func TestRangesCommand(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "cli.db"), "ranges")
	require.NoError(t, err)
	assert.Contains(t, out, "Trihalomethanes")
	assert.Contains(t, out, "provisional")
}
