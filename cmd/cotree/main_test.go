package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tardani95/ppl-sub000/Trees/CoTree"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Writer = &out
	densities = CoTree.DefaultDensities
	err := app.Run(append([]string{"cotree"}, args...))
	return out.String(), err
}

func TestDump(t *testing.T) {
	out, err := run(t, "dump", "0", "0", "7")
	require.NoError(t, err)
	require.Equal(t, "size 1, reserved 3, depth 2\n 2\n   _ _\n2: 7\n", out)

	_, err = run(t, "dump", "1", "x")
	require.Error(t, err)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[densities]\nmax_percent = 80\nmin_percent = 30\nmin_leaf_percent = 2\n"), 0o644))
	_, err := run(t, "--config", good, "dump", "1", "2", "3", "4")
	require.NoError(t, err)
	require.Equal(t, CoTree.Densities{MaxPercent: 80, MinPercent: 30, MinLeafPercent: 2}, densities)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[densities]\nmax_percent = 80\nmin_percent = 45\n"), 0o644))
	_, err = run(t, "--config", bad, "dump", "1")
	require.ErrorIs(t, err, CoTree.ErrDensities)

	_, err = run(t, "--log-level", "loud", "dump", "1")
	require.Error(t, err)
}

func TestMeasure(t *testing.T) {
	_, err := run(t, "measure", "--n", "2000", "--steps", "4", "--seed", "3")
	require.NoError(t, err)
	_, err = run(t, "measure", "--n", "0")
	require.Error(t, err)
}
