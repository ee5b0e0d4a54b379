package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	name := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(name, []byte("1+2\n\n  \n3 * 4\n"), 0o644))

	lines, err := readinput(name, false)
	require.NoError(t, err)
	require.Equal(t, []string{"1+2", "3 * 4"}, lines)

	require.NoError(t, os.Remove(name))

	_, err = readinput(name, false)
	require.Error(t, err)

	lines, err = readinput("", false)
	require.NoError(t, err)
	require.Nil(t, lines)
}
