package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_MalformedConfigWarnsAndRuns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	badConfig := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(badConfig, []byte("branch: [unclosed\n"), 0o600))

	// The warning must land on stderr at the default log level, after
	// logging is configured.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	oldStderr := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = oldStderr }()

	root := NewRootCmd()
	root.SetArgs([]string{"version", "--config", badConfig})
	execErr := root.Execute()

	require.NoError(t, w.Close())
	os.Stderr = oldStderr
	captured, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, execErr)
	assert.Contains(t, string(captured), "config file could not be loaded")
}
