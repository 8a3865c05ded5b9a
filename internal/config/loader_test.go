package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
branch: main
tagMessagePrefix: cut
local: true
log:
  timestamps: false
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, "cut", cfg.TagMessagePrefix)
	assert.True(t, cfg.Local)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.False(t, *cfg.Log.Timestamps)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Branch)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "branch: [not: closed\n")

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "branch: main\n")
	t.Setenv("RELTAG_BRANCH", "develop")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "develop", cfg.Branch)
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := NewLoader().LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBranch, cfg.Branch)
	assert.Equal(t, DefaultTagMessagePrefix, cfg.TagMessagePrefix)
}

func TestConfigFileExists(t *testing.T) {
	path := writeConfig(t, "branch: main\n")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)
}
