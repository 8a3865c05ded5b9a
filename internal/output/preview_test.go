package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffLines(t *testing.T) {
	before := "NAME = \"repy\"\nVERSION = \"0.3.2\"\n"
	after := "NAME = \"repy\"\nVERSION = \"0.4.0\"\n"

	got := diffLines([]byte(before), []byte(after))
	assert.Equal(t, "- VERSION = \"0.3.2\"\n+ VERSION = \"0.4.0\"", got)

	assert.Equal(t, "", diffLines([]byte("same\n"), []byte("same\n")))
}

func TestDiffYAML(t *testing.T) {
	before := []byte("version: 1.3.2\nreplicas: 3\n")
	after := []byte("version: 1.4.0\nreplicas: 3\n")

	got, err := diffYAML("deploy.yml", before, after)
	require.NoError(t, err)
	assert.Contains(t, got, "version")
	assert.Contains(t, got, "1.3.2")
	assert.Contains(t, got, "1.4.0")
}

func TestDiffYAML_NoChanges(t *testing.T) {
	content := []byte("version: 1.3.2\n")

	got, err := diffYAML("deploy.yml", content, content)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestRenderChanges(t *testing.T) {
	changes := []FileChange{
		{
			Path:   "setup.py",
			Before: []byte("version = '1.3.2'\n"),
			After:  []byte("version = '1.4.0'\n"),
		},
	}

	got := RenderChanges(changes, NoColorStyles())
	assert.True(t, strings.HasPrefix(got, "Modified:"))
	assert.Contains(t, got, "~ setup.py")
	assert.Contains(t, got, "- version = '1.3.2'")
	assert.Contains(t, got, "+ version = '1.4.0'")
	assert.Contains(t, got, "Summary: 1 file(s) modified")
}

func TestRenderChanges_Empty(t *testing.T) {
	assert.Equal(t, "No file changes.\n", RenderChanges(nil, NoColorStyles()))
}
