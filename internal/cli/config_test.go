package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	out, _, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "tag_prefix: v")
	assert.Contains(t, out, "initial_version: 0.1.0")
	assert.Contains(t, out, "path: CHANGELOG.md")
}

func TestConfigShow_ProjectOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tag_prefix: release-\n"), 0o644))

	out, _, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "tag_prefix: release-")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "config", "init", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	data, err := os.ReadFile(filepath.Join(dir, ".release", "config.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "initial_version: 0.1.0")
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "config", "init", "--path", dir)
	require.NoError(t, err)

	_, errOut, err := execute(t, "config", "init", "--path", dir)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Contains(t, errOut, "already exists")

	_, _, err = execute(t, "config", "init", "--path", dir, "--force")
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "release dev")
	assert.Contains(t, out, "commit:")
}
