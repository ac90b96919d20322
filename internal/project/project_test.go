package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		want    string
	}{
		"toml assignment": {
			content: "[project]\nname = \"thing\"\nversion = \"1.2.3\"\n",
			want:    "1.2.3",
		},
		"dunder assignment": {
			content: "__version__ = \"0.4.0\"\n",
			want:    "0.4.0",
		},
		"upper assignment": {
			content: "VERSION = '2.0.0'\n",
			want:    "2.0.0",
		},
		"yaml key": {
			content: "name: thing\nversion: 1.0.0\n",
			want:    "1.0.0",
		},
		"bare version file": {
			content: "3.1.4\n",
			want:    "3.1.4",
		},
		"prerelease": {
			content: "version = \"1.3.0-alpha.2\"\n",
			want:    "1.3.0-alpha.2",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "versionfile", tc.content)
			got, err := ReadVersion(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadVersion_NotFound(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "noversion.txt", "nothing to see here\n")
	_, err := ReadVersion(path)

	var notFound *VersionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, path, notFound.Path)
}

func TestUpdateVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		want    string
	}{
		"toml preserves surroundings": {
			content: "# build config\n[project]\nversion = \"1.2.3\"  # keep in sync\nname = \"thing\"\n",
			want:    "# build config\n[project]\nversion = \"2.0.0\"  # keep in sync\nname = \"thing\"\n",
		},
		"dunder": {
			content: "__version__ = '0.4.0'\n",
			want:    "__version__ = '2.0.0'\n",
		},
		"yaml key": {
			content: "version: 1.0.0\nname: thing\n",
			want:    "version: 2.0.0\nname: thing\n",
		},
		"bare version file": {
			content: "1.9.9\n",
			want:    "2.0.0\n",
		},
		"only first match changes": {
			content: "version = \"1.0.0\"\nversion = \"1.0.0\"\n",
			want:    "version = \"2.0.0\"\nversion = \"1.0.0\"\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "versionfile", tc.content)
			require.NoError(t, UpdateVersion(path, "2.0.0"))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))
		})
	}
}

func TestUpdateVersion_NotFound(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "noversion.txt", "nothing here\n")
	err := UpdateVersion(path, "2.0.0")

	var notFound *VersionNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateVersion_MissingFile(t *testing.T) {
	t.Parallel()

	err := UpdateVersion(filepath.Join(t.TempDir(), "absent"), "2.0.0")
	assert.Error(t, err)
}
