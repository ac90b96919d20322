package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	vars := Vars{Version: "1.3.0", PrevVersion: "1.2.0", BumpType: "minor"}

	tests := map[string]struct {
		command string
		want    string
	}{
		"all placeholders": {
			command: "notify {prev_version} -> {version} ({bump_type})",
			want:    "notify 1.2.0 -> 1.3.0 (minor)",
		},
		"no placeholders": {
			command: "make build",
			want:    "make build",
		},
		"repeated placeholder": {
			command: "echo {version} {version}",
			want:    "echo 1.3.0 1.3.0",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Expand(tc.command, vars))
		})
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out strings.Builder
	runner := &Runner{Dir: dir, Out: &out}

	err := runner.Run(context.Background(), "pre-bump",
		[]string{"echo {version} > marker.txt"},
		Vars{Version: "2.0.0", PrevVersion: "1.0.0", BumpType: "major"},
	)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "marker.txt"))
	require.NoError(t, err)
	assert.Equal(t, "2.0.0\n", string(data))
	assert.Contains(t, out.String(), "pre-bump")
}

func TestRunner_Run_StopsOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := &Runner{Dir: dir}

	err := runner.Run(context.Background(), "post-bump",
		[]string{"false", "touch after.txt"},
		Vars{},
	)

	var hookErr *HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "false", hookErr.Command)

	_, statErr := os.Stat(filepath.Join(dir, "after.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_Run_CapturesStderr(t *testing.T) {
	t.Parallel()

	runner := &Runner{Dir: t.TempDir()}

	err := runner.Run(context.Background(), "pre-bump",
		[]string{"echo boom >&2; exit 3"},
		Vars{},
	)

	var hookErr *HookError
	require.ErrorAs(t, err, &hookErr)
	assert.Equal(t, "boom", hookErr.Stderr)
}

func TestRunner_Run_NilOutput(t *testing.T) {
	t.Parallel()

	runner := &Runner{Dir: t.TempDir()}
	assert.NoError(t, runner.Run(context.Background(), "pre-bump", []string{"true"}, Vars{}))
}
