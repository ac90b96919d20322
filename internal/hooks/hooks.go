// Package hooks runs user-configured shell commands around a version bump.
// Commands come from configuration and may reference the release through
// {version}, {prev_version} and {bump_type} placeholders.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Vars holds the placeholder values expanded into hook commands.
type Vars struct {
	Version     string
	PrevVersion string
	BumpType    string
}

// HookError reports a hook command that exited non-zero. Stderr carries the
// command's captured error output for diagnostics.
type HookError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook failed: %s: %v", e.Command, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Runner executes hook commands in a fixed working directory.
type Runner struct {
	Dir string
	// Out receives a line per hook plus the hook's stdout. Nil discards.
	Out io.Writer
}

// Expand substitutes the placeholder variables into a command string.
func Expand(command string, vars Vars) string {
	replacer := strings.NewReplacer(
		"{version}", vars.Version,
		"{prev_version}", vars.PrevVersion,
		"{bump_type}", vars.BumpType,
	)
	return replacer.Replace(command)
}

// Run executes the given commands in order through the shell, stopping at
// the first failure.
func (r *Runner) Run(ctx context.Context, phase string, commands []string, vars Vars) error {
	for _, command := range commands {
		expanded := Expand(command, vars)
		r.printf("  Running %s hook: %s\n", phase, expanded)

		cmd := exec.CommandContext(ctx, "sh", "-c", expanded)
		cmd.Dir = r.Dir

		var stdout, stderr strings.Builder
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return &HookError{
				Command: expanded,
				Stderr:  strings.TrimSpace(stderr.String()),
				Err:     err,
			}
		}
		if out := strings.TrimSpace(stdout.String()); out != "" {
			r.printf("    %s\n", out)
		}
	}
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, format, args...)
}
