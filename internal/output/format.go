// Package output provides terminal output formatting utilities for the
// release CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintRule prints a faint horizontal rule sized to the terminal, capped at
// 80 columns so wide terminals don't get a wall-to-wall line.
func PrintRule(out io.Writer) {
	width := GetTerminalWidth()
	if width > 80 {
		width = 80
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n", dim(strings.Repeat("-", width)))
}

// PrintModeBanner prints the DRY-RUN/EXECUTING banner with the version
// transition, e.g. "DRY-RUN - updating from 1.2.0 to 1.3.0".
func PrintModeBanner(out io.Writer, execute bool, from, to string) {
	mode := color.New(color.FgYellow, color.Bold).Sprint("DRY-RUN")
	if execute {
		mode = color.New(color.FgGreen, color.Bold).Sprint("EXECUTING")
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	if from == "" {
		fmt.Fprintf(out, "\n%s - first release, setting version to %s\n\n", mode, green(to))
		return
	}
	fmt.Fprintf(out, "\n%s - updating from %s to %s\n\n", mode, cyan(from), green(to))
}

// PrintStep prints a green checkmark line for a completed release step.
func PrintStep(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "  %s %s\n", green("✓"), cyan(message))
}

// PrintSkip prints a yellow notice for a skipped release.
func PrintSkip(out io.Writer, reason string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s\n", yellow("Nothing to release: "+reason))
}

// PrintDim prints secondary information in faint text.
func PrintDim(out io.Writer, format string, args ...any) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf(format, args...)))
}
