// Package project reads and rewrites version numbers embedded in project
// files. Updates are targeted regex replacements so surrounding formatting
// and comments survive untouched.
package project

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// versionPatterns are the assignment shapes recognized in version files, in
// the order they are tried. Each has exactly one capture group around the
// version value.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^__version__\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?m)^version\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?m)^VERSION\s*=\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?m)^version:\s*["']?([^"'\s]+)["']?\s*$`),
}

// VersionNotFoundError indicates no recognizable version assignment was
// found in a file.
type VersionNotFoundError struct {
	Path string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("no version assignment found in %s", e.Path)
}

// ReadVersion extracts the version string from the file at path. A file
// whose entire content is a bare version string (a VERSION file) is also
// accepted.
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading version file: %w", err)
	}
	content := string(data)

	for _, pattern := range versionPatterns {
		if m := pattern.FindStringSubmatch(content); m != nil {
			return m[1], nil
		}
	}

	if v := bareVersion(content); v != "" {
		return v, nil
	}
	return "", &VersionNotFoundError{Path: path}
}

// UpdateVersion rewrites the version assignment in the file at path to the
// given version. Only the first matching assignment changes; everything
// else in the file is preserved byte for byte.
func UpdateVersion(path, version string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading version file: %w", err)
	}
	content := string(data)

	for _, pattern := range versionPatterns {
		loc := pattern.FindStringSubmatchIndex(content)
		if loc == nil {
			continue
		}
		// Splice the new version into the capture group only.
		updated := content[:loc[2]] + version + content[loc[3]:]
		return writeFilePreservingMode(path, updated)
	}

	if bareVersion(content) != "" {
		updated := version + "\n"
		return writeFilePreservingMode(path, updated)
	}
	return &VersionNotFoundError{Path: path}
}

// bareVersion returns the trimmed content when the file holds nothing but a
// single version-like token, or "" otherwise.
func bareVersion(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t\n") {
		return ""
	}
	if !strings.ContainsAny(trimmed, "0123456789") {
		return ""
	}
	return trimmed
}

func writeFilePreservingMode(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat version file: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing version file: %w", err)
	}
	return nil
}
