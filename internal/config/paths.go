package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/release/config.yml
// - macOS: ~/Library/Application Support/release/config.yml
// - Windows: %APPDATA%\release\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "release", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// .release/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".release", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".release"
}
