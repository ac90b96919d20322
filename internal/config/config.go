// Package config provides hierarchical configuration management for the
// release tool using koanf. Values are loaded with priority: environment
// variables (RELEASE_ prefix) > project config (.release/config.yml) >
// user config (~/.config/release/config.yml) > defaults. A .env file in
// the working directory is honored before environment variables are read.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// CommitsConfig controls commit classification.
type CommitsConfig struct {
	// TypesMinor and TypesPatch map commit types to bump levels. A type
	// listed in both bumps minor.
	TypesMinor []string `koanf:"types_minor" yaml:"types_minor"`
	TypesPatch []string `koanf:"types_patch" yaml:"types_patch"`
	// BreakingPattern is matched case-insensitively against the full
	// commit message to detect breaking changes outside the header.
	BreakingPattern string `koanf:"breaking_pattern" yaml:"breaking_pattern"`
	// SkipReleasePatterns flag commits for exclusion from version
	// computation and changelog rendering.
	SkipReleasePatterns []string `koanf:"skip_release_patterns" yaml:"skip_release_patterns"`
}

// VersionConfig controls version derivation.
type VersionConfig struct {
	// InitialVersion is used for the first release, when no tag exists yet.
	InitialVersion string `koanf:"initial_version" yaml:"initial_version" validate:"required"`
	// VersionFiles lists additional files whose version assignment is
	// rewritten on execute (besides the tag itself).
	VersionFiles []string `koanf:"version_files" yaml:"version_files"`
}

// ChangelogSection maps commit types to an extra changelog category.
type ChangelogSection struct {
	Label string   `koanf:"label" yaml:"label"`
	Types []string `koanf:"types" yaml:"types"`
}

// ChangelogConfig controls changelog rendering.
type ChangelogConfig struct {
	Enabled        bool               `koanf:"enabled" yaml:"enabled"`
	Path           string             `koanf:"path" yaml:"path"`
	IncludeAuthors bool               `koanf:"include_authors" yaml:"include_authors"`
	IncludeOthers  bool               `koanf:"include_others" yaml:"include_others"`
	ExtraSections  []ChangelogSection `koanf:"extra_sections" yaml:"extra_sections"`
}

// GitHubConfig identifies the hosting repository for PR links.
type GitHubConfig struct {
	Owner  string `koanf:"owner" yaml:"owner"`
	Repo   string `koanf:"repo" yaml:"repo"`
	UsePRs bool   `koanf:"use_prs" yaml:"use_prs"`
}

// HooksConfig lists shell commands run around a version bump. Commands may
// reference {version}, {prev_version}, and {bump_type}.
type HooksConfig struct {
	PreBump  []string `koanf:"pre_bump" yaml:"pre_bump"`
	PostBump []string `koanf:"post_bump" yaml:"post_bump"`
}

// Configuration is the fully merged release tool configuration.
type Configuration struct {
	DefaultBranch string `koanf:"default_branch" yaml:"default_branch"`
	// AllowDirty permits running against a worktree with uncommitted changes.
	AllowDirty bool `koanf:"allow_dirty" yaml:"allow_dirty"`
	// TagPrefix is prepended to the version when naming the release tag.
	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix"`
	// MaxTitleLength bounds PR title validation (0 disables the check).
	MaxTitleLength int `koanf:"max_title_length" yaml:"max_title_length" validate:"min=0,max=500"`

	Commits   CommitsConfig   `koanf:"commits" yaml:"commits"`
	Version   VersionConfig   `koanf:"version" yaml:"version"`
	Changelog ChangelogConfig `koanf:"changelog" yaml:"changelog"`
	GitHub    GitHubConfig    `koanf:"github" yaml:"github"`
	Hooks     HooksConfig     `koanf:"hooks" yaml:"hooks"`
}

// TagName returns the tag for a version string, e.g. "v1.2.0".
func (c *Configuration) TagName(version string) string {
	return c.TagPrefix + version
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path
	// (default: .release/config.yml).
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file (used in tests).
	SkipUserConfig bool
	// SkipDotEnv suppresses .env loading (used in tests).
	SkipDotEnv bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if !opts.SkipDotEnv {
		// Missing .env is the normal case, not an error.
		_ = godotenv.Load()
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level config file if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		// No resolvable home directory; user config simply does not apply.
		return nil
	}
	if !fileExists(path) {
		return nil
	}
	return loadYAMLConfig(k, path, "user")
}

// loadProjectConfig loads the project-level config file if present.
// Supports a custom path override (for testing).
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	return loadYAMLConfig(k, path, "project")
}

// loadYAMLConfig validates and loads a YAML config file.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("RELEASE_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Nested keys use double underscores:
// RELEASE_TAG_PREFIX -> tag_prefix, RELEASE_GITHUB__OWNER -> github.owner.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "RELEASE_"))
	return strings.ReplaceAll(key, "__", ".")
}
