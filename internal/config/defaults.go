package config

// GetDefaultConfigTemplate returns a fully commented config template that
// helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Release configuration
# Values can be overridden via RELEASE_* environment variables
# (nested keys use double underscores, e.g. RELEASE_GITHUB__OWNER).

default_branch: main                  # Branch releases are cut from
allow_dirty: false                    # Allow uncommitted changes in the worktree
tag_prefix: "v"                       # Prefix for release tags (v1.2.3)
max_title_length: 0                   # Max PR title length for check-title (0 = unlimited)

# Commit classification
commits:
  types_minor: [feat]                 # Commit types that bump minor
  types_patch: [fix, perf]            # Commit types that bump patch
  breaking_pattern: "BREAKING[ -]CHANGE:"   # Body marker for breaking changes
  skip_release_patterns:              # Markers that exclude a commit entirely
    - "[skip release]"
    - "[release skip]"
    - "[no release]"

# Version derivation
version:
  initial_version: 0.1.0              # Used for the very first release
  version_files: []                   # Extra files with a version assignment to rewrite

# Changelog rendering
changelog:
  enabled: true
  path: CHANGELOG.md
  include_authors: false              # Append "(by <author>)" to entries
  include_others: false               # Render unmapped commit types under "Other Changes"
  extra_sections: []                  # e.g. [{label: Documentation, types: [docs]}]

# GitHub integration (PR links in changelog entries)
github:
  owner: ""
  repo: ""
  use_prs: false

# Shell hooks around a version bump; {version}, {prev_version}, {bump_type}
# are expanded in each command.
hooks:
  pre_bump: []
  post_bump: []
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"default_branch":   "main",
		"allow_dirty":      false,
		"tag_prefix":       "v",
		"max_title_length": 0,
		// commits: conventional-commit classification defaults. feat bumps
		// minor; fix and perf bump patch; everything else contributes nothing.
		"commits": map[string]interface{}{
			"types_minor":      []string{"feat"},
			"types_patch":      []string{"fix", "perf"},
			"breaking_pattern": `BREAKING[ -]CHANGE:`,
			"skip_release_patterns": []string{
				"[skip release]", "[release skip]", "[no release]",
			},
		},
		"version": map[string]interface{}{
			"initial_version": "0.1.0",
			"version_files":   []string{},
		},
		"changelog": map[string]interface{}{
			"enabled":         true,
			"path":            "CHANGELOG.md",
			"include_authors": false,
			"include_others":  false,
		},
		"github": map[string]interface{}{
			"owner":   "",
			"repo":    "",
			"use_prs": false,
		},
		"hooks": map[string]interface{}{
			"pre_bump":  []string{},
			"post_bump": []string{},
		},
	}
}
