// Package changelog renders classified commits into a markdown changelog
// section. Rendering is a pure string-formatting function: identical input
// produces byte-identical output, which keeps repeated dry-run/execute
// cycles safe. Prior changelog content is treated as an opaque string and
// only ever prepended to, never re-parsed or rewritten.
package changelog

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mikeleppane/release-py/internal/commits"
	"github.com/mikeleppane/release-py/internal/semver"
)

// Section maps one or more commit types to a rendered category heading.
type Section struct {
	Label string
	Types []string
}

// Config carries the changelog rendering knobs.
type Config struct {
	// UseGitHubPRs appends a pull request link to entries that carry an
	// associated PR number.
	UseGitHubPRs bool
	// RepoOwner and RepoName build the PR link URL. When either is empty
	// the PR reference is rendered as plain "(#N)" text.
	RepoOwner string
	RepoName  string
	// IncludeAuthors appends a "(by <author>)" suffix to each entry.
	IncludeAuthors bool
	// ExtraSections adds categories after the built-in ones, e.g.
	// {Label: "Documentation", Types: ["docs"]}.
	ExtraSections []Section
	// IncludeOthers renders commits of unmapped types under a trailing
	// "Other Changes" section instead of dropping them.
	IncludeOthers bool
}

// builtinSections are always rendered first, in this order. Breaking
// commits are collected separately and take precedence over type mapping.
var builtinSections = []Section{
	{Label: "Features", Types: []string{"feat"}},
	{Label: "Bug Fixes", Types: []string{"fix"}},
	{Label: "Performance", Types: []string{"perf"}},
}

const breakingLabel = "Breaking Changes"

// Render produces the changelog text for a release: the new version section
// followed by the prior changelog body, preserved verbatim. The date is
// injected by the caller so the core stays deterministic; when empty, the
// version heading carries no date.
func Render(classified []commits.Classified, prior string, version semver.Version, date string, cfg Config) string {
	section := RenderSection(classified, version, date, cfg)

	if prior == "" {
		return section
	}
	// The prior body is kept byte for byte, leading blank lines included;
	// only a single separator line is added between it and the new section.
	return section + "\n" + prior
}

// RenderSection renders only the new version section, without any prior
// content attached.
func RenderSection(classified []commits.Classified, version semver.Version, date string, cfg Config) string {
	var b strings.Builder

	if date != "" {
		fmt.Fprintf(&b, "## [%s] - %s\n", version, date)
	} else {
		fmt.Fprintf(&b, "## [%s]\n", version)
	}

	for _, group := range groupCommits(classified, cfg) {
		b.WriteString("\n### " + group.label + "\n\n")
		for _, c := range group.entries {
			b.WriteString(formatEntry(c, cfg) + "\n")
		}
	}

	return b.String()
}

type group struct {
	label   string
	entries []commits.Classified
}

// groupCommits buckets commits into ordered sections. Skip-flagged commits
// are excluded; breaking commits land in the breaking section regardless of
// type; the rest follow the type mapping, preserving commit order within
// each section. Empty sections are omitted.
func groupCommits(classified []commits.Classified, cfg Config) []group {
	sections := make([]Section, 0, 1+len(builtinSections)+len(cfg.ExtraSections))
	sections = append(sections, builtinSections...)
	sections = append(sections, cfg.ExtraSections...)

	byLabel := make(map[string][]commits.Classified)
	var breaking []commits.Classified

	for _, c := range classified {
		if c.Skipped {
			continue
		}
		if c.IsBreaking {
			breaking = append(breaking, c)
			continue
		}
		label := labelFor(c.Type, sections)
		if label == "" {
			if !cfg.IncludeOthers {
				continue
			}
			label = "Other Changes"
		}
		byLabel[label] = append(byLabel[label], c)
	}

	var groups []group
	if len(breaking) > 0 {
		groups = append(groups, group{label: breakingLabel, entries: breaking})
	}
	for _, s := range sections {
		if entries := byLabel[s.Label]; len(entries) > 0 {
			groups = append(groups, group{label: s.Label, entries: entries})
		}
	}
	if entries := byLabel["Other Changes"]; len(entries) > 0 {
		groups = append(groups, group{label: "Other Changes", entries: entries})
	}
	return groups
}

func labelFor(commitType string, sections []Section) string {
	for _, s := range sections {
		for _, t := range s.Types {
			if t == commitType {
				return s.Label
			}
		}
	}
	return ""
}

// formatEntry renders a single bullet line: optional bold scope prefix, the
// description with its first letter uppercased and a trailing period
// enforced, then optional PR link and author attribution.
func formatEntry(c commits.Classified, cfg Config) string {
	var b strings.Builder
	b.WriteString("- ")

	if c.Scope != "" {
		fmt.Fprintf(&b, "**%s:** ", c.Scope)
	}

	b.WriteString(punctuate(upperFirst(c.Description)))

	if cfg.UseGitHubPRs && c.Raw.PRNumber > 0 {
		if cfg.RepoOwner != "" && cfg.RepoName != "" {
			fmt.Fprintf(&b, " ([#%d](https://github.com/%s/%s/pull/%d))",
				c.Raw.PRNumber, cfg.RepoOwner, cfg.RepoName, c.Raw.PRNumber)
		} else {
			fmt.Fprintf(&b, " (#%d)", c.Raw.PRNumber)
		}
	}

	if cfg.IncludeAuthors && c.Raw.Author != "" {
		fmt.Fprintf(&b, " (by %s)", c.Raw.Author)
	}

	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func punctuate(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}
