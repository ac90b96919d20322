// Package semver implements semantic version parsing, comparison, and bumping
// for the release engine. It supports an optional pre-release suffix of the
// form "-<channel>.<number>" (e.g., "1.3.0-alpha.2") on top of the usual
// major.minor.patch core.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// BumpLevel describes how far a version moves in a single release step.
// Levels are totally ordered: None < Patch < Minor < Major. Combining
// levels across a commit set always takes the maximum.
type BumpLevel int

const (
	None BumpLevel = iota
	Patch
	Minor
	Major
)

// String returns a human-readable name for the bump level.
func (b BumpLevel) String() string {
	switch b {
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "none"
	}
}

// Max returns the greater of two bump levels.
func Max(a, b BumpLevel) BumpLevel {
	if a > b {
		return a
	}
	return b
}

// PreRelease identifies a pre-release channel and its sequence number.
// Number starts at 1 and increments per publication on the same channel.
type PreRelease struct {
	Channel string
	Number  int
}

// Version is a semantic version. A nil *Version means "no prior version"
// (first release). Version values are treated as immutable; all operations
// return new values.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease *PreRelease
}

// Parse parses a version string like "1.2.3" or "1.2.3-rc.1".
// A leading "v" is tolerated since git tags commonly carry one.
func Parse(s string) (Version, error) {
	orig := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	core := s
	var pre *PreRelease
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		core = s[:idx]
		parsed, err := parsePreRelease(s[idx+1:])
		if err != nil {
			return Version{}, fmt.Errorf("parsing version %q: %w", orig, err)
		}
		pre = parsed
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("parsing version %q: expected major.minor.patch", orig)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("parsing version %q: invalid component %q", orig, p)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], PreRelease: pre}, nil
}

// parsePreRelease parses the suffix after the first dash, e.g. "alpha.2".
// A bare channel with no number ("alpha") is normalized to number 1.
func parsePreRelease(s string) (*PreRelease, error) {
	if s == "" {
		return nil, fmt.Errorf("empty pre-release suffix")
	}

	channel := s
	number := 1
	if idx := strings.LastIndexByte(s, '.'); idx >= 0 {
		n, err := strconv.Atoi(s[idx+1:])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid pre-release number %q", s[idx+1:])
		}
		channel = s[:idx]
		number = n
	}
	if channel == "" {
		return nil, fmt.Errorf("empty pre-release channel")
	}

	return &PreRelease{Channel: channel, Number: number}, nil
}

// String renders the version without any tag prefix.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.PreRelease != nil {
		s += fmt.Sprintf("-%s.%d", v.PreRelease.Channel, v.PreRelease.Number)
	}
	return s
}

// Core returns the version with any pre-release suffix removed.
func (v Version) Core() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// IsPreRelease reports whether the version carries a pre-release suffix.
func (v Version) IsPreRelease() bool {
	return v.PreRelease != nil
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater
// than other. Ordering: major, minor, patch, then pre-release presence
// (a version without pre-release is greater than the same core with one),
// then channel name lexicographically, then number.
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.PreRelease == nil && other.PreRelease == nil:
		return 0
	case v.PreRelease == nil:
		return 1
	case other.PreRelease == nil:
		return -1
	}

	if v.PreRelease.Channel != other.PreRelease.Channel {
		if v.PreRelease.Channel < other.PreRelease.Channel {
			return -1
		}
		return 1
	}
	return compareInt(v.PreRelease.Number, other.PreRelease.Number)
}

// GreaterThan reports whether v is strictly greater than other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Bump returns the version one step above v's core at the given level.
// Any pre-release suffix on v is discarded; callers re-apply a channel
// via WithPreRelease when needed. Bumping by None returns the core
// unchanged, which is how a pre-release finalizes into a stable version.
func (v Version) Bump(level BumpLevel) Version {
	switch level {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v.Core()
	}
}

// WithPreRelease returns a copy of v carrying the given channel and number.
func (v Version) WithPreRelease(channel string, number int) Version {
	return Version{
		Major:      v.Major,
		Minor:      v.Minor,
		Patch:      v.Patch,
		PreRelease: &PreRelease{Channel: channel, Number: number},
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
