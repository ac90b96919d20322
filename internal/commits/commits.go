// Package commits parses raw git commit messages into structured
// conventional-commit records. Classification is total: malformed or
// unrecognized messages degrade to the "other" type instead of erroring,
// so a release run never aborts on a single unparseable message.
package commits

import (
	"regexp"
	"strings"
)

// TypeOther is the catch-all commit type assigned when the header does not
// parse or the type is not configured for any bump level.
const TypeOther = "other"

// DefaultBreakingPattern matches the conventional breaking-change footer
// marker anywhere in the commit body.
const DefaultBreakingPattern = `BREAKING[ -]CHANGE:`

// headerPattern matches a conventional commit header: type(scope)!: description.
// Scope and the breaking "!" marker are optional.
var headerPattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9_-]*)(?:\(([^)]*)\))?(!)?:\s*(.+)$`)

// Raw is a commit as supplied by the git collaborator. It is never mutated.
type Raw struct {
	Hash     string
	Message  string
	Author   string
	PRNumber int // associated pull request number, 0 if unknown
}

// Classified is the structured record derived once from a Raw commit.
type Classified struct {
	Type        string
	Scope       string
	IsBreaking  bool
	Description string
	// Skipped marks commits matching a skip-release pattern. They are
	// excluded from version computation and changelog rendering, but
	// still returned so callers can report why a commit was ignored.
	Skipped bool
	Raw     Raw
}

// TypeConfig carries the classifier's configuration knobs.
type TypeConfig struct {
	// TypesMinor and TypesPatch are matched case-sensitively against the
	// parsed header type. A type listed in both sets bumps minor.
	TypesMinor []string
	TypesPatch []string
	// BreakingPattern is a regular expression matched case-insensitively
	// against the full commit message. Empty means DefaultBreakingPattern.
	BreakingPattern string
	// SkipPatterns are substrings (matched case-insensitively anywhere in
	// the message) that flag a commit for exclusion, e.g. "[skip release]".
	SkipPatterns []string
}

// Classify parses a raw commit into a Classified record. It never fails;
// headers that do not follow the conventional format come back as TypeOther
// with no bump contribution.
func Classify(raw Raw, cfg TypeConfig) Classified {
	c := Classified{Type: TypeOther, Raw: raw}

	header, _, _ := strings.Cut(raw.Message, "\n")
	header = strings.TrimSpace(header)
	c.Description = header

	if m := headerPattern.FindStringSubmatch(header); m != nil {
		c.Type = m[1]
		c.Scope = m[2]
		c.IsBreaking = m[3] == "!"
		c.Description = strings.TrimSpace(m[4])
	}

	if !c.IsBreaking && matchesBreakingMarker(raw.Message, cfg.BreakingPattern) {
		c.IsBreaking = true
	}

	c.Skipped = matchesSkipPattern(raw.Message, cfg.SkipPatterns)

	return c
}

// ClassifyAll classifies a sequence of raw commits, preserving order.
func ClassifyAll(raws []Raw, cfg TypeConfig) []Classified {
	out := make([]Classified, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Classify(raw, cfg))
	}
	return out
}

// Releasable filters out skip-flagged commits.
func Releasable(classified []Classified) []Classified {
	out := make([]Classified, 0, len(classified))
	for _, c := range classified {
		if !c.Skipped {
			out = append(out, c)
		}
	}
	return out
}

// BumpFor returns the bump contribution of a single classified commit under
// the given configuration, ignoring the pre-1.0 rule (the resolver applies
// that against the current version). Skipped commits contribute nothing.
func BumpFor(c Classified, cfg TypeConfig) BumpContribution {
	if c.Skipped {
		return BumpNone
	}
	if c.IsBreaking {
		return BumpBreaking
	}
	// Minor takes precedence when a type appears in both lists.
	if containsString(cfg.TypesMinor, c.Type) {
		return BumpMinor
	}
	if containsString(cfg.TypesPatch, c.Type) {
		return BumpPatch
	}
	return BumpNone
}

// BumpContribution is a commit's raw effect on the version, before the
// resolver maps breaking changes through the pre-1.0 rule.
type BumpContribution int

const (
	BumpNone BumpContribution = iota
	BumpPatch
	BumpMinor
	BumpBreaking
)

func matchesBreakingMarker(message, pattern string) bool {
	if pattern == "" {
		pattern = DefaultBreakingPattern
	}
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		// An invalid configured pattern falls back to the default rather
		// than silently disabling breaking detection.
		re = regexp.MustCompile(`(?i)` + DefaultBreakingPattern)
	}
	return re.MatchString(message)
}

func matchesSkipPattern(message string, patterns []string) bool {
	lower := strings.ToLower(message)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
