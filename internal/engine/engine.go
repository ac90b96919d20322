// Package engine orchestrates a release decision: it classifies raw
// commits, resolves the next version, renders the changelog, and yields a
// single immutable release plan. The engine is a pure function of its
// inputs: no I/O, no retries, no clock access. Dry-run and execute modes
// share the exact same plan, so preview and release can never drift.
package engine

import (
	"github.com/mikeleppane/release-py/internal/changelog"
	"github.com/mikeleppane/release-py/internal/commits"
	"github.com/mikeleppane/release-py/internal/config"
	"github.com/mikeleppane/release-py/internal/resolver"
	"github.com/mikeleppane/release-py/internal/semver"
)

// State names the stages a decision passes through. Terminal states are
// StateApplied, StateSkipped, and StateFailed; Decide reports the terminal
// state it reached alongside the plan.
type State int

const (
	StateIdle State = iota
	StateClassifying
	StateResolving
	StateRendering
	StatePlanned
	StateApplied
	StateSkipped
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClassifying:
		return "classifying"
	case StateResolving:
		return "resolving"
	case StateRendering:
		return "rendering"
	case StatePlanned:
		return "planned"
	case StateApplied:
		return "applied"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReleasePlan is the sole artifact handed to external collaborators. All
// fields are fully determined and self-consistent: NextVersion textually
// matches the version heading embedded in ChangelogText, and TagName is
// the configured prefix plus NextVersion.
type ReleasePlan struct {
	PreviousVersion *semver.Version
	NextVersion     semver.Version
	BumpLevel       semver.BumpLevel
	ChangelogText   string
	TagName         string
	Skipped         bool
	SkipReason      string
	FirstRelease    bool
	Overridden      bool
	// Commits holds every classified commit, including skip-flagged ones,
	// so diagnostic tooling can report why a commit was ignored.
	Commits []commits.Classified
}

// Request carries the caller-supplied inputs for one decision.
type Request struct {
	// RawCommits is the commit history since the last release marker,
	// oldest first.
	RawCommits []commits.Raw
	// CurrentVersion is the latest released version, nil for first release.
	CurrentVersion *semver.Version
	// Override forces a specific next version; it must be strictly greater
	// than CurrentVersion.
	Override *semver.Version
	// Channel requests a pre-release on the named channel.
	Channel string
	// Date is the release date injected by the caller (the engine never
	// reads the clock, keeping decisions reproducible). Optional.
	Date string
	// PriorChangelog is the existing changelog body, preserved verbatim
	// below the new section.
	PriorChangelog string
}

// Engine runs release decisions against a fixed configuration. It holds no
// mutable state, so one engine can serve any number of decisions, including
// concurrently.
type Engine struct {
	cfg *config.Configuration
}

// New creates an engine for the given configuration.
func New(cfg *config.Configuration) *Engine {
	return &Engine{cfg: cfg}
}

// Decide runs the full pipeline and returns the release plan together with
// the terminal state reached. On error the state is StateFailed and no
// partial plan is returned; otherwise it is StateSkipped or StateApplied.
// Re-running Decide on unchanged inputs yields a byte-identical plan.
func (e *Engine) Decide(req Request) (*ReleasePlan, State, error) {
	typeCfg := e.typeConfig()

	classified := commits.ClassifyAll(req.RawCommits, typeCfg)

	initial, err := semver.Parse(e.cfg.Version.InitialVersion)
	if err != nil {
		return nil, StateFailed, err
	}
	res, err := resolver.Resolve(classified, resolver.Config{
		Types:          typeCfg,
		InitialVersion: initial,
	}, resolver.Request{
		Current:  req.CurrentVersion,
		Override: req.Override,
		Channel:  req.Channel,
	})
	if err != nil {
		return nil, StateFailed, err
	}

	plan := &ReleasePlan{
		PreviousVersion: res.Previous,
		NextVersion:     res.Next,
		BumpLevel:       res.Bump,
		TagName:         e.cfg.TagName(res.Next.String()),
		Skipped:         res.Skipped,
		SkipReason:      res.SkipReason,
		FirstRelease:    res.FirstRelease,
		Overridden:      res.Overridden,
		Commits:         classified,
	}

	if res.Skipped {
		return plan, StateSkipped, nil
	}

	if e.cfg.Changelog.Enabled {
		// An override skips bump computation but the changelog still
		// covers the full commit set.
		plan.ChangelogText = changelog.Render(
			classified, req.PriorChangelog, res.Next, req.Date, e.changelogConfig())
	}

	return plan, StateApplied, nil
}

func (e *Engine) typeConfig() commits.TypeConfig {
	return commits.TypeConfig{
		TypesMinor:      e.cfg.Commits.TypesMinor,
		TypesPatch:      e.cfg.Commits.TypesPatch,
		BreakingPattern: e.cfg.Commits.BreakingPattern,
		SkipPatterns:    e.cfg.Commits.SkipReleasePatterns,
	}
}

func (e *Engine) changelogConfig() changelog.Config {
	extra := make([]changelog.Section, 0, len(e.cfg.Changelog.ExtraSections))
	for _, s := range e.cfg.Changelog.ExtraSections {
		extra = append(extra, changelog.Section{Label: s.Label, Types: s.Types})
	}
	return changelog.Config{
		UseGitHubPRs:   e.cfg.GitHub.UsePRs,
		RepoOwner:      e.cfg.GitHub.Owner,
		RepoName:       e.cfg.GitHub.Repo,
		IncludeAuthors: e.cfg.Changelog.IncludeAuthors,
		ExtraSections:  extra,
		IncludeOthers:  e.cfg.Changelog.IncludeOthers,
	}
}
