// Package resolver computes the next semantic version from the current
// version and a set of classified commits. It owns the bump-level rules:
// the pre-1.0 rule for breaking changes, explicit override validation,
// and pre-release channel numbering.
package resolver

import (
	"fmt"

	"github.com/mikeleppane/release-py/internal/commits"
	"github.com/mikeleppane/release-py/internal/semver"
)

// SkipReasonNoCommits is the reason recorded when no commit warrants a
// release. This is the expected steady state between releases, not an error.
const SkipReasonNoCommits = "no releasable commits"

// Config carries the resolver's configuration.
type Config struct {
	Types commits.TypeConfig
	// InitialVersion is used verbatim for the first release, when there is
	// no current version to bump from.
	InitialVersion semver.Version
}

// Request describes a single resolution.
type Request struct {
	// Current is the latest released version, or nil for a first release.
	Current *semver.Version
	// Override, when set, takes absolute precedence over computed bumps.
	// It must be strictly greater than Current.
	Override *semver.Version
	// Channel requests a pre-release on the named channel (e.g. "alpha").
	Channel string
}

// Resolution is the version-side outcome of a release decision. The engine
// combines it with the rendered changelog into the final release plan.
type Resolution struct {
	Previous     *semver.Version
	Next         semver.Version
	Bump         semver.BumpLevel
	Skipped      bool
	SkipReason   string
	Overridden   bool
	FirstRelease bool
}

// InvalidOverrideError reports an explicit version override that is not
// strictly greater than the current version.
type InvalidOverrideError struct {
	Override semver.Version
	Current  semver.Version
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("override version %s is not greater than current version %s",
		e.Override, e.Current)
}

// Resolve computes the next version for the given commit set. Skipped
// commits never contribute to the bump level. The only error condition is
// an invalid override; everything else resolves to a deterministic result.
func Resolve(classified []commits.Classified, cfg Config, req Request) (Resolution, error) {
	res := Resolution{Previous: req.Current}

	if req.Override != nil {
		if req.Current != nil && !req.Override.GreaterThan(*req.Current) {
			return Resolution{}, &InvalidOverrideError{Override: *req.Override, Current: *req.Current}
		}
		res.Next = *req.Override
		res.Overridden = true
		return res, nil
	}

	if req.Current == nil {
		res.FirstRelease = true
		res.Next = cfg.InitialVersion
		if req.Channel != "" {
			res.Next = res.Next.WithPreRelease(req.Channel, 1)
		}
		return res, nil
	}
	current := *req.Current

	res.Bump = bumpLevel(classified, cfg.Types, current)

	if req.Channel != "" {
		return resolvePreRelease(res, current, req.Channel), nil
	}

	if res.Bump == semver.None {
		if current.IsPreRelease() {
			// Finalize: same core, pre-release suffix dropped.
			res.Next = current.Core()
			return res, nil
		}
		res.Skipped = true
		res.SkipReason = SkipReasonNoCommits
		res.Next = current
		return res, nil
	}

	res.Next = current.Bump(res.Bump)
	return res, nil
}

// bumpLevel combines the contributions of all non-skipped commits, taking
// the maximum. Breaking changes map to major, or to minor while the current
// version is still pre-1.0: a 0.x line is never auto-promoted to 1.0.0
// without an explicit override.
func bumpLevel(classified []commits.Classified, types commits.TypeConfig, current semver.Version) semver.BumpLevel {
	level := semver.None
	for _, c := range classified {
		var contribution semver.BumpLevel
		switch commits.BumpFor(c, types) {
		case commits.BumpBreaking:
			if current.Major == 0 {
				contribution = semver.Minor
			} else {
				contribution = semver.Major
			}
		case commits.BumpMinor:
			contribution = semver.Minor
		case commits.BumpPatch:
			contribution = semver.Patch
		default:
			contribution = semver.None
		}
		level = semver.Max(level, contribution)
	}
	return level
}

// resolvePreRelease applies the computed bump to the version core and
// attaches the requested channel. The sequence number restarts at 1 when
// the channel or core changes, and increments when re-invoked for the same
// pending release on the same channel.
func resolvePreRelease(res Resolution, current semver.Version, channel string) Resolution {
	if res.Bump == semver.None && !current.IsPreRelease() {
		res.Skipped = true
		res.SkipReason = SkipReasonNoCommits
		res.Next = current
		return res
	}

	base := current.Bump(res.Bump)

	number := 1
	if current.IsPreRelease() &&
		current.PreRelease.Channel == channel &&
		base == current.Core() {
		number = current.PreRelease.Number + 1
	}

	res.Next = base.WithPreRelease(channel, number)
	return res
}
