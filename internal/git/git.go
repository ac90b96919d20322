// Package git provides the repository collaborator for the release engine.
// It uses the go-git library to read tags and commit history so no git CLI
// installation is required. The release core itself never touches the
// repository; it consumes the plain commit records produced here.
package git

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/mikeleppane/release-py/internal/commits"
	"github.com/mikeleppane/release-py/internal/semver"
)

// prNumberPattern extracts a pull request number from merge and squash
// commit subjects, e.g. "Merge pull request #123" or "feat: thing (#123)".
var prNumberPattern = regexp.MustCompile(`#(\d+)`)

// Repository wraps an opened git repository.
type Repository struct {
	repo *gogit.Repository
	path string
}

// Open opens the repository at path, traversing up the directory tree to
// find the repository root. An empty path means the current directory.
func Open(path string) (*Repository, error) {
	if path == "" {
		path = "."
	}
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return &Repository{repo: repo, path: path}, nil
}

// IsDirty reports whether the worktree has uncommitted changes.
func (r *Repository) IsDirty() (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

// LatestTag returns the highest release tag carrying the given prefix,
// by semantic version order, or "" when no release tag exists yet.
// Tags whose suffix does not parse as a semantic version are ignored.
func (r *Repository) LatestTag(prefix string) (string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	var bestName string
	var bestVersion semver.Version
	found := false

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		v, err := semver.Parse(strings.TrimPrefix(name, prefix))
		if err != nil {
			return nil
		}
		if !found || v.GreaterThan(bestVersion) {
			bestName = name
			bestVersion = v
			found = true
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	return bestName, nil
}

// CommitsSince returns the commits reachable from HEAD but not from the
// given tag, oldest first, equivalent to "git log tag..HEAD". An empty tag
// returns the full history, which is the first-release case.
func (r *Repository) CommitsSince(tag string) ([]commits.Raw, error) {
	// The tag's whole ancestry is excluded rather than stopping the walk at
	// the tagged commit: in a merge history the first-parent chain hits the
	// boundary while side-branch parents are still unvisited, and stopping
	// there would drop merged commits from the release.
	released := make(map[plumbing.Hash]bool)
	if tag != "" {
		boundary, err := r.resolveTag(tag)
		if err != nil {
			return nil, err
		}
		if err := r.collectAncestry(boundary, released); err != nil {
			return nil, err
		}
	}

	log, err := r.repo.Log(&gogit.LogOptions{Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading commit log: %w", err)
	}

	var raws []commits.Raw
	err = log.ForEach(func(c *object.Commit) error {
		if released[c.Hash] {
			return nil
		}
		raws = append(raws, commits.Raw{
			Hash:     c.Hash.String(),
			Message:  strings.TrimRight(c.Message, "\n"),
			Author:   c.Author.Name,
			PRNumber: parsePRNumber(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking commit log: %w", err)
	}

	// git log yields newest first; the engine expects chronological order.
	reverse(raws)
	return raws, nil
}

// collectAncestry records every commit reachable from the given hash.
func (r *Repository) collectAncestry(from plumbing.Hash, seen map[plumbing.Hash]bool) error {
	log, err := r.repo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return fmt.Errorf("reading ancestry of %s: %w", from, err)
	}
	err = log.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking ancestry of %s: %w", from, err)
	}
	return nil
}

// resolveTag resolves a tag name to the commit it points at, peeling
// annotated tag objects.
func (r *Repository) resolveTag(tag string) (plumbing.Hash, error) {
	ref, err := r.repo.Reference(plumbing.NewTagReferenceName(tag), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", tag, err)
	}

	hash := ref.Hash()
	if tagObj, err := r.repo.TagObject(hash); err == nil {
		hash = tagObj.Target
	}
	return hash, nil
}

func parsePRNumber(message string) int {
	header, _, _ := strings.Cut(message, "\n")
	m := prNumberPattern.FindStringSubmatch(header)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func reverse(raws []commits.Raw) {
	for i, j := 0, len(raws)-1; i < j; i, j = i+1, j-1 {
		raws[i], raws[j] = raws[j], raws[i]
	}
}
