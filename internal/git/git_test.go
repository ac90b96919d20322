package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	seq  int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) commit(message string) string {
	return r.commitWith(message)
}

// commitWith creates a commit with explicit parents, which lets tests build
// merge histories without a real branch checkout. With no parents the
// commit follows HEAD as usual.
func (r *testRepo) commitWith(message string, parents ...string) string {
	r.t.Helper()

	r.seq++
	path := filepath.Join(r.dir, "file.txt")
	require.NoError(r.t, os.WriteFile(path, []byte(message+"\n"), 0o644))

	worktree, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = worktree.Add("file.txt")
	require.NoError(r.t, err)

	hashes := make([]plumbing.Hash, 0, len(parents))
	for _, parent := range parents {
		hashes = append(hashes, plumbing.NewHash(parent))
	}
	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Parents: hashes,
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC),
		},
	})
	require.NoError(r.t, err)
	return hash.String()
}

// tag creates a lightweight tag pointing at HEAD.
func (r *testRepo) tag(name string) {
	r.t.Helper()

	head, err := r.repo.Head()
	require.NoError(r.t, err)
	_, err = r.repo.CreateTag(name, head.Hash(), nil)
	require.NoError(r.t, err)
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestIsDirty(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: initial")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	dirty, err := repo.IsDirty()
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(filepath.Join(r.dir, "file.txt"), []byte("changed"), 0o644))
	dirty, err = repo.IsDirty()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestLatestTag(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: one")
	r.tag("v0.9.0")
	r.commit("feat: two")
	r.tag("v0.10.0")
	r.commit("chore: unrelated tag target")
	r.tag("not-a-version")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	// Semantic ordering, not lexicographic: 0.10.0 > 0.9.0.
	tag, err := repo.LatestTag("v")
	require.NoError(t, err)
	assert.Equal(t, "v0.10.0", tag)
}

func TestLatestTag_NoTags(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: initial")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	tag, err := repo.LatestTag("v")
	require.NoError(t, err)
	assert.Empty(t, tag)
}

func TestCommitsSince(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: before release")
	r.tag("v1.0.0")
	r.commit("fix: first after")
	r.commit("feat: second after (#42)")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	raws, err := repo.CommitsSince("v1.0.0")
	require.NoError(t, err)

	require.Len(t, raws, 2)
	assert.Equal(t, "fix: first after", raws[0].Message)
	assert.Equal(t, "feat: second after (#42)", raws[1].Message)
	assert.Equal(t, 42, raws[1].PRNumber)
	assert.Equal(t, 0, raws[0].PRNumber)
	assert.Equal(t, "Test", raws[0].Author)
	assert.NotEmpty(t, raws[0].Hash)
}

func TestCommitsSince_MergeHistory(t *testing.T) {
	t.Parallel()

	// Side branch forked from the tagged commit and merged before HEAD,
	// the shape every PR-merge workflow produces. All commits past the tag
	// must survive, including the ones only reachable through the merge's
	// second parent.
	r := newTestRepo(t)
	tagged := r.commit("chore: base")
	r.tag("v1.0.0")
	feat := r.commit("feat: on main")
	fix := r.commitWith("fix: on side branch", tagged)
	r.commitWith("Merge branch 'side'", feat, fix)

	repo, err := Open(r.dir)
	require.NoError(t, err)

	raws, err := repo.CommitsSince("v1.0.0")
	require.NoError(t, err)

	messages := make([]string, 0, len(raws))
	for _, raw := range raws {
		messages = append(messages, raw.Message)
	}
	assert.Equal(t, []string{
		"feat: on main",
		"fix: on side branch",
		"Merge branch 'side'",
	}, messages)
}

func TestCommitsSince_EmptyTagReturnsFullHistory(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("chore: genesis")
	r.commit("feat: everything")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	raws, err := repo.CommitsSince("")
	require.NoError(t, err)

	require.Len(t, raws, 2)
	assert.Equal(t, "chore: genesis", raws[0].Message)
}

func TestCommitsSince_UnknownTag(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	r.commit("feat: x")

	repo, err := Open(r.dir)
	require.NoError(t, err)

	_, err = repo.CommitsSince("v9.9.9")
	assert.Error(t, err)
}
