package commits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultTypeConfig() TypeConfig {
	return TypeConfig{
		TypesMinor:   []string{"feat"},
		TypesPatch:   []string{"fix", "perf"},
		SkipPatterns: []string{"[skip release]", "[release skip]", "[no release]"},
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		message string
		want    Classified
	}{
		"simple feat": {
			message: "feat: add new feature",
			want:    Classified{Type: "feat", Description: "add new feature"},
		},
		"with scope": {
			message: "fix(api): handle null response",
			want:    Classified{Type: "fix", Scope: "api", Description: "handle null response"},
		},
		"breaking with exclamation": {
			message: "feat!: redesign API",
			want:    Classified{Type: "feat", IsBreaking: true, Description: "redesign API"},
		},
		"breaking with scope and exclamation": {
			message: "feat(core)!: change config format",
			want:    Classified{Type: "feat", Scope: "core", IsBreaking: true, Description: "change config format"},
		},
		"breaking marker in body": {
			message: "feat: new feature\n\nBREAKING CHANGE: old API removed",
			want:    Classified{Type: "feat", IsBreaking: true, Description: "new feature"},
		},
		"breaking marker with dash": {
			message: "fix: cleanup\n\nbreaking-change: removed flag",
			want:    Classified{Type: "fix", IsBreaking: true, Description: "cleanup"},
		},
		"non-conventional": {
			message: "Updated the readme file",
			want:    Classified{Type: TypeOther, Description: "Updated the readme file"},
		},
		"colon without description": {
			message: "feat: ",
			want:    Classified{Type: TypeOther, Description: "feat:"},
		},
		"unknown type stays typed": {
			message: "wip: half-finished thing",
			want:    Classified{Type: "wip", Description: "half-finished thing"},
		},
		"skip marker in header": {
			message: "fix: hotfix [skip release]",
			want:    Classified{Type: "fix", Description: "hotfix [skip release]", Skipped: true},
		},
		"skip marker case-insensitive": {
			message: "chore: bump deps [SKIP RELEASE]",
			want:    Classified{Type: "chore", Description: "bump deps [SKIP RELEASE]", Skipped: true},
		},
		"skip marker in body": {
			message: "feat: thing\n\ndetails [no release]",
			want:    Classified{Type: "feat", Description: "thing", Skipped: true},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			raw := Raw{Hash: "abc123", Message: tc.message, Author: "Test"}
			got := Classify(raw, defaultTypeConfig())

			tc.want.Raw = raw
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify_CustomBreakingPattern(t *testing.T) {
	t.Parallel()

	cfg := defaultTypeConfig()
	cfg.BreakingPattern = `MAJOR:`

	got := Classify(Raw{Message: "feat: x\n\nmajor: everything changed"}, cfg)
	assert.True(t, got.IsBreaking)

	got = Classify(Raw{Message: "feat: x\n\nBREAKING CHANGE: ignored now"}, cfg)
	assert.False(t, got.IsBreaking, "default marker should not match with a custom pattern")
}

func TestClassify_InvalidBreakingPatternFallsBack(t *testing.T) {
	t.Parallel()

	cfg := defaultTypeConfig()
	cfg.BreakingPattern = `([`

	got := Classify(Raw{Message: "feat: x\n\nBREAKING CHANGE: gone"}, cfg)
	assert.True(t, got.IsBreaking)
}

func TestReleasable(t *testing.T) {
	t.Parallel()

	cfg := defaultTypeConfig()
	classified := ClassifyAll([]Raw{
		{Hash: "a", Message: "feat: keep"},
		{Hash: "b", Message: "fix: drop [skip release]"},
		{Hash: "c", Message: "docs: keep too"},
	}, cfg)

	kept := Releasable(classified)
	assert.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].Raw.Hash)
	assert.Equal(t, "c", kept[1].Raw.Hash)
}

func TestBumpFor(t *testing.T) {
	t.Parallel()

	cfg := defaultTypeConfig()

	tests := map[string]struct {
		message string
		want    BumpContribution
	}{
		"feat is minor":           {message: "feat: x", want: BumpMinor},
		"fix is patch":            {message: "fix: x", want: BumpPatch},
		"perf is patch":           {message: "perf: x", want: BumpPatch},
		"breaking wins over type": {message: "fix!: x", want: BumpBreaking},
		"chore is none":           {message: "chore: x", want: BumpNone},
		"other is none":           {message: "not conventional", want: BumpNone},
		"case-sensitive type":    {message: "FEAT: x", want: BumpNone},
		"skipped contributes none": {message: "feat: x [skip release]", want: BumpNone},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := BumpFor(Classify(Raw{Message: tc.message}, cfg), cfg)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBumpFor_MinorWinsWhenTypeInBothLists(t *testing.T) {
	t.Parallel()

	cfg := TypeConfig{
		TypesMinor: []string{"feat", "change"},
		TypesPatch: []string{"fix", "change"},
	}

	got := BumpFor(Classify(Raw{Message: "change: dual-listed type"}, cfg), cfg)
	assert.Equal(t, BumpMinor, got)
}
