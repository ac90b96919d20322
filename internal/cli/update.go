package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeleppane/release-py/internal/config"
	"github.com/mikeleppane/release-py/internal/engine"
	"github.com/mikeleppane/release-py/internal/errors"
	"github.com/mikeleppane/release-py/internal/git"
	"github.com/mikeleppane/release-py/internal/hooks"
	"github.com/mikeleppane/release-py/internal/output"
	"github.com/mikeleppane/release-py/internal/progress"
	"github.com/mikeleppane/release-py/internal/project"
	"github.com/mikeleppane/release-py/internal/resolver"
	"github.com/mikeleppane/release-py/internal/semver"
)

var (
	updateExecuteFlag    bool
	updateVersionFlag    string
	updatePrereleaseFlag string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Compute and apply the next version and changelog",
	Long: `Compute the next release from the commits since the last release tag.

By default this is a dry run: the planned version bump and changelog section
are shown but nothing is written. Pass --execute to update version files,
prepend the changelog section, and run configured hooks.

The bump is derived from conventional commit types: breaking changes bump
major (minor before 1.0.0), feat bumps minor, fix and perf bump patch.
Commits carrying a skip marker such as [skip release] are ignored.`,
	Example: `  # Preview
  release update

  # Apply
  release update --execute

  # Force a specific version
  release update --version 2.0.0 --execute

  # Start or continue an alpha pre-release
  release update --prerelease alpha --execute`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd)
	},
}

func init() {
	updateCmd.GroupID = GroupRelease
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&updateExecuteFlag, "execute", false, "Apply changes instead of previewing them")
	updateCmd.Flags().StringVar(&updateVersionFlag, "version", "", "Override the computed next version")
	updateCmd.Flags().StringVar(&updatePrereleaseFlag, "prerelease", "", "Pre-release channel (e.g. alpha, beta, rc)")
}

func runUpdate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := loadConfig()
	if err != nil {
		errors.FprintError(errOut, errors.AsCLIError(err))
		return NewExitError(ExitValidationFailed)
	}

	repo, err := git.Open(repoPathFlag)
	if err != nil {
		errors.FprintError(errOut, errors.Wrap(err, errors.Repository,
			"run the command inside a git repository, or pass --path"))
		return NewExitError(ExitRepositoryError)
	}

	if !cfg.AllowDirty {
		dirty, err := repo.IsDirty()
		if err != nil {
			errors.FprintError(errOut, errors.Wrap(err, errors.Repository))
			return NewExitError(ExitRepositoryError)
		}
		if dirty {
			errors.FprintError(errOut, errors.NewRepositoryError(
				"repository has uncommitted changes",
				"commit or stash your changes",
				"or set allow_dirty: true in the config"))
			return NewExitError(ExitRepositoryError)
		}
	}

	req, err := buildRequest(cfg, repo)
	if err != nil {
		cliErr := errors.AsCLIError(err)
		errors.FprintError(errOut, cliErr)
		if cliErr != nil && cliErr.Category == errors.Repository {
			return NewExitError(ExitRepositoryError)
		}
		return NewExitError(ExitInvalidArguments)
	}

	plan, _, err := engine.New(cfg).Decide(*req)
	if err != nil {
		var invalid *resolver.InvalidOverrideError
		if stderrors.As(err, &invalid) {
			errors.FprintError(errOut, errors.NewArgumentError(invalid.Error(),
				"pass a version greater than the current one, or drop --version"))
			return NewExitError(ExitInvalidArguments)
		}
		errors.FprintError(errOut, errors.WrapWithMessage(err, errors.Release, "planning release"))
		return NewExitError(ExitReleaseFailed)
	}

	if plan.Skipped {
		output.PrintSkip(out, plan.SkipReason)
		output.PrintDim(out, "Use --version to force a specific version.")
		return nil
	}

	from := ""
	if !plan.FirstRelease && plan.PreviousVersion != nil {
		from = plan.PreviousVersion.String()
	}
	output.PrintModeBanner(out, updateExecuteFlag, from, plan.NextVersion.String())

	if !updateExecuteFlag {
		printDryRunPreview(cmd, cfg, plan)
		return nil
	}

	return applyPlan(cmd, cfg, plan)
}

// buildRequest gathers the repository facts the engine needs: the latest
// release tag, the commits since it, the prior changelog, and the parsed
// override flag.
func buildRequest(cfg *config.Configuration, repo *git.Repository) (*engine.Request, error) {
	spin := progress.NewSpinner("Scanning repository...")
	spin.Start()
	defer spin.Stop()

	latestTag, err := repo.LatestTag(cfg.TagPrefix)
	if err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}

	var current *semver.Version
	if latestTag != "" {
		v, err := semver.Parse(strings.TrimPrefix(latestTag, cfg.TagPrefix))
		if err != nil {
			return nil, errors.WrapWithMessage(err, errors.Repository,
				fmt.Sprintf("parsing latest tag %s", latestTag))
		}
		current = &v
	}

	raws, err := repo.CommitsSince(latestTag)
	if err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}

	var override *semver.Version
	if updateVersionFlag != "" {
		v, err := semver.Parse(updateVersionFlag)
		if err != nil {
			return nil, errors.NewArgumentErrorWithUsage(
				fmt.Sprintf("invalid version %q: %v", updateVersionFlag, err),
				"release update --version <major.minor.patch>",
				"pass a semantic version like 1.2.0")
		}
		override = &v
	}

	prior := ""
	if cfg.Changelog.Enabled {
		if data, err := os.ReadFile(repoFilePath(cfg.Changelog.Path)); err == nil {
			prior = string(data)
		}
	}

	return &engine.Request{
		RawCommits:     raws,
		CurrentVersion: current,
		Override:       override,
		Channel:        updatePrereleaseFlag,
		Date:           time.Now().UTC().Format("2006-01-02"),
		PriorChangelog: prior,
	}, nil
}

func printDryRunPreview(cmd *cobra.Command, cfg *config.Configuration, plan *engine.ReleasePlan) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Would make the following changes:")
	for _, file := range cfg.Version.VersionFiles {
		fmt.Fprintf(out, "  • Update version in %s\n", file)
	}
	if cfg.Changelog.Enabled {
		fmt.Fprintf(out, "  • Prepend release section to %s\n", cfg.Changelog.Path)
	}
	fmt.Fprintf(out, "  • Tag as %s\n", plan.TagName)

	if cfg.Changelog.Enabled {
		fmt.Fprintln(out)
		output.PrintRule(out)
		fmt.Fprint(out, newSection(plan, cfg))
		output.PrintRule(out)
	}

	fmt.Fprintln(out)
	output.PrintDim(out, "Run with --execute to apply these changes.")
}

func applyPlan(cmd *cobra.Command, cfg *config.Configuration, plan *engine.ReleasePlan) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	runner := &hooks.Runner{Dir: repoDir(), Out: out}
	vars := hookVars(plan)

	if err := runner.Run(cmd.Context(), "pre-bump", cfg.Hooks.PreBump, vars); err != nil {
		errors.FprintError(errOut, errors.Wrap(err, errors.Release))
		return NewExitError(ExitReleaseFailed)
	}

	for _, file := range cfg.Version.VersionFiles {
		if err := project.UpdateVersion(repoFilePath(file), plan.NextVersion.String()); err != nil {
			errors.FprintError(errOut, errors.WrapWithMessage(err, errors.Release,
				fmt.Sprintf("updating %s", file)))
			return NewExitError(ExitReleaseFailed)
		}
		output.PrintStep(out, fmt.Sprintf("Updated version in %s", file))
	}

	if cfg.Changelog.Enabled {
		path := repoFilePath(cfg.Changelog.Path)
		if err := os.WriteFile(path, []byte(plan.ChangelogText), 0o644); err != nil {
			errors.FprintError(errOut, errors.WrapWithMessage(err, errors.Release, "writing changelog"))
			return NewExitError(ExitReleaseFailed)
		}
		output.PrintStep(out, fmt.Sprintf("Updated %s", cfg.Changelog.Path))
	}

	if err := runner.Run(cmd.Context(), "post-bump", cfg.Hooks.PostBump, vars); err != nil {
		errors.FprintError(errOut, errors.Wrap(err, errors.Release))
		return NewExitError(ExitReleaseFailed)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Successfully updated to version %s.\n", plan.NextVersion)
	output.PrintDim(out, "Next: review the changes, commit, and tag as %s.", plan.TagName)
	return nil
}

func hookVars(plan *engine.ReleasePlan) hooks.Vars {
	prev := ""
	if plan.PreviousVersion != nil {
		prev = plan.PreviousVersion.String()
	}
	return hooks.Vars{
		Version:     plan.NextVersion.String(),
		PrevVersion: prev,
		BumpType:    plan.BumpLevel.String(),
	}
}

// newSection returns just the freshly rendered section of the changelog,
// without the preserved prior body, for dry-run display.
func newSection(plan *engine.ReleasePlan, cfg *config.Configuration) string {
	prior := ""
	if data, err := os.ReadFile(repoFilePath(cfg.Changelog.Path)); err == nil {
		prior = string(data)
	}
	if prior == "" {
		return plan.ChangelogText
	}
	return strings.TrimSuffix(plan.ChangelogText, prior)
}

func repoDir() string {
	if repoPathFlag != "" {
		return repoPathFlag
	}
	return "."
}

func repoFilePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(repoDir(), name)
}
