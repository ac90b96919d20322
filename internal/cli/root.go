// Package cli wires the release commands together with cobra.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mikeleppane/release-py/internal/config"
	"github.com/mikeleppane/release-py/internal/errors"
)

// Command group IDs used to organize help output.
const (
	GroupRelease       = "release"
	GroupValidation    = "validation"
	GroupConfiguration = "configuration"
)

var (
	configPathFlag string
	repoPathFlag   string
	noColorFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "release",
	Short: "Automated semantic releases from conventional commits",
	Long: `release automates version and changelog management.

It reads the conventional commit history since the last release tag,
computes the next semantic version, and prepends a generated section to the
changelog. Runs are dry-run by default; pass --execute to apply changes.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELEASE_*)
  2. Project config (.release/config.yml)
  3. User config (~/.config/release/config.yml)
  4. Built-in defaults

See https://github.com/mikeleppane/release-py for documentation.`,
	Example: `  # Preview the next release
  release update

  # Apply it
  release update --execute

  # Cut a pre-release on the alpha channel
  release update --prerelease alpha --execute

  # Validate a pull request title
  release check-title "feat(api): add pagination"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupValidation, Title: "Validation Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "Path to project config file")
	rootCmd.PersistentFlags().StringVarP(&repoPathFlag, "path", "p", "", "Path to the git repository (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// Execute runs the root command. Errors are printed here; the caller only
// maps the returned error to an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	if _, ok := err.(*exitError); !ok {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			errors.PrintError(cliErr)
		} else {
			errors.PrintError(errors.Wrap(err, errors.Release))
		}
	}
	return err
}

// loadConfig loads the merged configuration, honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration")
	}
	return cfg, nil
}
