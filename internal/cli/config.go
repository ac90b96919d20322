package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mikeleppane/release-py/internal/config"
	"github.com/mikeleppane/release-py/internal/errors"
	"github.com/mikeleppane/release-py/internal/output"
)

var configInitForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage release configuration",
	Long: `Manage release configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELEASE_*)
  2. Project config (.release/config.yml)
  3. User config (~/.config/release/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the merged configuration
  release config show

  # Create a project config with the defaults as a starting point
  release config init`,
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the merged configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write a commented default config to .release/config.yml",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitForceFlag, "force", false, "Overwrite an existing project config")
}

func runConfigShow(cmd *cobra.Command) error {
	errOut := cmd.ErrOrStderr()

	cfg, err := loadConfig()
	if err != nil {
		errors.FprintError(errOut, errors.AsCLIError(err))
		return NewExitError(ExitValidationFailed)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		errors.FprintError(errOut, errors.WrapWithMessage(err, errors.Configuration, "rendering configuration"))
		return NewExitError(ExitValidationFailed)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	dir := filepath.Join(repoDir(), config.ProjectConfigDir())
	path := filepath.Join(repoDir(), config.ProjectConfigPath())

	if _, err := os.Stat(path); err == nil && !configInitForceFlag {
		errors.FprintError(errOut, errors.NewConfigError(
			fmt.Sprintf("%s already exists", path),
			"pass --force to overwrite it"))
		return NewExitError(ExitInvalidArguments)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		errors.FprintError(errOut, errors.WrapWithMessage(err, errors.Configuration, "creating config directory"))
		return NewExitError(ExitValidationFailed)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		errors.FprintError(errOut, errors.WrapWithMessage(err, errors.Configuration, "writing config file"))
		return NewExitError(ExitValidationFailed)
	}

	output.PrintStep(out, fmt.Sprintf("Created %s", path))
	output.PrintDim(out, "Edit it to match your project, then run: release update")
	return nil
}
