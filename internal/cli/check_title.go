package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mikeleppane/release-py/internal/commits"
	"github.com/mikeleppane/release-py/internal/errors"
)

var (
	checkTitleFileFlag         string
	checkTitleRequireScopeFlag bool
	checkTitleTypesFlag        []string
)

var checkTitleCmd = &cobra.Command{
	Use:   "check-title [title]",
	Short: "Validate a pull request title against the conventional commit format",
	Long: `Validate that a pull request title follows the conventional commit
format 'type(scope): description'.

Validation is strict: unknown types and malformed headers fail, so CI can
reject a PR before its squash merge pollutes the release history. The
maximum length comes from max_title_length in the config.

With --file, titles are read one per line and validated as a batch; the
command fails if any title is invalid.`,
	Example: `  release check-title "feat(api): add pagination"
  release check-title --require-scope "fix: handle empty input"
  release check-title --file titles.txt`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckTitle(cmd, args)
	},
}

func init() {
	checkTitleCmd.GroupID = GroupValidation
	rootCmd.AddCommand(checkTitleCmd)

	checkTitleCmd.Flags().StringVar(&checkTitleFileFlag, "file", "", "Validate titles from a file, one per line")
	checkTitleCmd.Flags().BoolVar(&checkTitleRequireScopeFlag, "require-scope", false, "Reject titles without a (scope) segment")
	checkTitleCmd.Flags().StringSliceVar(&checkTitleTypesFlag, "types", nil, "Allowed commit types (default: the conventional set)")
}

func runCheckTitle(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := loadConfig()
	if err != nil {
		errors.FprintError(errOut, errors.AsCLIError(err))
		return NewExitError(ExitValidationFailed)
	}

	titles, err := collectTitles(args)
	if err != nil {
		errors.FprintError(errOut, errors.AsCLIError(err))
		return NewExitError(ExitInvalidArguments)
	}

	opts := commits.TitleValidationOptions{
		AllowedTypes: checkTitleTypesFlag,
		RequireScope: checkTitleRequireScopeFlag,
		MaxLength:    cfg.MaxTitleLength,
	}

	results := commits.ValidateTitles(titles, opts)

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	failed := 0
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(out, "%s %s\n", green("✓"), r.Title)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", red("✗"), r.Title)
		fmt.Fprintf(out, "  %s\n", r.Err)
	}

	if failed > 0 {
		fmt.Fprintf(errOut, "\n%d of %d title(s) invalid\n", failed, len(results))
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// collectTitles resolves the titles to validate from the argument or the
// --file flag. Exactly one source must be given.
func collectTitles(args []string) ([]string, error) {
	if checkTitleFileFlag != "" && len(args) > 0 {
		return nil, errors.NewArgumentErrorWithUsage(
			"pass a title argument or --file, not both",
			"release check-title [title] | release check-title --file <path>")
	}

	if checkTitleFileFlag == "" {
		if len(args) == 0 {
			return nil, errors.NewArgumentErrorWithUsage(
				"no title to validate",
				"release check-title [title] | release check-title --file <path>",
				"pass the PR title as an argument, or --file with one title per line")
		}
		return []string{args[0]}, nil
	}

	f, err := os.Open(checkTitleFileFlag)
	if err != nil {
		return nil, errors.NewArgumentError(fmt.Sprintf("opening %s: %v", checkTitleFileFlag, err))
	}
	defer f.Close()

	var titles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			titles = append(titles, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewArgumentError(fmt.Sprintf("reading %s: %v", checkTitleFileFlag, err))
	}
	if len(titles) == 0 {
		return nil, errors.NewArgumentError(fmt.Sprintf("%s contains no titles", checkTitleFileFlag))
	}
	return titles, nil
}
