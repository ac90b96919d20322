package commits

import (
	"fmt"
	"strings"
)

// DefaultAllowedTypes lists the conventional commit types accepted by PR
// title validation when no custom set is configured.
var DefaultAllowedTypes = []string{
	"build", "chore", "ci", "docs", "feat", "fix", "perf",
	"refactor", "revert", "style", "test",
}

// TitleValidationOptions configures PR title validation.
type TitleValidationOptions struct {
	// AllowedTypes overrides DefaultAllowedTypes when non-empty.
	AllowedTypes []string
	// RequireScope rejects titles without a (scope) segment.
	RequireScope bool
	// MaxLength rejects titles longer than this many characters. 0 disables.
	MaxLength int
}

// TitleValidation is the outcome of validating a single PR title.
type TitleValidation struct {
	Title       string
	Valid       bool
	Err         string
	Type        string
	Scope       string
	Description string
	IsBreaking  bool
}

// ValidateTitle checks whether a pull request title follows the conventional
// commit format. Unlike Classify, validation is strict: unknown types and
// malformed headers are reported as errors so CI can reject the PR before
// it pollutes release history.
func ValidateTitle(title string, opts TitleValidationOptions) TitleValidation {
	result := TitleValidation{Title: title}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		result.Err = "PR title cannot be empty"
		return result
	}

	if opts.MaxLength > 0 && len(trimmed) > opts.MaxLength {
		result.Err = fmt.Sprintf("PR title exceeds %d characters", opts.MaxLength)
		return result
	}

	m := headerPattern.FindStringSubmatch(trimmed)
	if m == nil {
		result.Err = "PR title does not follow the conventional commit format 'type(scope): description'"
		return result
	}

	// Types are normalized to lowercase for validation; commit
	// classification itself stays case-sensitive.
	result.Type = strings.ToLower(m[1])
	result.Scope = m[2]
	result.IsBreaking = m[3] == "!"
	result.Description = strings.TrimSpace(m[4])

	allowed := opts.AllowedTypes
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}
	if !containsString(allowed, result.Type) {
		result.Err = fmt.Sprintf("Invalid commit type %q (allowed: %s)", result.Type, strings.Join(allowed, ", "))
		return result
	}

	if opts.RequireScope && result.Scope == "" {
		result.Err = "PR title must include a scope, e.g. 'feat(api): ...'"
		return result
	}

	result.Valid = true
	return result
}

// ValidateTitles validates a batch of PR titles with shared options.
func ValidateTitles(titles []string, opts TitleValidationOptions) []TitleValidation {
	results := make([]TitleValidation, 0, len(titles))
	for _, title := range titles {
		results = append(results, ValidateTitle(title, opts))
	}
	return results
}
