package config

import (
	"fmt"
	"regexp"
	"strings"
)

// branchRegex accepts the git ref-name subset a release branch can use:
// no whitespace, no control characters, none of git's forbidden symbols.
var branchRegex = regexp.MustCompile(`^[^\s~^:?*\[\\]+$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a loaded configuration for values git would reject later.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Branch != "" && !branchRegex.MatchString(cfg.Branch) {
		errs = append(errs, ValidationError{
			Field:   "branch",
			Message: fmt.Sprintf("%q is not a valid git branch name", cfg.Branch),
		})
	}
	if strings.HasPrefix(cfg.Branch, "-") || strings.HasSuffix(cfg.Branch, ".lock") {
		errs = append(errs, ValidationError{
			Field:   "branch",
			Message: fmt.Sprintf("%q is not a valid git branch name", cfg.Branch),
		})
	}

	if strings.ContainsAny(cfg.TagMessagePrefix, "\n\r") {
		errs = append(errs, ValidationError{
			Field:   "tagMessagePrefix",
			Message: "must be a single line",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
