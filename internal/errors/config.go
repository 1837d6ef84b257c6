// Package errors provides error types for districtboard.
// This file contains configuration-related errors.
package errors

import (
	"fmt"
	"strings"
)

// ConfigNotFound creates an error for missing configuration.
func ConfigNotFound(configPath string) *BoardError {
	return &BoardError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("configuration file not found: %s", configPath),
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Create a default configuration:
    districtboard init

  or run without one; defaults are used when no config file exists.`,
	}
}

// ConfigParseError creates an error for YAML parsing failures.
func ConfigParseError(configPath string, parseErr error) *BoardError {
	return &BoardError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("failed to parse configuration: %s", configPath),
		Cause:   parseErr,
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Check your config.yaml for syntax errors:
  1. Ensure proper YAML indentation (use spaces, not tabs)
  2. Lists need a '- ' prefix or [a, b] flow style
  3. Durations and cron specs need quotes when they contain '@' or spaces`,
	}
}

// ConfigValidationError creates an error for invalid configuration values.
func ConfigValidationError(field, message string, validOptions []string) *BoardError {
	suggestion := fmt.Sprintf("Fix the %q field in .districtboard/config.yaml", field)
	if len(validOptions) > 0 {
		suggestion += fmt.Sprintf("\n  Valid options: %s", strings.Join(validOptions, ", "))
	}

	return &BoardError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s", message),
		Details: map[string]string{
			"field": field,
		},
		Suggestion: suggestion,
	}
}
