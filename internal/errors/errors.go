// Package errors provides error types with actionable suggestions for
// districtboard. Errors carry enough context (file, column, option) for the
// dashboard to show the user what went wrong with their dataset.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrData indicates a dataset that could not be read or is missing columns.
	ErrData = errors.New("data error")
	// ErrFilter indicates an invalid filter or sort selection.
	ErrFilter = errors.New("filter error")
	// ErrRender indicates a chart or table could not be rendered.
	ErrRender = errors.New("render error")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// BoardError is the base error type for districtboard errors.
// It wraps an underlying error and provides additional context.
type BoardError struct {
	// Kind is the category of error (e.g., ErrData, ErrConfig).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., file path, column names).
	Details map[string]string
}

// Error implements the error interface.
func (e *BoardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *BoardError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether the error's kind matches the target.
func (e *BoardError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with details and suggestion.
func (e *BoardError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Details[k]))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n💡 Suggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *BoardError) WithDetails(key, value string) *BoardError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *BoardError) WithCause(cause error) *BoardError {
	e.Cause = cause
	return e
}

// New creates a new BoardError with the given kind and message.
func New(kind error, message string) *BoardError {
	return &BoardError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *BoardError {
	return &BoardError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *BoardError {
	return &BoardError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}

// FormatError renders err for the terminal. BoardErrors get their full
// Format output; anything else is printed as-is.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var be *BoardError
	if errors.As(err, &be) {
		return be.Format()
	}
	return "Error: " + err.Error() + "\n"
}
