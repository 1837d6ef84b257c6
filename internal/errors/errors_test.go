package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestBoardError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BoardError
		expected string
	}{
		{
			name:     "simple message",
			err:      New(ErrData, "dataset is empty"),
			expected: "dataset is empty",
		},
		{
			name: "with cause",
			err: &BoardError{
				Kind:    ErrConfig,
				Message: "config error",
				Cause:   errors.New("parse error"),
			},
			expected: "config error: parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBoardError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrData, "wrapped error")

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause, should return Kind
	errNoWrap := New(ErrFilter, "no cause")
	unwrapped = errors.Unwrap(errNoWrap)
	if !errors.Is(unwrapped, ErrFilter) {
		t.Errorf("Unwrap() should return Kind when no cause")
	}
}

func TestBoardError_Is(t *testing.T) {
	err := New(ErrData, "bad csv")

	if !errors.Is(err, ErrData) {
		t.Error("errors.Is should return true for matching Kind")
	}
	if errors.Is(err, ErrConfig) {
		t.Error("errors.Is should return false for non-matching Kind")
	}

	// Wrapped errors should still match
	wrapped := Wrap(err, ErrRender, "wrapped")
	if !errors.Is(wrapped, ErrRender) {
		t.Error("errors.Is should return true for wrapped error Kind")
	}
	if !errors.Is(wrapped, ErrData) {
		t.Error("errors.Is should find the inner Kind through the cause chain")
	}
}

func TestBoardError_Format(t *testing.T) {
	err := &BoardError{
		Kind:       ErrData,
		Message:    "dataset is missing columns",
		Suggestion: "Run 'districtboard init --sample'",
		Details: map[string]string{
			"source":  "districts.csv",
			"missing": "region",
		},
	}

	formatted := err.Format()

	if !strings.Contains(formatted, "Error: dataset is missing columns") {
		t.Error("Format() should contain error message")
	}
	if !strings.Contains(formatted, "💡 Suggestion:") {
		t.Error("Format() should contain suggestion")
	}
	if !strings.Contains(formatted, "source: districts.csv") {
		t.Error("Format() should contain details")
	}
	// Details are sorted by key
	if strings.Index(formatted, "missing:") > strings.Index(formatted, "source:") {
		t.Error("Format() should list details in key order")
	}
}

func TestBoardError_WithDetails(t *testing.T) {
	err := New(ErrConfig, "config error")
	err.WithDetails("file", "config.yaml").WithDetails("line", "42")

	if err.Details["file"] != "config.yaml" {
		t.Error("WithDetails should set key")
	}
	if err.Details["line"] != "42" {
		t.Error("WithDetails should allow chaining")
	}
}

func TestBoardError_WithCause(t *testing.T) {
	cause := errors.New("root cause")
	err := New(ErrRender, "render error").WithCause(cause)

	if !errors.Is(err.Cause, cause) {
		t.Error("WithCause should set cause")
	}
}

func TestWithSuggestion(t *testing.T) {
	err := WithSuggestion(ErrFilter, "bad metric", "Use competitiveness")

	if err.Suggestion != "Use competitiveness" {
		t.Error("WithSuggestion should set Suggestion")
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(nil); got != "" {
		t.Errorf("FormatError(nil) = %q, want empty", got)
	}

	plain := FormatError(errors.New("boom"))
	if plain != "Error: boom\n" {
		t.Errorf("FormatError(plain) = %q", plain)
	}

	wrapped := FormatError(Wrap(errors.New("eof"), ErrData, "read failed"))
	if !strings.Contains(wrapped, "Error: read failed: eof") {
		t.Errorf("FormatError(BoardError) = %q", wrapped)
	}
}
