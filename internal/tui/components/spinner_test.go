package components

import (
	"strings"
	"testing"
	"time"
)

func TestSpinner_View(t *testing.T) {
	s := NewSpinner()
	if !strings.Contains(s.View(), "Loading") {
		t.Error("idle spinner should still say Loading")
	}

	s.Start("seoul.csv")
	if s.Source() != "seoul.csv" {
		t.Errorf("Source() = %q", s.Source())
	}
	view := s.View()
	if !strings.Contains(view, "Loading seoul.csv") {
		t.Errorf("view should name the source, got %q", view)
	}
	if !strings.Contains(view, "(") {
		t.Error("view should show elapsed time after Start")
	}

	s.SetShowTime(false)
	if strings.Contains(s.View(), "(") {
		t.Error("elapsed time should be hidden")
	}
}

func TestSpinner_Elapsed(t *testing.T) {
	s := NewSpinner()
	if s.Elapsed() != 0 {
		t.Error("Elapsed should be zero before Start")
	}
	s.Start("x")
	if s.Elapsed() < 0 {
		t.Error("Elapsed should be non-negative")
	}
	if s.Init() == nil {
		t.Error("Init should return the tick command")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
