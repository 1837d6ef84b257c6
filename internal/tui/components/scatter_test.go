package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/board"
)

func TestAxisRange(t *testing.T) {
	lo, hi := axisRange([]float64{5})
	if lo != 4 || hi != 6 {
		t.Errorf("single value range = (%v, %v), want (4, 6)", lo, hi)
	}

	lo, hi = axisRange([]float64{10, 20})
	if lo >= 10 || hi <= 20 {
		t.Errorf("range (%v, %v) should be padded beyond the data", lo, hi)
	}
}

func TestCell(t *testing.T) {
	if got := cell(0, 0, 10, 11); got != 0 {
		t.Errorf("cell(lo) = %d, want 0", got)
	}
	if got := cell(10, 0, 10, 11); got != 10 {
		t.Errorf("cell(hi) = %d, want 10", got)
	}
	if got := cell(20, 0, 10, 11); got != 10 {
		t.Errorf("out of range should clamp, got %d", got)
	}
}

func TestScatter_View(t *testing.T) {
	s := NewScatter()
	if !strings.Contains(s.View(), "No data") {
		t.Error("empty scatter should say so")
	}

	s.SetSize(30, 6)
	s.SetPoints([]board.ScatterPoint{
		{District: "A", PctOld65: 15, ProgLeftAvg: 45, Winner: "보수"},
		{District: "B", PctOld65: 25, ProgLeftAvg: 55, Winner: "진보"},
		{District: "C", PctOld65: 20, ProgLeftAvg: 50, Winner: ""},
	})
	view := s.View()

	if got := strings.Count(view, "●"); got != 6 {
		t.Errorf("expected 3 points and 3 legend markers, got %d", got)
	}
	legend := view[strings.LastIndex(view, "\n")+1:]
	if strings.Index(legend, "진보") > strings.Index(legend, "보수") {
		t.Errorf("legend should list known winners in category order, got %q", legend)
	}
	if !strings.Contains(legend, board.Placeholder) {
		t.Error("legend should show the placeholder for a missing winner")
	}
	if lipgloss.Height(view) != 6+4 {
		t.Errorf("height = %d, want grid plus four lines", lipgloss.Height(view))
	}
}
