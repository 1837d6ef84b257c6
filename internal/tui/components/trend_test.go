package components

import (
	"math"
	"strings"
	"testing"

	"github.com/dbmrq/districtboard/internal/board"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		values []float64
		want   string
	}{
		{[]float64{0, 100}, "▁█"},
		{[]float64{50}, "▄"},
		{[]float64{-5, 150}, "▁█"},
		{[]float64{math.NaN(), 0}, " ▁"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := sparkline(tt.values); got != tt.want {
			t.Errorf("sparkline(%v) = %q, want %q", tt.values, got, tt.want)
		}
	}
}

func TestTrend_View(t *testing.T) {
	tr := NewTrend()
	if !strings.Contains(tr.View(), "No districts selected") {
		t.Error("empty trend should say so")
	}

	var points []board.TrendPoint
	for _, year := range []int{2018, 2020, 2022, 2024} {
		points = append(points,
			board.TrendPoint{District: "종로구", Year: year, Bloc: "진보", Vote: 40},
			board.TrendPoint{District: "종로구", Year: year, Bloc: "보수", Vote: 50},
			board.TrendPoint{District: "종로구", Year: year, Bloc: "기타", Vote: math.NaN()},
		)
	}
	points[len(points)-3].Vote = 42.5

	tr.SetPoints(points)
	view := tr.View()
	for _, want := range []string{"종로구", "진보", "40.0 → 42.5", "50.0 → 50.0", "- → -"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
