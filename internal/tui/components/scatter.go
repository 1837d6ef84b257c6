package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// Scatter plots districts on a character grid: elderly share on x,
// progressive average on y, colored by 2024 winner.
type Scatter struct {
	points []board.ScatterPoint
	width  int
	height int
}

// NewScatter creates a new Scatter component.
func NewScatter() *Scatter {
	return &Scatter{width: 60, height: 12}
}

// SetPoints sets the points to plot.
func (s *Scatter) SetPoints(points []board.ScatterPoint) {
	s.points = points
}

// SetSize sets the plot area in cells, excluding axes.
func (s *Scatter) SetSize(width, height int) {
	s.width = max(width, 10)
	s.height = max(height, 4)
}

// axisRange returns lo and hi padded so a single value still spans the axis.
func axisRange(vals []float64) (lo, hi float64) {
	lo, hi = slices.Min(vals), slices.Max(vals)
	if lo == hi {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

func cell(v, lo, hi float64, n int) int {
	i := int((v - lo) / (hi - lo) * float64(n-1))
	return min(max(i, 0), n-1)
}

// View renders the grid, axes and legend.
func (s *Scatter) View() string {
	if len(s.points) == 0 {
		return styles.MutedTextStyle.Render("No data")
	}

	xs := make([]float64, len(s.points))
	ys := make([]float64, len(s.points))
	for i, p := range s.points {
		xs[i], ys[i] = p.PctOld65, p.ProgLeftAvg
	}
	xlo, xhi := axisRange(xs)
	ylo, yhi := axisRange(ys)

	grid := make([][]string, s.height)
	for r := range grid {
		grid[r] = slices.Repeat([]string{" "}, s.width)
	}
	for _, p := range s.points {
		col := cell(p.PctOld65, xlo, xhi, s.width)
		row := s.height - 1 - cell(p.ProgLeftAvg, ylo, yhi, s.height)
		grid[row][col] = lipgloss.NewStyle().Foreground(styles.BlocColor(p.Winner)).Render("●")
	}

	labelWidth := 6
	axis := styles.MutedTextStyle
	var b strings.Builder
	for r, line := range grid {
		label := ""
		switch r {
		case 0:
			label = fmt.Sprintf("%.1f", yhi)
		case s.height - 1:
			label = fmt.Sprintf("%.1f", ylo)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s │", labelWidth, label)))
		b.WriteString(strings.Join(line, ""))
		b.WriteString("\n")
	}
	b.WriteString(axis.Render(strings.Repeat(" ", labelWidth) + " └" + strings.Repeat("─", s.width)))
	b.WriteString("\n")

	lo, hi := fmt.Sprintf("%.1f", xlo), fmt.Sprintf("%.1f", xhi)
	gap := max(s.width-len(lo)-len(hi), 1)
	b.WriteString(axis.Render(strings.Repeat(" ", labelWidth+2) + lo + strings.Repeat(" ", gap) + hi))
	b.WriteString("\n")
	b.WriteString(axis.Render("x: 65+ 비율(%)  y: 진보 평균 득표(%)"))
	b.WriteString("\n")
	b.WriteString(s.legend())

	return b.String()
}

// legend lists the winner categories present, known ones first.
func (s *Scatter) legend() string {
	var winners []string
	for _, p := range s.points {
		w := p.Winner
		if w == "" {
			w = board.Placeholder
		}
		if !slices.Contains(winners, w) {
			winners = append(winners, w)
		}
	}
	rank := func(w string) int {
		if i := slices.Index(district.WinnerCategories, w); i >= 0 {
			return i
		}
		return len(district.WinnerCategories)
	}
	slices.SortStableFunc(winners, func(a, b string) int {
		return rank(a) - rank(b)
	})

	parts := make([]string, len(winners))
	for i, w := range winners {
		parts[i] = lipgloss.NewStyle().Foreground(styles.BlocColor(w)).Render("●") + " " + w
	}
	return strings.Join(parts, "  ")
}
