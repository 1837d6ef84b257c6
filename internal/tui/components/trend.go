package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/tui/styles"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline maps shares on the fixed 0-100 scale to block characters.
// Missing values render as a gap.
func sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		if math.IsNaN(v) {
			b.WriteRune(' ')
			continue
		}
		i := int(v / 100 * float64(len(sparkLevels)-1))
		b.WriteRune(sparkLevels[min(max(i, 0), len(sparkLevels)-1)])
	}
	return b.String()
}

// Trend shows one block per picked district with a sparkline per bloc
// over the election years.
type Trend struct {
	points []board.TrendPoint
}

// NewTrend creates a new Trend component.
func NewTrend() *Trend {
	return &Trend{}
}

// SetPoints sets the trend long form to draw.
func (t *Trend) SetPoints(points []board.TrendPoint) {
	t.points = points
}

// View renders the sparklines.
func (t *Trend) View() string {
	names := board.TrendDistricts(t.points)
	if len(names) == 0 {
		return styles.MutedTextStyle.Render("No districts selected")
	}

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(name))
		b.WriteString("\n")

		for _, bloc := range district.Blocs {
			values := make([]float64, len(district.Years))
			for y := range values {
				values[y] = math.NaN()
			}
			for _, p := range t.points {
				if p.District != name || p.Bloc != bloc.Label {
					continue
				}
				for y, year := range district.Years {
					// first row wins for duplicated names
					if p.Year == year && math.IsNaN(values[y]) {
						values[y] = p.Vote
					}
				}
			}

			color := lipgloss.NewStyle().Foreground(styles.BlocColor(bloc.Label))
			b.WriteString("  ")
			b.WriteString(color.Render(bloc.Label))
			b.WriteString(" ")
			b.WriteString(color.Render(sparkline(values)))
			b.WriteString(" ")
			b.WriteString(styles.MutedTextStyle.Render(
				board.FormatFloat(values[0], 1) + " → " + board.FormatFloat(values[len(values)-1], 1),
			))
			b.WriteString("\n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
