package components

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/tui/styles"
)

// DemographicBars draws one stacked bar per district, one segment per
// demographic indicator. Bars share a scale so their lengths compare.
type DemographicBars struct {
	points []board.DemographicPoint
	width  int
}

// NewDemographicBars creates a new DemographicBars component.
func NewDemographicBars() *DemographicBars {
	return &DemographicBars{width: 80}
}

// SetPoints sets the demographic long form to draw.
func (d *DemographicBars) SetPoints(points []board.DemographicPoint) {
	d.points = points
}

// SetWidth sets the available width.
func (d *DemographicBars) SetWidth(width int) {
	d.width = width
}

// stack holds one district's segment values in indicator order.
type stack struct {
	name   string
	values []float64
}

func (s stack) total() float64 {
	var t float64
	for _, v := range s.values {
		t += v
	}
	return t
}

// stacks pivots the points by district, sorted by name. Missing values
// count as zero.
func stacks(points []board.DemographicPoint) []stack {
	index := make(map[string]int)
	var out []stack
	for _, p := range points {
		i, ok := index[p.District]
		if !ok {
			i = len(out)
			index[p.District] = i
			out = append(out, stack{name: p.District, values: make([]float64, len(district.Indicators))})
		}
		for j, ind := range district.Indicators {
			if ind.Label == p.Indicator && !math.IsNaN(p.Value) {
				out[i].values[j] = p.Value
			}
		}
	}
	slices.SortFunc(out, func(a, b stack) int {
		return strings.Compare(a.name, b.name)
	})
	return out
}

// View renders the legend and the bars.
func (d *DemographicBars) View() string {
	rows := stacks(d.points)
	if len(rows) == 0 {
		return styles.MutedTextStyle.Render("No data")
	}

	nameWidth := 0
	maxTotal := 0.0
	for _, r := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.name))
		maxTotal = max(maxTotal, r.total())
	}
	barWidth := max(d.width-nameWidth-10, 10)

	var b strings.Builder
	b.WriteString(d.legend())
	b.WriteString("\n")

	nameStyle := lipgloss.NewStyle().Width(nameWidth)
	for _, r := range rows {
		b.WriteString(nameStyle.Render(r.name))
		b.WriteString(" ")
		for j, v := range r.values {
			n := 0
			if maxTotal > 0 {
				n = int(math.Round(v / maxTotal * float64(barWidth)))
			}
			seg := lipgloss.NewStyle().Foreground(styles.IndicatorColors[j%len(styles.IndicatorColors)])
			b.WriteString(seg.Render(strings.Repeat("█", n)))
		}
		b.WriteString(" ")
		b.WriteString(styles.MutedTextStyle.Render(fmt.Sprintf("%.1f", r.total())))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (d *DemographicBars) legend() string {
	parts := make([]string, len(district.Indicators))
	for i, ind := range district.Indicators {
		swatch := lipgloss.NewStyle().
			Foreground(styles.IndicatorColors[i%len(styles.IndicatorColors)]).
			Render("■")
		parts[i] = swatch + " " + ind.Label
	}
	return strings.Join(parts, "  ")
}
