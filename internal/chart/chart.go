// Package chart renders the dashboard's charts with go-chart: the stacked
// demographic bars, the elderly share vs progressive vote scatter and one
// trend panel per picked district. Output is SVG for the web shell and
// PNG or SVG for export.
package chart

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/errors"
)

// ErrNoData is the cause of a render error when there is nothing to plot.
var ErrNoData = stderrors.New("no data to plot")

// Format selects the output encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// Formats lists the accepted format names.
var Formats = []string{string(SVG), string(PNG)}

// ParseFormat maps a file extension or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	}
	return "", errors.WithSuggestion(errors.ErrRender,
		fmt.Sprintf("unknown chart format: %s", s),
		"Valid formats: "+strings.Join(Formats, ", "))
}

// ContentType is the MIME type the web shell sends for f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == PNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Chart names used in errors and file names.
const (
	NameDemographics = "demographics"
	NameScatter      = "scatter"
	NameTrend        = "trend"
)

// Axis titles.
const (
	demographicsAxis = "비율(%)"
	scatterXAxis     = "고령층 비율(%)"
	scatterYAxis     = "진보정당 득표력 평균(%)"
	trendXAxis       = "연도"
	trendYAxis       = "득표율(%)"
)

const (
	height       = 400
	trendWidth   = 320
	trendHeight  = 240
	minWidth     = 640
	barWidth     = 48
	barSpacing   = 16
	scatterWidth = 640
)

var (
	indicatorColors = []drawing.Color{
		drawing.ColorFromHex("4c78a8"),
		drawing.ColorFromHex("f58518"),
		drawing.ColorFromHex("54a24b"),
		drawing.ColorFromHex("e45756"),
	}
	blocColors = map[string]drawing.Color{
		district.Progressive:  drawing.ColorFromHex("1f5fbf"),
		district.Conservative: drawing.ColorFromHex("d62728"),
		district.Other:        drawing.ColorFromHex("7f7f7f"),
	}
	unknownColor = drawing.ColorFromHex("bcbd22")
)

// BlocColor returns the color used for a bloc or winner category.
func BlocColor(label string) drawing.Color {
	if c, ok := blocColors[label]; ok {
		return c
	}
	return unknownColor
}

// pointStyle draws markers without a connecting line.
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotWidth:    3,
		DotColor:    col,
	}
}

// Demographics draws one stacked bar per district, districts ordered by
// name, with one segment per indicator. Missing values draw as empty
// segments.
func Demographics(w io.Writer, points []board.DemographicPoint, format Format) error {
	if len(points) == 0 {
		return errors.RenderFailed(NameDemographics, ErrNoData)
	}

	byDistrict := make(map[string][]float64)
	var names []string
	for _, p := range points {
		vals, ok := byDistrict[p.District]
		if !ok {
			names = append(names, p.District)
			vals = make([]float64, len(district.Indicators))
		}
		idx := indicatorIndex(p.Indicator)
		if idx >= 0 && !math.IsNaN(p.Value) {
			vals[idx] += p.Value
		}
		byDistrict[p.District] = vals
	}
	slices.Sort(names)

	bars := make([]gochart.StackedBar, 0, len(names))
	for _, name := range names {
		values := make([]gochart.Value, len(district.Indicators))
		for i, ind := range district.Indicators {
			values[i] = gochart.Value{
				Label: ind.Label,
				Value: byDistrict[name][i],
				Style: gochart.Style{
					FillColor:   indicatorColors[i],
					StrokeColor: indicatorColors[i],
				},
			}
		}
		bars = append(bars, gochart.StackedBar{Name: name, Width: barWidth, Values: values})
	}

	width := max(minWidth, len(bars)*(barWidth+barSpacing)+120)
	sbc := gochart.StackedBarChart{
		Title:      demographicsAxis,
		Width:      width,
		Height:     height,
		BarSpacing: barSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Bars:       bars,
	}
	if err := sbc.Render(format.provider(), w); err != nil {
		return errors.RenderFailed(NameDemographics, err)
	}
	return nil
}

func indicatorIndex(label string) int {
	for i, ind := range district.Indicators {
		if ind.Label == label {
			return i
		}
	}
	return -1
}

// Scatter draws pct_old65 against prog_left_avg with one colored series
// per winner category.
func Scatter(w io.Writer, points []board.ScatterPoint, format Format) error {
	if len(points) == 0 {
		return errors.RenderFailed(NameScatter, ErrNoData)
	}

	groups := make(map[string]*gochart.ContinuousSeries)
	order := slices.Clone(district.WinnerCategories)
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		key := p.Winner
		if key == "" {
			key = board.Placeholder
		}
		s, ok := groups[key]
		if !ok {
			s = &gochart.ContinuousSeries{Name: key, Style: pointStyle(BlocColor(key))}
			groups[key] = s
			if !slices.Contains(order, key) {
				order = append(order, key)
			}
		}
		s.XValues = append(s.XValues, p.PctOld65)
		s.YValues = append(s.YValues, p.ProgLeftAvg)
		xMin, xMax = math.Min(xMin, p.PctOld65), math.Max(xMax, p.PctOld65)
		yMin, yMax = math.Min(yMin, p.ProgLeftAvg), math.Max(yMax, p.ProgLeftAvg)
	}

	var series []gochart.Series
	for _, key := range order {
		if s, ok := groups[key]; ok {
			series = append(series, *s)
		}
	}

	xr := paddedRange(xMin, xMax)
	yr := paddedRange(yMin, yMax)
	ch := gochart.Chart{
		Width:      scatterWidth,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 14, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: scatterXAxis, Range: xr, ValueFormatter: oneDecimal},
		YAxis:      gochart.YAxis{Name: scatterYAxis, Range: yr, ValueFormatter: oneDecimal},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	if err := ch.Render(format.provider(), w); err != nil {
		return errors.RenderFailed(NameScatter, err)
	}
	return nil
}

// paddedRange widens [lo, hi] by 5% on each side and by one unit when the
// data collapses to a single value.
func paddedRange(lo, hi float64) *gochart.ContinuousRange {
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func oneDecimal(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.1f", f)
	}
	return ""
}

// Trend draws the three bloc lines for one district. The y axis is fixed
// to 0–100 and the x axis shows the election years.
func Trend(w io.Writer, points []board.TrendPoint, districtName string, format Format) error {
	name := NameTrend + ":" + districtName

	lines := make(map[string]*gochart.ContinuousSeries, len(district.Blocs))
	for _, b := range district.Blocs {
		lines[b.Label] = &gochart.ContinuousSeries{Name: b.Label, Style: lineStyle(BlocColor(b.Label))}
	}
	n := 0
	for _, p := range points {
		if p.District != districtName || math.IsNaN(p.Vote) {
			continue
		}
		s, ok := lines[p.Bloc]
		if !ok {
			continue
		}
		s.XValues = append(s.XValues, float64(p.Year))
		s.YValues = append(s.YValues, p.Vote)
		n++
	}
	if n == 0 {
		return errors.RenderFailed(name, ErrNoData)
	}

	var series []gochart.Series
	for _, b := range district.Blocs {
		if s := lines[b.Label]; len(s.XValues) > 0 {
			series = append(series, *s)
		}
	}

	first, last := district.Years[0], district.Years[len(district.Years)-1]
	yearTicks := make([]gochart.Tick, len(district.Years))
	for i, y := range district.Years {
		yearTicks[i] = gochart.Tick{Value: float64(y), Label: fmt.Sprintf("%d", y)}
	}

	ch := gochart.Chart{
		Title:      districtName,
		Width:      trendWidth,
		Height:     trendHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 36, Left: 12, Right: 12, Bottom: 12}},
		XAxis: gochart.XAxis{
			Name:  trendXAxis,
			Range: &gochart.ContinuousRange{Min: float64(first) - 1, Max: float64(last) + 1},
			Ticks: yearTicks,
		},
		YAxis: gochart.YAxis{
			Name:  trendYAxis,
			Range: &gochart.ContinuousRange{Min: 0, Max: 100},
			Ticks: []gochart.Tick{
				{Value: 0, Label: "0"},
				{Value: 25, Label: "25"},
				{Value: 50, Label: "50"},
				{Value: 75, Label: "75"},
				{Value: 100, Label: "100"},
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	if err := ch.Render(format.provider(), w); err != nil {
		return errors.RenderFailed(name, err)
	}
	return nil
}
