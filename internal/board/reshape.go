package board

import (
	"fmt"
	"math"
	"slices"

	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/district"
)

// DemographicPoint is one (district, indicator) cell of the demographic
// long form.
type DemographicPoint struct {
	District  string  `json:"district_name"`
	Indicator string  `json:"indicator"`
	Value     float64 `json:"value"`
}

// DemographicLong melts the four demographic columns of t into
// (district, indicator label, value) rows: all districts for the first
// indicator, then all for the second, and so on. The result has exactly
// four rows per input row and values are copied unchanged.
func DemographicLong(t *dataset.Table) []DemographicPoint {
	records := t.Records()
	out := make([]DemographicPoint, 0, len(records)*len(district.Indicators))
	for _, ind := range district.Indicators {
		for _, r := range records {
			out = append(out, DemographicPoint{
				District:  r.Name,
				Indicator: ind.Label,
				Value:     r.Metric(ind.Column),
			})
		}
	}
	return out
}

// TrendPoint is one (district, year, bloc) vote share.
type TrendPoint struct {
	District string  `json:"district_name"`
	Year     int     `json:"year"`
	Bloc     string  `json:"bloc"`
	Vote     float64 `json:"vote"`
}

// TrendLong emits twelve rows (four years, three blocs) for every row of t
// whose district is in picks. Rows follow t's order, not the order of
// picks; a name that appears twice in t is emitted twice.
func TrendLong(t *dataset.Table, picks []string) []TrendPoint {
	if len(picks) == 0 {
		return nil
	}
	var out []TrendPoint
	for _, r := range t.Records() {
		if !slices.Contains(picks, r.Name) {
			continue
		}
		for _, year := range district.Years {
			for _, b := range district.Blocs {
				out = append(out, TrendPoint{
					District: r.Name,
					Year:     year,
					Bloc:     b.Label,
					Vote:     r.Share(b.Prefix, year),
				})
			}
		}
	}
	return out
}

// TrendDistricts groups points by district, preserving first appearance.
func TrendDistricts(points []TrendPoint) []string {
	var names []string
	for _, p := range points {
		if !slices.Contains(names, p.District) {
			names = append(names, p.District)
		}
	}
	return names
}

// ScatterPoint places one district on the elderly share vs progressive
// vote plane.
type ScatterPoint struct {
	District    string  `json:"district_name"`
	PctOld65    float64 `json:"pct_old65"`
	ProgLeftAvg float64 `json:"prog_left_avg"`
	Winner      string  `json:"winner_2024"`
}

// ScatterPoints returns one point per row of t that has both coordinates.
func ScatterPoints(t *dataset.Table) []ScatterPoint {
	var out []ScatterPoint
	for _, r := range t.Records() {
		if math.IsNaN(r.PctOld65) || math.IsNaN(r.ProgLeftAvg) {
			continue
		}
		out = append(out, ScatterPoint{
			District:    r.Name,
			PctOld65:    r.PctOld65,
			ProgLeftAvg: r.ProgLeftAvg,
			Winner:      r.Winner,
		})
	}
	return out
}

// TableRow is one line of the sortable table.
type TableRow struct {
	District        string  `json:"district_name"`
	Region          string  `json:"region"`
	Winner          string  `json:"winner_2024"`
	Competitiveness float64 `json:"competitiveness"`
	Volatility      float64 `json:"volatility"`
	ProgLeftAvg     float64 `json:"prog_left_avg"`
	VotersTotal     float64 `json:"voters_total"`
}

// TableRows projects t onto the table columns.
func TableRows(t *dataset.Table) []TableRow {
	records := t.Records()
	out := make([]TableRow, len(records))
	for i, r := range records {
		out[i] = TableRow{
			District:        r.Name,
			Region:          r.Region,
			Winner:          r.Winner,
			Competitiveness: r.Competitiveness,
			Volatility:      r.Volatility,
			ProgLeftAvg:     r.ProgLeftAvg,
			VotersTotal:     r.VotersTotal,
		}
	}
	return out
}

// Cells renders the row for text tables. Missing values show as the placeholder.
func (r TableRow) Cells() []string {
	return []string{
		r.District,
		orPlaceholder(r.Region),
		orPlaceholder(r.Winner),
		FormatFloat(r.Competitiveness, 1),
		FormatFloat(r.Volatility, 1),
		FormatFloat(r.ProgLeftAvg, 1),
		FormatInt(r.VotersTotal),
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// FormatFloat renders v with prec decimals, or the placeholder for NaN.
func FormatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return Placeholder
	}
	return fmt.Sprintf("%.*f", prec, v)
}

// FormatInt renders v truncated with thousands separators.
func FormatInt(v float64) string {
	if math.IsNaN(v) {
		return Placeholder
	}
	return printer.Sprintf("%d", int64(v))
}
