// Package district defines the electoral-district record and the fixed
// vocabularies (columns, blocs, years, sort metrics) shared by every stage
// of the board pipeline.
package district

import (
	"fmt"
	"math"
	"slices"
)

// Column names of the district table.
const (
	ColDistrict        = "district_name"
	ColRegion          = "region"
	ColWinner          = "winner_2024"
	ColPctYoung39      = "pct_young39"
	ColPct40to50       = "pct_40_50"
	ColPctOld65        = "pct_old65"
	ColPctFem2030      = "pct_fem_2030"
	ColCompetitiveness = "competitiveness"
	ColVolatility      = "volatility"
	ColProgLeftAvg     = "prog_left_avg"
	ColVotersTotal     = "voters_total"
)

// Winner categories as they appear in winner_2024.
const (
	Progressive  = "진보"
	Conservative = "보수"
	Other        = "기타"
)

// WinnerCategories is the fixed option list for the winner filter.
var WinnerCategories = []string{Progressive, Conservative, Other}

// Years are the election years with per-bloc vote shares.
var Years = []int{2018, 2020, 2022, 2024}

// Bloc is a political bloc with its column prefix and display label.
type Bloc struct {
	Prefix string
	Label  string
}

// Blocs in display order.
var Blocs = []Bloc{
	{Prefix: "prog", Label: Progressive},
	{Prefix: "cons", Label: Conservative},
	{Prefix: "oth", Label: Other},
}

// ShareColumn returns the column holding the bloc's vote share for year,
// e.g. "prog_2018".
func ShareColumn(prefix string, year int) string {
	return fmt.Sprintf("%s_%d", prefix, year)
}

// Indicator is a demographic column and its chart label.
type Indicator struct {
	Column string
	Label  string
}

// Indicators are melted into the demographic long form in this order.
var Indicators = []Indicator{
	{Column: ColPctYoung39, Label: "청년층(≤39)"},
	{Column: ColPct40to50, Label: "40–50대"},
	{Column: ColPctOld65, Label: "65+"},
	{Column: ColPctFem2030, Label: "2030 여성"},
}

// SortMetrics are the columns the table may be ordered by.
var SortMetrics = []string{
	ColCompetitiveness,
	ColVolatility,
	ColProgLeftAvg,
	ColVotersTotal,
	ColPctOld65,
	ColPctYoung39,
	ColPct40to50,
}

// DefaultSortMetric is the initial sort selection.
const DefaultSortMetric = ColCompetitiveness

// IsSortMetric reports whether metric is an allowed sort column.
func IsSortMetric(metric string) bool {
	return slices.Contains(SortMetrics, metric)
}

// Ascending reports whether the table sorts metric smallest first.
// Competitiveness and volatility are "lower = more one-sided", so the
// closest races come first; every other metric sorts largest first.
func Ascending(metric string) bool {
	return metric == ColCompetitiveness || metric == ColVolatility
}

// TableColumns are the columns projected into the sortable table.
var TableColumns = []string{
	ColDistrict,
	ColRegion,
	ColWinner,
	ColCompetitiveness,
	ColVolatility,
	ColProgLeftAvg,
	ColVotersTotal,
}

// StringColumns are the text-typed columns; every other required column is numeric.
var StringColumns = []string{ColDistrict, ColRegion, ColWinner}

// NumericColumns returns every required float column.
func NumericColumns() []string {
	cols := []string{
		ColPctYoung39, ColPct40to50, ColPctOld65, ColPctFem2030,
		ColCompetitiveness, ColVolatility, ColProgLeftAvg, ColVotersTotal,
	}
	for _, y := range Years {
		for _, b := range Blocs {
			cols = append(cols, ShareColumn(b.Prefix, y))
		}
	}
	return cols
}

// RequiredColumns returns every column a dataset must provide.
func RequiredColumns() []string {
	return append(slices.Clone(StringColumns), NumericColumns()...)
}

// Record is one row of the district table. Missing numeric cells are NaN;
// missing text cells are empty.
type Record struct {
	Name            string  `json:"district_name"`
	Region          string  `json:"region"`
	Winner          string  `json:"winner_2024"`
	PctYoung39      float64 `json:"pct_young39"`
	Pct40to50       float64 `json:"pct_40_50"`
	PctOld65        float64 `json:"pct_old65"`
	PctFem2030      float64 `json:"pct_fem_2030"`
	Competitiveness float64 `json:"competitiveness"`
	Volatility      float64 `json:"volatility"`
	ProgLeftAvg     float64 `json:"prog_left_avg"`
	VotersTotal     float64 `json:"voters_total"`

	// Shares maps share columns ("prog_2018", ...) to vote share percent.
	Shares map[string]float64 `json:"shares"`
}

// Metric returns the value of a numeric column. Unknown columns yield NaN.
func (r Record) Metric(col string) float64 {
	switch col {
	case ColPctYoung39:
		return r.PctYoung39
	case ColPct40to50:
		return r.Pct40to50
	case ColPctOld65:
		return r.PctOld65
	case ColPctFem2030:
		return r.PctFem2030
	case ColCompetitiveness:
		return r.Competitiveness
	case ColVolatility:
		return r.Volatility
	case ColProgLeftAvg:
		return r.ProgLeftAvg
	case ColVotersTotal:
		return r.VotersTotal
	}
	if v, ok := r.Shares[col]; ok {
		return v
	}
	return math.NaN()
}

// SetMetric stores v in the numeric column col.
func (r *Record) SetMetric(col string, v float64) {
	switch col {
	case ColPctYoung39:
		r.PctYoung39 = v
	case ColPct40to50:
		r.Pct40to50 = v
	case ColPctOld65:
		r.PctOld65 = v
	case ColPctFem2030:
		r.PctFem2030 = v
	case ColCompetitiveness:
		r.Competitiveness = v
	case ColVolatility:
		r.Volatility = v
	case ColProgLeftAvg:
		r.ProgLeftAvg = v
	case ColVotersTotal:
		r.VotersTotal = v
	default:
		if r.Shares == nil {
			r.Shares = make(map[string]float64)
		}
		r.Shares[col] = v
	}
}

// Share returns the bloc's vote share in year.
func (r Record) Share(prefix string, year int) float64 {
	return r.Metric(ShareColumn(prefix, year))
}
