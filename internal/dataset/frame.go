package dataset

import (
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/dbmrq/districtboard/internal/district"
)

// nanValues are the cells read as missing.
var nanValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "<nil>"}

// columnTypes pins the required columns so that a stray text cell in a
// numeric column becomes NaN instead of turning the column into strings.
func columnTypes() map[string]series.Type {
	types := make(map[string]series.Type)
	for _, c := range district.StringColumns {
		types[c] = series.String
	}
	for _, c := range district.NumericColumns() {
		types[c] = series.Float
	}
	return types
}

func recordsOf(df dataframe.DataFrame) []district.Record {
	n := df.Nrow()
	rows := make([]district.Record, n)
	if n == 0 {
		return rows
	}

	text := func(col string) []string {
		s := df.Col(col)
		out := make([]string, n)
		for i := 0; i < n; i++ {
			if e := s.Elem(i); !e.IsNA() {
				out[i] = e.String()
			}
		}
		return out
	}
	names, regions, winners := text(district.ColDistrict), text(district.ColRegion), text(district.ColWinner)

	for i := range rows {
		rows[i] = district.Record{
			Name:   names[i],
			Region: regions[i],
			Winner: winners[i],
			Shares: make(map[string]float64, len(district.Years)*len(district.Blocs)),
		}
	}
	for _, col := range district.NumericColumns() {
		for i, v := range df.Col(col).Float() {
			rows[i].SetMetric(col, v)
		}
	}
	return rows
}

func frameOf(rows []district.Record) dataframe.DataFrame {
	cols := make([]series.Series, 0, len(district.RequiredColumns()))

	textCol := func(name string, get func(district.Record) string) series.Series {
		vals := make([]string, len(rows))
		for i, r := range rows {
			vals[i] = get(r)
			if vals[i] == "" {
				vals[i] = "NaN"
			}
		}
		return series.New(vals, series.String, name)
	}
	cols = append(cols,
		textCol(district.ColDistrict, func(r district.Record) string { return r.Name }),
		textCol(district.ColRegion, func(r district.Record) string { return r.Region }),
		textCol(district.ColWinner, func(r district.Record) string { return r.Winner }),
	)

	// Floats go in as text so that NaN is flagged as missing, which keeps
	// it last when the frame is arranged.
	for _, name := range district.NumericColumns() {
		vals := make([]string, len(rows))
		for i, r := range rows {
			vals[i] = formatFloat(r.Metric(name))
		}
		cols = append(cols, series.New(vals, series.Float, name))
	}
	return dataframe.New(cols...)
}

// emptyFrame returns a zero-row frame with the given header.
func emptyFrame(header []string, types map[string]series.Type) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		t, ok := types[name]
		if !ok {
			t = series.String
		}
		cols[i] = series.New([]string{}, t, name)
	}
	return dataframe.New(cols...)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
