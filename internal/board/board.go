// Package board is the dashboard pipeline: it filters the district table,
// computes the KPI row, reshapes the view into long form for charts and
// orders the table. Every function is pure; the TUI and web shells call
// Build again whenever a control changes.
package board

import (
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/errors"
)

// DefaultPickCount is how many districts the trend chart shows initially.
const DefaultPickCount = 3

// Selection is the state of every dashboard control.
type Selection struct {
	// Regions and Winners filter by membership; empty means no filter.
	Regions []string `json:"regions"`
	Winners []string `json:"winners"`
	// SortMetric orders the table. Empty means competitiveness.
	SortMetric string `json:"sort_metric"`
	// Picks are the districts drawn in the trend chart. Nil means the
	// first PickCount districts of the filtered view; an empty non-nil
	// slice means none.
	Picks []string `json:"picks"`
	// PickCount sizes the default pick. Zero means DefaultPickCount.
	PickCount int `json:"pick_count,omitempty"`
}

func (s Selection) sortMetric() string {
	if s.SortMetric == "" {
		return district.DefaultSortMetric
	}
	return s.SortMetric
}

func (s Selection) pickCount() int {
	if s.PickCount <= 0 {
		return DefaultPickCount
	}
	return s.PickCount
}

// Filter keeps the rows whose region is in sel.Regions and whose winner is
// in sel.Winners. An empty list leaves that predicate out. Rows with a
// missing value never match a non-empty list.
func Filter(t *dataset.Table, sel Selection) *dataset.Table {
	df := t.Frame()
	if len(sel.Regions) > 0 && df.Nrow() > 0 {
		df = df.Filter(dataframe.F{
			Colname:    district.ColRegion,
			Comparator: series.In,
			Comparando: sel.Regions,
		})
	}
	if len(sel.Winners) > 0 && df.Nrow() > 0 {
		df = df.Filter(dataframe.F{
			Colname:    district.ColWinner,
			Comparator: series.In,
			Comparando: sel.Winners,
		})
	}
	if len(sel.Regions) == 0 && len(sel.Winners) == 0 {
		return t
	}
	return t.Derive(df)
}

// Sort orders t by metric: ascending for competitiveness and volatility
// (closest races first), descending for everything else. Ties keep their
// input order and missing values go last either way.
func Sort(t *dataset.Table, metric string) (*dataset.Table, error) {
	if !district.IsSortMetric(metric) {
		return nil, errors.UnknownSortMetric(metric, district.SortMetrics)
	}
	if t.Len() < 2 {
		return t, nil
	}

	order := dataframe.RevSort(metric)
	if district.Ascending(metric) {
		order = dataframe.Sort(metric)
	}
	df := t.Frame().Arrange(order)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, errors.ErrFilter, "failed to sort table")
	}
	return t.Derive(df), nil
}

// Project narrows t to the table columns in display order. Export writes
// the result as CSV.
func Project(t *dataset.Table) dataframe.DataFrame {
	return t.Frame().Select(district.TableColumns)
}

// RegionOptions returns the distinct non-missing regions of t, sorted.
func RegionOptions(t *dataset.Table) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records() {
		if r.Region == "" || seen[r.Region] {
			continue
		}
		seen[r.Region] = true
		out = append(out, r.Region)
	}
	slices.Sort(out)
	return out
}

// DefaultPicks returns the first n district names of t in table order.
func DefaultPicks(t *dataset.Table, n int) []string {
	names := t.Names()
	if n < len(names) {
		names = names[:n]
	}
	return names
}
