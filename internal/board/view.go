package board

import (
	"github.com/dbmrq/districtboard/internal/dataset"
)

// View is everything one dashboard render needs.
type View struct {
	Selection Selection `json:"selection"`
	// Source names the dataset the view was built from.
	Source string `json:"source"`
	// Total is the row count before filtering.
	Total int `json:"total"`

	KPIs         KPIs               `json:"kpis"`
	Cards        []Card             `json:"cards"`
	Demographics []DemographicPoint `json:"demographics"`
	Scatter      []ScatterPoint     `json:"scatter"`
	Rows         []TableRow         `json:"rows"`

	// PickOptions are the district names of the filtered view; Picks are
	// the ones the trend chart uses.
	PickOptions []string     `json:"pick_options"`
	Picks       []string     `json:"picks"`
	Trend       []TrendPoint `json:"trend"`

	Filtered *dataset.Table `json:"-"`
	Sorted   *dataset.Table `json:"-"`
}

// Empty reports whether the filter left no rows.
func (v *View) Empty() bool {
	return v.KPIs.Count == 0
}

// Build runs the whole pipeline once: filter, summarize, reshape, sort and
// the trend reshape for the selected (or default) districts. The trend is
// skipped when the filtered view is empty.
func Build(t *dataset.Table, sel Selection) (*View, error) {
	sel.SortMetric = sel.sortMetric()

	filtered := Filter(t, sel)
	sorted, err := Sort(filtered, sel.SortMetric)
	if err != nil {
		return nil, err
	}

	kpis := Summarize(filtered)
	v := &View{
		Selection:    sel,
		Source:       t.Source(),
		Total:        t.Len(),
		KPIs:         kpis,
		Cards:        kpis.Cards(),
		Demographics: DemographicLong(filtered),
		Scatter:      ScatterPoints(filtered),
		Rows:         TableRows(sorted),
		PickOptions:  filtered.Names(),
		Filtered:     filtered,
		Sorted:       sorted,
	}

	if filtered.Len() > 0 {
		v.Picks = sel.Picks
		if v.Picks == nil {
			v.Picks = DefaultPicks(filtered, sel.pickCount())
		}
		v.Trend = TrendLong(filtered, v.Picks)
	}
	return v, nil
}
