// Package dataset loads the district table from CSV or XLSX input and keeps
// it fresh: a content-keyed cache, an fsnotify watcher and a cron reloader.
package dataset

import (
	"github.com/go-gota/gota/dataframe"

	"github.com/dbmrq/districtboard/internal/district"
)

// Table is an immutable district table. It pairs the gota frame used for
// filtering and sorting with the typed rows the reshapers read.
type Table struct {
	frame   dataframe.DataFrame
	records []district.Record
	source  string
}

// FromFrame wraps a frame that already carries every required column.
func FromFrame(df dataframe.DataFrame, source string) *Table {
	return &Table{
		frame:   df,
		records: recordsOf(df),
		source:  source,
	}
}

// FromRecords builds a table from typed rows. Tests and the web upload
// preview use it to avoid a CSV round trip.
func FromRecords(rows []district.Record, source string) *Table {
	return FromFrame(frameOf(rows), source)
}

// Len returns the row count.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Source names where the table came from (file path, upload name or "sample").
func (t *Table) Source() string {
	return t.source
}

// Frame returns the underlying frame. Gota frames are values; callers get
// their own copy of the header but must not mutate the series.
func (t *Table) Frame() dataframe.DataFrame {
	return t.frame
}

// Records returns the rows in table order. The slice is shared; treat it as read-only.
func (t *Table) Records() []district.Record {
	if t == nil {
		return nil
	}
	return t.records
}

// Names returns the district names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.records))
	for i, r := range t.records {
		names[i] = r.Name
	}
	return names
}

// Floats returns a numeric column in table order; missing cells are NaN.
func (t *Table) Floats(col string) []float64 {
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		out[i] = r.Metric(col)
	}
	return out
}

// Derive returns a table over df that keeps this table's source.
func (t *Table) Derive(df dataframe.DataFrame) *Table {
	return FromFrame(df, t.source)
}
