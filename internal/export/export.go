// Package export writes a dashboard view to files: the sorted table as CSV
// or XLSX and the charts as SVG or PNG.
package export

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/chart"
	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/errors"
	"github.com/dbmrq/districtboard/internal/logging"
)

// Table formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// TableFormats lists the accepted table formats.
var TableFormats = []string{FormatCSV, FormatXLSX}

// Sheet names in the XLSX workbook.
const (
	SheetDistricts = "districts"
	SheetKPIs      = "kpi"
	SheetTrend     = "trend"
)

// TableBase is the file name of the exported table without extension.
const TableBase = "districts"

// Options select what Dir writes.
type Options struct {
	// Tables are the table formats to write. Empty writes none.
	Tables []string
	// Charts writes the chart images when true.
	Charts bool
	// ChartFormat is the image format (default SVG).
	ChartFormat chart.Format
}

// WriteCSV writes the sorted table projection as CSV.
func WriteCSV(w io.Writer, v *board.View) error {
	df := board.Project(v.Sorted)
	if df.Err != nil {
		return errors.Wrap(df.Err, errors.ErrData, "failed to project table")
	}
	if err := df.WriteCSV(w); err != nil {
		return errors.Wrap(err, errors.ErrData, "failed to write CSV")
	}
	return nil
}

// WriteXLSX writes a workbook with the sorted table, the KPI cards and the
// trend long form on separate sheets.
func WriteXLSX(w io.Writer, v *board.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDistricts); err != nil {
		return errors.Wrap(err, errors.ErrData, "failed to create workbook")
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, errors.ErrData, "failed to create workbook")
	}

	rows := make([][]any, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = []any{
			r.District, r.Region, r.Winner,
			cellNumber(r.Competitiveness),
			cellNumber(r.Volatility),
			cellNumber(r.ProgLeftAvg),
			cellNumber(r.VotersTotal),
		}
	}
	if err := writeSheet(f, SheetDistricts, district.TableColumns, rows, header); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetKPIs); err != nil {
		return errors.Wrap(err, errors.ErrData, "failed to create workbook")
	}
	kpis := make([][]any, len(v.Cards))
	for i, c := range v.Cards {
		kpis[i] = []any{c.Label, c.Value}
	}
	if err := writeSheet(f, SheetKPIs, []string{"label", "value"}, kpis, header); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetTrend); err != nil {
		return errors.Wrap(err, errors.ErrData, "failed to create workbook")
	}
	trend := make([][]any, len(v.Trend))
	for i, p := range v.Trend {
		trend[i] = []any{p.District, p.Year, p.Bloc, cellNumber(p.Vote)}
	}
	if err := writeSheet(f, SheetTrend, []string{district.ColDistrict, "year", "bloc", "vote"}, trend, header); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrData, "failed to write XLSX")
	}
	return nil
}

// cellNumber leaves missing values as blank cells.
func cellNumber(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.Wrap(err, errors.ErrData, "failed to write "+sheet+" sheet")
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return errors.Wrap(err, errors.ErrData, "failed to write "+sheet+" sheet")
	}

	for r, row := range rows {
		for c, val := range row {
			if val == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return errors.Wrap(err, errors.ErrData, "failed to write "+sheet+" sheet")
			}
		}
	}
	return nil
}

// Dir writes the selected outputs into dir, creating it if needed, and
// returns the written paths. Charts without data are skipped.
func Dir(dir string, v *board.View, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	for _, format := range opts.Tables {
		var write func(io.Writer, *board.View) error
		switch strings.ToLower(format) {
		case FormatCSV:
			write = WriteCSV
		case FormatXLSX:
			write = WriteXLSX
		default:
			return written, errors.WithSuggestion(errors.ErrConfig,
				fmt.Sprintf("unknown table format: %s", format),
				"Valid formats: "+strings.Join(TableFormats, ", "))
		}
		path := filepath.Join(dir, TableBase+"."+strings.ToLower(format))
		if err := writeFile(path, func(w io.Writer) error { return write(w, v) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if opts.Charts {
		paths, err := Charts(dir, v, opts.ChartFormat)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Charts renders the demographic, scatter and per-district trend charts
// into dir. Trend files are numbered in pick order.
func Charts(dir string, v *board.View, format chart.Format) ([]string, error) {
	if format == "" {
		format = chart.SVG
	}
	ext := "." + string(format)

	type job struct {
		name   string
		render func(io.Writer) error
	}
	jobs := []job{
		{chart.NameDemographics, func(w io.Writer) error { return chart.Demographics(w, v.Demographics, format) }},
		{chart.NameScatter, func(w io.Writer) error { return chart.Scatter(w, v.Scatter, format) }},
	}
	for i, name := range board.TrendDistricts(v.Trend) {
		jobs = append(jobs, job{
			name:   fmt.Sprintf("%s_%d", chart.NameTrend, i),
			render: func(w io.Writer) error { return chart.Trend(w, v.Trend, name, format) },
		})
	}

	var written []string
	for _, j := range jobs {
		path := filepath.Join(dir, j.name+ext)
		err := writeFile(path, j.render)
		if stderrors.Is(err, chart.ErrNoData) {
			logging.Debug("chart skipped", "chart", j.name, "reason", err)
			continue
		}
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// writeFile renders into path, removing the file if rendering fails.
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
