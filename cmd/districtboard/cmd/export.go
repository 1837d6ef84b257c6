package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/chart"
	"github.com/dbmrq/districtboard/internal/export"
	"github.com/dbmrq/districtboard/internal/logging"
)

func newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the charts and the sorted table to files",
		Long: `Write the current view to a directory.

The sorted district table is written as districts.csv and/or
districts.xlsx (with KPI and trend sheets). The demographic, scatter and
per-district trend charts are written as SVG or PNG. Charts with nothing
to plot are skipped.

Examples:
  districtboard export                              # ./export, csv+xlsx+svg
  districtboard export --out out --format png data.csv
  districtboard export --table xlsx --no-charts --region 호남`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
	c.Flags().String("out", "export", "Output directory")
	c.Flags().StringSlice("table", export.TableFormats, "Table formats: csv, xlsx")
	c.Flags().String("format", string(chart.SVG), "Chart format: svg or png")
	c.Flags().Bool("no-charts", false, "Skip the chart images")
	return c
}

func runExport(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	out, _ := flags.GetString("out")
	tables, _ := flags.GetStringSlice("table")
	formatName, _ := flags.GetString("format")
	noCharts, _ := flags.GetBool("no-charts")

	format, err := chart.ParseFormat(formatName)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	s.initStderrLogging(cmd)

	v, err := buildView(s)
	if err != nil {
		return err
	}

	written, err := export.Dir(out, v, export.Options{
		Tables:      nonEmpty(tables),
		Charts:      !noCharts,
		ChartFormat: format,
	})
	for _, p := range written {
		cmd.Printf("Wrote %s\n", p)
	}
	if err != nil {
		return err
	}
	logging.Debug("export finished", "dir", out, "files", len(written), "session_id", s.sessionID)
	return nil
}
