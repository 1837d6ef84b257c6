package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/report"
)

func newReportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "report [file]",
		Short: "Print the dashboard as text or JSON",
		Long: `Print the dashboard without the interactive UI.

The text report shows the KPI cards, the sorted district table and the
trend lines; --verbose adds the demographic table. --output json prints the whole view
for scripts.

Examples:
  districtboard report                          # Sample data as text
  districtboard report --output json data.csv   # JSON for scripts
  districtboard report --winner 진보 --sort volatility`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReport,
	}
	c.Flags().StringP("output", "o", string(report.OutputFormatText), "Output format: text or json")
	return c
}

// buildView loads the dataset and runs the pipeline once.
func buildView(s *settings) (*board.View, error) {
	table, err := s.loadTable(dataset.NewCache())
	if err != nil {
		return nil, err
	}
	return board.Build(table, s.sel)
}

func runReport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format := report.OutputFormat(output)
	if format != report.OutputFormatText && format != report.OutputFormatJSON {
		return fmt.Errorf("unknown output format %q (use text or json)", output)
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

	return report.New(&report.Config{
		OutputFormat: format,
		Writer:       cmd.OutOrStdout(),
		SessionID:    s.sessionID,
		Verbose:      s.verbose,
	}).Write(v)
}
