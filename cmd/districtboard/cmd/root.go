// Package cmd provides the CLI commands for districtboard.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/errors"
	"github.com/dbmrq/districtboard/internal/version"
)

// Version information, set by main before Execute.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCmd builds the command tree. Tests build a fresh tree per case
// since cobra keeps flag state between runs.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "districtboard",
		Short: "Electoral district dashboard",
		Long: `districtboard is a dashboard over a table of electoral-district metrics.

It reads a CSV or XLSX file (or the bundled sample), filters it by region
and 2024 winner, and shows KPI cards, demographic and scatter charts, a
sortable table and vote-share trends for selected districts.

With no subcommand it opens the terminal dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runDashboard,
	}

	root.Version = version.NewInfo(Version, Commit, Date).String()
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to config file (default .districtboard/config.yaml)")
	flags.String("data", "", "CSV or XLSX dataset (default: bundled sample)")
	flags.String("encoding", "", "CSV character set: utf-8, euc-kr or cp949")
	flags.String("sheet", "", "XLSX sheet name (default: first sheet)")
	flags.StringSlice("region", nil, "Regions to include (repeatable, default all)")
	flags.StringSlice("winner", nil, "2024 winner blocs to include (repeatable, default all)")
	flags.String("sort", "", "Sort metric for the district table")
	flags.StringSlice("pick", nil, "Districts for the trend chart (default: first three)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newDashboardCmd(),
		newServeCmd(),
		newReportCmd(),
		newExportCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErr(errors.FormatError(err))
		os.Exit(1)
	}
}
