package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/history"
	"github.com/dbmrq/districtboard/internal/logging"
	"github.com/dbmrq/districtboard/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [file]",
		Short: "Open the terminal dashboard",
		Long: `Open the interactive terminal dashboard.

The dataset is reloaded when the file changes on disk (data.watch) and on
the optional data.reload_schedule. Press o inside the dashboard to open
another file and ? for all shortcuts.

Examples:
  districtboard                          # Bundled sample
  districtboard dashboard districts.csv  # A CSV file
  districtboard --region 영남 --sort volatility districts.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDashboard,
	}
}

// runDashboard starts the TUI.
func runDashboard(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	closeLog := s.initFileLogging(cmd, false)
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	recent, err := history.LoadDefault()
	if err != nil {
		logging.Warn("failed to load recent datasets", "error", err)
		recent = &history.Recent{}
	}

	cache := dataset.NewCache()
	opts := tui.Options{
		Path:      s.cfg.Data.Path,
		Selection: s.sel,
		Load: func(path string) (*dataset.Table, error) {
			return cache.LoadFile(path, s.dataOptions())
		},
		BaseDir:   workingDir(),
		Recent:    recent.Paths(),
		SessionID: s.sessionID,
		OnLoaded: func(path string, rows int) {
			recent.Add(path, string(s.cfg.Data.Encoding), rows)
			if err := recent.Save(); err != nil {
				logging.Warn("failed to save recent datasets", "error", err)
			}
		},
	}
	if opts.Path == "" {
		opts.Table, err = dataset.LoadSample()
		if err != nil {
			return err
		}
	}

	runner, err := tui.NewRunner(tui.RunnerOptions{
		Options:        opts,
		Watch:          s.cfg.Data.Watch,
		Debounce:       s.cfg.Data.Debounce,
		Cache:          cache,
		ReloadSchedule: s.cfg.Data.ReloadSchedule,
	})
	if err != nil {
		return fmt.Errorf("failed to start dashboard: %w", err)
	}

	return runner.Run(ctx)
}
