package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/logging"
	"github.com/dbmrq/districtboard/internal/web"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the dashboard as a web page",
		Long: `Serve the dashboard as a single HTML page.

Filters travel in the query string, charts are SVG images, and a new
dataset can be uploaded from the page. GET /api/view returns the current
view as JSON.

Examples:
  districtboard serve                        # Sample data on :8501
  districtboard serve --addr :9000 data.csv  # A file on port 9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServe,
	}
	c.Flags().String("addr", "", "Listen address (default from config, :8501)")
	return c
}

// runServe starts the HTTP dashboard and blocks until interrupted.
func runServe(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		s.cfg.Server.Addr = addr
	}

	closeLog := s.initFileLogging(cmd, true)
	defer closeLog()

	cache := dataset.NewCache()
	table, err := s.loadTable(cache)
	if err != nil {
		return err
	}

	srv := web.New(web.Options{
		Table:          table,
		Cache:          cache,
		Defaults:       s.sel,
		MaxUploadBytes: s.cfg.Server.MaxUploadBytes(),
		SessionID:      s.sessionID,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stop, err := followDataset(s, srv, cache)
	if err != nil {
		return err
	}
	defer stop()

	cmd.Printf("Serving %s on http://localhost%s\n", table.Source(), s.cfg.Server.Addr)
	return srv.ListenAndServe(ctx, s.cfg.Server.Addr, s.cfg.Server.ReadTimeout, s.cfg.Server.ShutdownTimeout)
}

// followDataset keeps the server's table in step with the file on disk
// and with the reload schedule. The returned func stops both.
func followDataset(s *settings, srv *web.Server, cache *dataset.Cache) (func(), error) {
	path := s.cfg.Data.Path
	if path == "" {
		return func() {}, nil
	}
	load := func(p string) (*dataset.Table, error) {
		return cache.LoadFile(p, s.dataOptions())
	}

	var stops []func()
	stopAll := func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if s.cfg.Data.Watch {
		w, err := dataset.NewWatcher(path, s.cfg.Data.Debounce, cache)
		if err != nil {
			logging.Warn("file watcher unavailable", "path", path, "error", err)
		} else {
			done := make(chan struct{})
			go func() {
				defer close(done)
				srv.Follow(w.Changes(), load)
			}()
			stops = append(stops, func() {
				_ = w.Close()
				<-done
			})
		}
	}

	if spec := s.cfg.Data.ReloadSchedule; spec != "" {
		r, err := dataset.NewReloader(spec, func() {
			cache.Invalidate(path)
			t, err := load(path)
			if err != nil {
				logging.Warn("scheduled reload failed", "path", path, "error", err)
				return
			}
			if !srv.ReloadTable(t) {
				logging.Debug("scheduled reload skipped, uploaded dataset in use", "path", path)
			}
		})
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("invalid reload schedule: %w", err)
		}
		r.Start()
		stops = append(stops, r.Stop)
	}

	return stopAll, nil
}
