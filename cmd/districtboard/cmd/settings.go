package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/config"
	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/logging"
	"github.com/dbmrq/districtboard/internal/version"
)

// settings is the merged result of config file, environment and flags.
type settings struct {
	cfg       *config.Config
	sel       board.Selection
	verbose   bool
	sessionID string
}

// loadSettings reads the config and applies command-line overrides. A
// positional argument names the dataset and wins over --data.
func loadSettings(cmd *cobra.Command, args []string) (*settings, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	if v, _ := flags.GetString("data"); v != "" {
		cfg.Data.Path = v
	}
	if len(args) > 0 {
		cfg.Data.Path = args[0]
	}
	if v, _ := flags.GetString("encoding"); v != "" {
		cfg.Data.Encoding = config.Encoding(strings.ToLower(v))
	}
	if v, _ := flags.GetString("sheet"); v != "" {
		cfg.Data.Sheet = v
	}
	if flags.Changed("region") {
		cfg.Filters.Regions, _ = flags.GetStringSlice("region")
	}
	if flags.Changed("winner") {
		cfg.Filters.Winners, _ = flags.GetStringSlice("winner")
	}
	if v, _ := flags.GetString("sort"); v != "" {
		cfg.Filters.SortMetric = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	s := &settings{
		cfg: cfg,
		sel: board.Selection{
			Regions:    cfg.Filters.Regions,
			Winners:    cfg.Filters.Winners,
			SortMetric: cfg.Filters.SortMetric,
			PickCount:  cfg.Filters.TrendPicks,
		},
		sessionID: uuid.NewString(),
	}
	if flags.Changed("pick") {
		picks, _ := flags.GetStringSlice("pick")
		s.sel.Picks = nonEmpty(picks)
	}
	s.verbose, _ = flags.GetBool("verbose")
	return s, nil
}

func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// dataOptions are the reader options for the configured dataset.
func (s *settings) dataOptions() dataset.Options {
	return dataset.Options{
		Encoding: string(s.cfg.Data.Encoding),
		Sheet:    s.cfg.Data.Sheet,
	}
}

// loadTable reads the configured dataset, or the bundled sample when no
// path is set.
func (s *settings) loadTable(cache *dataset.Cache) (*dataset.Table, error) {
	if s.cfg.Data.Path == "" {
		return dataset.LoadSample()
	}
	return cache.LoadFile(s.cfg.Data.Path, s.dataOptions())
}

// logLevel resolves the configured level, raised to debug by --verbose.
func (s *settings) logLevel() logging.Level {
	if s.verbose {
		return logging.LevelDebug
	}
	return logging.ParseLevel(s.cfg.Logging.Level)
}

// initFileLogging starts the global file logger. Failure is reported and
// the command carries on without a log file.
func (s *settings) initFileLogging(cmd *cobra.Command, console bool) func() {
	logConfig := &logging.Config{
		Level:       s.logLevel(),
		LogDir:      s.cfg.Logging.Dir,
		MaxLogFiles: 10,
		MaxLogAge:   7 * 24 * time.Hour,
		Console:     console,
		JSONFormat:  s.cfg.Logging.JSON,
	}
	if err := logging.InitGlobal(logConfig); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
		return func() {}
	}
	info := version.NewInfo(Version, Commit, Date)
	logging.Info("districtboard starting",
		append(info.LogArgs(), "command", cmd.Name(), "session_id", s.sessionID)...)
	return func() { _ = logging.CloseGlobal() }
}

// initStderrLogging sends debug logs to stderr for headless commands
// run with --verbose; otherwise logging stays silent.
func (s *settings) initStderrLogging(cmd *cobra.Command) {
	if !s.verbose {
		return
	}
	logging.SetGlobal(logging.NewWriter(cmd.ErrOrStderr(), &logging.Config{
		Level:      logging.LevelDebug,
		JSONFormat: s.cfg.Logging.JSON,
	}))
}

// workingDir returns the directory relative paths resolve against.
func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
