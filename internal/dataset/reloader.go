package dataset

import (
	"github.com/robfig/cron"

	"github.com/dbmrq/districtboard/internal/logging"
)

// Reloader re-runs a reload function on a cron schedule, e.g. "@every 5m"
// or "0 0 6 * * *" (robfig/cron v1 specs carry a seconds field).
type Reloader struct {
	c *cron.Cron
}

// NewReloader validates spec and registers fn. Call Start to begin.
func NewReloader(spec string, fn func()) (*Reloader, error) {
	c := cron.New()
	c.ErrorLog = logging.StdLogger(logging.LevelError, "cron: ")
	if err := c.AddFunc(spec, fn); err != nil {
		return nil, err
	}
	return &Reloader{c: c}, nil
}

// Start runs the schedule in the background.
func (r *Reloader) Start() {
	r.c.Start()
}

// Stop halts the schedule. A reload already in flight finishes on its own.
func (r *Reloader) Stop() {
	r.c.Stop()
}
