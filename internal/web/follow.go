package web

import (
	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/logging"
)

// Follow reloads the dataset for every change until changes is closed.
// A failed reload is logged and the current table stays in place. After
// an upload, changes to the configured file are ignored.
func (s *Server) Follow(changes <-chan dataset.Change, load func(path string) (*dataset.Table, error)) {
	for c := range changes {
		if s.hasUpload() {
			logging.Debug("configured file changed, keeping uploaded dataset", "path", c.Path)
			continue
		}
		t, err := load(c.Path)
		if err != nil {
			logging.Warn("reload failed, keeping current dataset", "path", c.Path, "error", err)
			continue
		}
		if !s.ReloadTable(t) {
			continue
		}
		logging.Info("dataset reloaded", "path", c.Path, "rows", t.Len(), "session_id", s.sessionID)
	}
}

func (s *Server) hasUpload() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uploaded
}
