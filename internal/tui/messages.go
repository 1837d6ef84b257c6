package tui

import (
	"time"

	"github.com/dbmrq/districtboard/internal/dataset"
)

// Message types for TUI state updates.

// DatasetLoadedMsg is sent when a load finished.
type DatasetLoadedMsg struct {
	Table    *dataset.Table
	Path     string
	LoadedAt time.Time
}

// DatasetErrorMsg is sent when a load failed. The dashboard keeps showing
// the last good table.
type DatasetErrorMsg struct {
	Path string
	Err  error
}

// DatasetChangedMsg is sent by the file watcher when the dataset was
// rewritten on disk.
type DatasetChangedMsg struct {
	Path string
	At   time.Time
}

// ReloadMsg asks the dashboard to re-read the current file.
type ReloadMsg struct{}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error string
}

// QuitMsg signals the TUI should quit.
type QuitMsg struct {
	Reason string
}
