package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/logging"
)

// RunnerOptions configure the dashboard process.
type RunnerOptions struct {
	Options

	// Watch follows Path on disk and reloads when it changes.
	Watch    bool
	Debounce time.Duration
	// Cache is invalidated by the watcher. May be nil.
	Cache *dataset.Cache
	// ReloadSchedule is an optional cron spec for periodic reloads.
	ReloadSchedule string
}

// Runner couples the Bubble Tea program with the file watcher and the
// reload schedule, which run outside the program and send it messages.
// The watcher follows whichever file the dashboard has open.
type Runner struct {
	model    *Model
	program  *tea.Program
	reloader *dataset.Reloader
	send     func(tea.Msg)

	debounce time.Duration
	cache    *dataset.Cache

	mu       sync.Mutex
	watcher  *dataset.Watcher
	watched  string
	running  bool
	forwards sync.WaitGroup
}

// NewRunner creates the model and its background sources. Nothing runs
// until Run is called.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	r := &Runner{debounce: opts.Debounce, cache: opts.Cache}

	if opts.Watch {
		// The dashboard still works without live reload.
		opts.Watching = r.follow(opts.Path)
		opts.Follow = r.follow
	}

	if opts.ReloadSchedule != "" {
		reloader, err := dataset.NewReloader(opts.ReloadSchedule, func() {
			r.dispatch(ReloadMsg{})
		})
		if err != nil {
			r.closeWatcher()
			return nil, err
		}
		r.reloader = reloader
	}

	r.model = New(opts.Options)
	r.program = tea.NewProgram(r.model, tea.WithAltScreen())
	r.send = r.program.Send
	return r, nil
}

// follow moves the watcher to path and reports whether path is watched.
func (r *Runner) follow(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path == "" {
		return false
	}
	if r.watcher != nil && path == r.watched {
		return true
	}
	r.closeWatcherLocked()

	w, err := dataset.NewWatcher(path, r.debounce, r.cache)
	if err != nil {
		logging.Warn("file watcher unavailable", "path", path, "error", err)
		return false
	}
	r.watcher, r.watched = w, path
	if r.running {
		r.forward(w)
	}
	logging.Debug("watching dataset", "path", path)
	return true
}

// forward starts relaying w's changes to the program. Callers hold r.mu.
func (r *Runner) forward(w *dataset.Watcher) {
	r.forwards.Add(1)
	go func() {
		defer r.forwards.Done()
		forwardChanges(w.Changes(), r.dispatch)
	}()
}

// dispatch delivers msg to the program once it exists.
func (r *Runner) dispatch(msg tea.Msg) {
	if r.send != nil {
		r.send(msg)
	}
}

// forwardChanges turns watcher changes into messages until the channel
// is closed.
func forwardChanges(changes <-chan dataset.Change, send func(tea.Msg)) {
	for c := range changes {
		send(DatasetChangedMsg{Path: c.Path, At: c.At})
	}
}

// Run runs the TUI until the user quits or ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	r.running = true
	if r.watcher != nil {
		r.forward(r.watcher)
	}
	r.mu.Unlock()

	if r.reloader != nil {
		r.reloader.Start()
	}

	stop := context.AfterFunc(ctx, func() {
		r.program.Send(QuitMsg{Reason: "canceled"})
	})
	defer stop()

	_, err := r.program.Run()

	if r.reloader != nil {
		r.reloader.Stop()
	}
	r.closeWatcher()
	r.forwards.Wait()

	return err
}

func (r *Runner) closeWatcher() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeWatcherLocked()
}

func (r *Runner) closeWatcherLocked() {
	if r.watcher == nil {
		return
	}
	if err := r.watcher.Close(); err != nil {
		logging.Warn("failed to close file watcher", "error", err)
	}
	r.watcher, r.watched = nil, ""
}

// Watching reports whether live reload is active.
func (r *Runner) Watching() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.watcher != nil
}

// WatchedPath returns the file the watcher follows, or "" when none.
func (r *Runner) WatchedPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.watched
}

// Program returns the tea.Program for external access.
func (r *Runner) Program() *tea.Program {
	return r.program
}

// Model returns the TUI model for external access.
func (r *Runner) Model() *Model {
	return r.model
}

// Close releases the background sources of a Runner that was never run.
func (r *Runner) Close() {
	if r.reloader != nil {
		r.reloader.Stop()
	}
	r.closeWatcher()
}
