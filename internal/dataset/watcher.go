package dataset

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dbmrq/districtboard/internal/logging"
)

// Change reports that the watched file was rewritten. Path is the path
// given to NewWatcher, which is also the key the file was cached under.
type Change struct {
	Path string
	At   time.Time
}

// Watcher follows a single dataset file. It watches the parent directory
// so that editors which save by rename are still seen, coalesces bursts of
// events for the debounce interval and then invalidates the cache entry
// and publishes a Change.
type Watcher struct {
	path     string
	source   string
	debounce time.Duration
	cache    *Cache
	fs       *fsnotify.Watcher
	changes  chan Change
	done     chan struct{}
	once     sync.Once
}

// NewWatcher starts watching path. cache may be nil.
func NewWatcher(path string, debounce time.Duration, cache *Cache) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		source:   path,
		debounce: debounce,
		cache:    cache,
		fs:       fw,
		changes:  make(chan Change, 1),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers one value per settled burst of writes. A slow reader
// sees the latest change only; the channel is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if w.cache != nil {
				w.cache.Invalidate(w.source)
			}
			logging.Info("dataset changed on disk", "path", w.path)
			w.publish(Change{Path: w.source, At: time.Now()})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn("dataset watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// publish replaces any unread change with c.
func (w *Watcher) publish(c Change) {
	select {
	case w.changes <- c:
		return
	default:
	}
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- c:
	default:
	}
}
