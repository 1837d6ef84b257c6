// Package web serves the dashboard as a single HTML page with SVG charts.
// The page is a plain form: every filter change is a GET with the
// selection in the query string, and a new dataset arrives by upload.
package web

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/dbmrq/districtboard/internal/board"
	"github.com/dbmrq/districtboard/internal/dataset"
	"github.com/dbmrq/districtboard/internal/logging"
)

// Options configure a Server.
type Options struct {
	// Table is the dataset shown until something is uploaded.
	Table *dataset.Table
	// Cache resolves uploads. Nil means a private cache.
	Cache *dataset.Cache
	// Defaults fill in controls missing from the query string.
	Defaults board.Selection
	// MaxUploadBytes caps the upload body.
	MaxUploadBytes int64
	// SessionID tags log lines and JSON output.
	SessionID string
}

// Server holds the current dataset and serves the dashboard.
type Server struct {
	mu       sync.RWMutex
	table    *dataset.Table
	uploaded bool

	cache     *dataset.Cache
	defaults  board.Selection
	maxUpload int64
	sessionID string
}

// DefaultMaxUploadBytes is used when Options.MaxUploadBytes is unset.
const DefaultMaxUploadBytes = 16 << 20

// New creates a Server.
func New(opts Options) *Server {
	s := &Server{
		table:     opts.Table,
		cache:     opts.Cache,
		defaults:  opts.Defaults,
		maxUpload: opts.MaxUploadBytes,
		sessionID: opts.SessionID,
	}
	if s.cache == nil {
		s.cache = dataset.NewCache()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	return s
}

// Table returns the current dataset.
func (s *Server) Table() *dataset.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// SetTable replaces the current dataset.
func (s *Server) SetTable(t *dataset.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
}

// ReloadTable replaces the current dataset with a fresh copy of the
// configured file. It does nothing once a dataset has been uploaded and
// reports whether the table was replaced.
func (s *Server) ReloadTable(t *dataset.Table) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploaded {
		return false
	}
	s.table = t
	return true
}

func (s *Server) setUploaded(t *dataset.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	s.uploaded = true
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /{$}", withLogging(s.handleIndex))
	mux.HandleFunc("POST /upload", withLogging(s.handleUpload))
	mux.HandleFunc("GET /api/view", withLogging(s.handleView))
	mux.HandleFunc("GET /charts/trend/{file}", withLogging(s.handleTrendChart))
	mux.HandleFunc("GET /charts/{file}", withLogging(s.handleChart))

	return mux
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("web dashboard listening", "addr", addr, "session_id", s.sessionID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	logging.Info("web dashboard stopped")
	return nil
}
