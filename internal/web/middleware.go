package web

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/dbmrq/districtboard/internal/errors"
	"github.com/dbmrq/districtboard/internal/logging"
)

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging wraps a handler with request logging.
func withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		logging.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// jsonResponse writes data as JSON.
func jsonResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes err as a JSON error with the status its kind maps to.
func errorResponse(w http.ResponseWriter, err error) {
	status := statusFor(err)
	body := ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
	}
	var be *errors.BoardError
	if stderrors.As(err, &be) {
		body.Suggestion = be.Suggestion
	}
	jsonResponse(w, status, body)
}

// statusFor maps error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrData):
		return http.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrFilter):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
