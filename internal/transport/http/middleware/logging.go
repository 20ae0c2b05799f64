package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"perftrack/internal/platform/metrics"
	"perftrack/internal/transport/http/api"
)

type statusRecorder struct {
	http.ResponseWriter
	status    int
	errorCode string
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RecordErrorCode also forwards to an outer recorder so every layer sees it.
func (s *statusRecorder) RecordErrorCode(code string) {
	s.errorCode = code
	if inner, ok := s.ResponseWriter.(api.ErrorCodeRecorder); ok {
		inner.RecordErrorCode(code)
	}
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := newStatusRecorder(w)
		next.ServeHTTP(recorder, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"durationMs", time.Since(start).Milliseconds(),
			"requestId", GetRequestID(r.Context()),
		}
		if recorder.errorCode != "" {
			attrs = append(attrs, "errorCode", recorder.errorCode)
		}
		if recorder.status >= http.StatusInternalServerError {
			slog.Warn("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	})
}

func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := newStatusRecorder(w)
			next.ServeHTTP(recorder, r)

			collector.Record(r.Method, recorder.status, time.Since(start))
			if recorder.errorCode != "" {
				collector.Rejected(recorder.errorCode)
			}
		})
	}
}

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.Error("panic recovered", "panic", rec, "path", r.URL.Path, "stack", string(debug.Stack()))
				api.Fail(w, http.StatusInternalServerError, "internal", "internal error", GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
