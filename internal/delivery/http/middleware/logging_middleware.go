package middleware

import (
	"net/http"
	"time"

	"eventplanner/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

type LoggingMiddleware struct {
	log *logrus.Logger
}

func NewLoggingMiddleware(log *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{log: log}
}

// Handle logs one entry per request and records it in the HTTP metrics,
// labelled by the matched route template.
func (m *LoggingMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		duration := time.Since(start)
		route := routeTemplate(r)
		metrics.RecordHTTPRequest(r.Method, route, sw.status, duration)

		entry := m.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"route":      route,
			"status":     sw.status,
			"bytes":      sw.bytes,
			"latency_ms": duration.Milliseconds(),
			"remote_ip":  r.RemoteAddr,
		})
		switch {
		case sw.status >= http.StatusInternalServerError:
			entry.Error("http_request")
		case sw.status >= http.StatusBadRequest:
			entry.Warn("http_request")
		default:
			entry.Info("http_request")
		}
	})
}

// routeTemplate keeps metric cardinality bounded by ids in paths.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
