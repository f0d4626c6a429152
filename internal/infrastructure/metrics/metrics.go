package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	eventAttendanceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_attendance_changes_total",
			Help: "Total number of event joins and leaves",
		},
		[]string{"action"},
	)

	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_signups_total",
			Help: "Total number of user signups",
		},
		[]string{"signup_type"},
	)

	signInsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_signins_failed_total",
			Help: "Total number of failed sign-in attempts",
		},
	)
)

// RecordHTTPRequest records one served request. route is the mux path
// template, not the raw URL.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func RecordEventJoin() {
	eventAttendanceTotal.WithLabelValues("join").Inc()
}

func RecordEventLeave() {
	eventAttendanceTotal.WithLabelValues("leave").Inc()
}

func RecordSignup(signupType string) {
	signupsTotal.WithLabelValues(signupType).Inc()
}

func RecordSignInFailed() {
	signInsFailed.Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
