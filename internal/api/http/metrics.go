package http

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pointsboard",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status.",
	}, []string{"method", "status"})

	pointsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pointsboard",
		Name:      "points_applied_total",
		Help:      "Point awards applied.",
	})

	studentsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pointsboard",
		Name:      "students_registered_total",
		Help:      "Ledger registrations, single and bulk.",
	})
)

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler { return promhttp.Handler() }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware counts requests by method and status.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		httpRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}
