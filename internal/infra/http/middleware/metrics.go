package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	paymentsVerified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_verified_total",
			Help: "Total number of payment verifications by outcome",
		},
		[]string{"status"},
	)

	registrationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_completed_total",
			Help: "Total number of registrations completed",
		},
	)

	prospectSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospect_saves_total",
			Help: "Total number of prospect auto-save attempts",
		},
		[]string{"saved"},
	)

	gatewayErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_errors_total",
			Help: "Total number of payment gateway errors",
		},
	)
)

// Domain counters, incremented from the handlers.

func CountPaymentVerified(status string) {
	paymentsVerified.WithLabelValues(status).Inc()
}

func CountRegistrationCompleted() {
	registrationsCompleted.Inc()
}

func CountProspectSave(saved bool) {
	prospectSaves.WithLabelValues(strconv.FormatBool(saved)).Inc()
}

func CountGatewayError() {
	gatewayErrors.Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}
