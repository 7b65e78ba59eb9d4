package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the API
type Metrics struct {
	requestCounter   *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	requestSummary   *prometheus.SummaryVec
	favoritesAdded   prometheus.Counter
	favoritesRemoved prometheus.Counter
	productLookups   *prometheus.CounterVec
	loginAttempts    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoscan_requests_total",
				Help: "Total number of requests to the EcoScan API",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecoscan_request_duration_seconds",
				Help:    "Duration of EcoScan API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		// p50, p90, p95, p99
		requestSummary: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "ecoscan_request_duration_summary",
				Help: "Summary of request durations with percentiles",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.01,
					0.99: 0.001,
				},
				MaxAge: 10 * time.Minute,
			},
			[]string{"method", "endpoint"},
		),
		favoritesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoscan_favorites_added_total",
			Help: "Total number of favorites created",
		}),
		favoritesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoscan_favorites_removed_total",
			Help: "Total number of favorites removed",
		}),
		productLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoscan_product_lookups_total",
				Help: "Product lookups by kind (barcode, search, id) and result (hit, miss)",
			},
			[]string{"kind", "result"},
		),
		loginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoscan_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		m.requestCounter,
		m.requestLatency,
		m.requestSummary,
		m.favoritesAdded,
		m.favoritesRemoved,
		m.productLookups,
		m.loginAttempts,
	)

	return m
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// instrument wraps handlers with Prometheus metrics
func (m *Metrics) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		m.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		m.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		m.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (m *Metrics) lookup(kind string, found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	m.productLookups.WithLabelValues(kind, result).Inc()
}
