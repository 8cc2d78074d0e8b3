// Package metrics holds the Prometheus collectors shared by the engine, the
// device layer and the HTTP server.
package metrics

import (
	"errors"
	"net/http"
	"time"

	apperrors "github.com/agbru/fibdrv/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status labels attached to computation metrics.
const (
	StatusSuccess  = "success"
	StatusOverflow = "overflow"
	StatusInvalid  = "invalid"
	StatusCanceled = "canceled"
	StatusError    = "error"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibdrv_calculations_total",
			Help: "The total number of Fibonacci computations processed",
		},
		[]string{"algorithm", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fibdrv_calculation_duration_seconds",
			Help:    "The duration of Fibonacci computations in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 12),
		},
		[]string{"algorithm"},
	)
	resultDigits = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fibdrv_result_digits",
			Help:    "Number of decimal digits in computed results",
			Buckets: prometheus.LinearBuckets(0, 32, 9),
		},
		[]string{"algorithm"},
	)
	deviceOpensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibdrv_device_opens_total",
			Help: "Device open attempts by outcome",
		},
		[]string{"outcome"},
	)
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fibdrv_active_requests",
		Help: "Current number of active HTTP requests",
	})
	totalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibdrv_requests_total",
			Help: "Total number of HTTP requests received",
		},
		[]string{"path", "code"},
	)
)

// StatusOf classifies a computation error into a metric status label.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, apperrors.ErrCapacityOverflow):
		return StatusOverflow
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return StatusInvalid
	case apperrors.IsContextError(err):
		return StatusCanceled
	default:
		return StatusError
	}
}

// ObserveCalculation records one finished computation.
func ObserveCalculation(algorithm string, elapsed time.Duration, digits int, err error) {
	calculationsTotal.WithLabelValues(algorithm, StatusOf(err)).Inc()
	calculationDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	if err == nil {
		resultDigits.WithLabelValues(algorithm).Observe(float64(digits))
	}
}

// ObserveDeviceOpen records a device open attempt; busy reports whether it
// was refused.
func ObserveDeviceOpen(busy bool) {
	outcome := "opened"
	if busy {
		outcome = "busy"
	}
	deviceOpensTotal.WithLabelValues(outcome).Inc()
}

// HTTP tracks in-flight and completed HTTP requests and serves the
// Prometheus exposition endpoint.
type HTTP struct {
	handler http.Handler
}

// NewHTTP creates an HTTP metrics recorder backed by the default registry.
func NewHTTP() *HTTP {
	return &HTTP{handler: promhttp.Handler()}
}

// RequestStarted increments the active requests gauge.
func (m *HTTP) RequestStarted() {
	activeRequests.Inc()
}

// RequestFinished decrements the active requests gauge and counts the request.
func (m *HTTP) RequestFinished(path string, code int) {
	activeRequests.Dec()
	totalRequests.WithLabelValues(path, http.StatusText(code)).Inc()
}

// ServeHTTP writes metrics in Prometheus text format.
func (m *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
