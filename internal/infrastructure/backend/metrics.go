package backend

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores de llamadas al backend.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registra los colectores en reg (nil = sin registrar, útil en tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookshop",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Llamadas a la API de la librería por recurso, operación y resultado.",
		}, []string{"resource", "op", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bookshop",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latencia de las llamadas a la API de la librería.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "op"}),
	}
}

func (m *Metrics) observe(resource, op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(resource, op, outcome(err)).Inc()
	m.duration.WithLabelValues(resource, op).Observe(elapsed.Seconds())
}

// outcome: ok, business (success=false) o transport.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return "business"
	}
	return "transport"
}
